package domain

import "strconv"

// Story CSV column names, in output order.
const (
	ColID               = "id"
	ColText             = "text"
	ColChoice1Label     = "valg1_label"
	ColChoice1Goto      = "valg1_goto"
	ColChoice2Label     = "valg2_label"
	ColChoice2Goto      = "valg2_goto"
	ColChoice3Label     = "valg3_label"
	ColChoice3Goto      = "valg3_goto"
	ColCheckStat        = "check_stat"
	ColCheckDC          = "check_dc"
	ColCheckSuccess     = "check_success"
	ColCheckFail        = "check_fail"
	ColImage            = "image"
	ColFrontScreenImage = "front_screen_image"
	ColStoryTitle       = "story_title"
	ColStoryDescription = "story_description"
	ColLength           = "length"
	ColAge              = "age"
)

// StoryColumns returns the 18 story CSV headers in their fixed order.
func StoryColumns() []string {
	return []string{
		ColID, ColText,
		ColChoice1Label, ColChoice1Goto,
		ColChoice2Label, ColChoice2Goto,
		ColChoice3Label, ColChoice3Goto,
		ColCheckStat, ColCheckDC, ColCheckSuccess, ColCheckFail,
		ColImage, ColFrontScreenImage,
		ColStoryTitle, ColStoryDescription,
		ColLength, ColAge,
	}
}

// DefaultContinueLabel is the label of the forward choice on every non-terminal row.
const DefaultContinueLabel = "Fortsæt"

// StoryMetadata is story-level information carried by the first row.
type StoryMetadata struct {
	Title       string
	Description string
}

// IsZero reports whether no metadata is set.
func (m StoryMetadata) IsZero() bool {
	return m.Title == "" && m.Description == ""
}

// StoryRow is one record of the story CSV schema.
// The segmenter only fills ID, Text and the first choice; the other fields
// exist so every row is emitted with the full column set.
type StoryRow struct {
	ID   int
	Text string

	Choices [3]Choice
	Check   Check

	Image            string
	FrontScreenImage string
	StoryTitle       string
	StoryDescription string
	Length           string
	Age              string
}

// Choice is a labelled link to another row.
type Choice struct {
	Label string
	Goto  string
}

// Check is a stat check branching to a success or failure row.
type Check struct {
	Stat    string
	DC      string
	Success string
	Fail    string
}

// Record returns the row as 18 fields in StoryColumns order.
func (r StoryRow) Record() []string {
	return []string{
		strconv.Itoa(r.ID), r.Text,
		r.Choices[0].Label, r.Choices[0].Goto,
		r.Choices[1].Label, r.Choices[1].Goto,
		r.Choices[2].Label, r.Choices[2].Goto,
		r.Check.Stat, r.Check.DC, r.Check.Success, r.Check.Fail,
		r.Image, r.FrontScreenImage,
		r.StoryTitle, r.StoryDescription,
		r.Length, r.Age,
	}
}

// NewStoryRows lays texts out as a linear story.
// Ids are contiguous from 1, or from 2 when meta is set and a metadata row
// takes id 1. Every row except the last links to the next id with
// continueLabel.
func NewStoryRows(texts []string, continueLabel string, meta StoryMetadata) []StoryRow {
	rows := make([]StoryRow, 0, len(texts)+1)

	startID := 1
	if !meta.IsZero() {
		rows = append(rows, StoryRow{
			ID:               1,
			StoryTitle:       meta.Title,
			StoryDescription: meta.Description,
		})
		startID = 2
	}

	for i, text := range texts {
		id := startID + i
		row := StoryRow{ID: id, Text: text}
		if i < len(texts)-1 {
			row.Choices[0] = Choice{Label: continueLabel, Goto: strconv.Itoa(id + 1)}
		}
		rows = append(rows, row)
	}
	return rows
}
