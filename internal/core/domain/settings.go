package domain

// Default file names used when neither config nor arguments name a file.
const (
	DefaultSegmentOutput = "jutenheim.csv"
	DefaultRepairInput   = "the-voice-within.csv"
	DefaultRepairOutput  = "the-voice-within_google-sheets.csv"
	DefaultInspectFile   = "the-voice-within.csv"
	DefaultInspectRows   = 5
	DefaultInspectWidth  = 50
)

// AppSettings is the effective configuration of every command.
type AppSettings struct {
	Segment SegmentSettings
	Repair  RepairSettings
	Inspect InspectSettings
	Storage StorageSettings
}

// SegmentSettings configures the book-to-CSV conversion.
type SegmentSettings struct {
	Params        SegmentParams
	ContinueLabel string
	Output        string
	Metadata      StoryMetadata
}

// RepairSettings configures the row reconstructor.
type RepairSettings struct {
	Input  string
	Output string
}

// InspectSettings configures the column inspector.
type InspectSettings struct {
	File     string
	MaxRows  int
	MaxWidth int
}

// StorageSettings configures the story library location.
type StorageSettings struct {
	// DataDir holds stories.db. Empty means ~/.storycsv/data.
	DataDir string
}

// DefaultAppSettings returns the built-in defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Segment: SegmentSettings{
			Params:        DefaultSegmentParams(),
			ContinueLabel: DefaultContinueLabel,
			Output:        DefaultSegmentOutput,
		},
		Repair: RepairSettings{
			Input:  DefaultRepairInput,
			Output: DefaultRepairOutput,
		},
		Inspect: InspectSettings{
			File:     DefaultInspectFile,
			MaxRows:  DefaultInspectRows,
			MaxWidth: DefaultInspectWidth,
		},
	}
}

// Validate checks settings that would break a command.
func (s AppSettings) Validate() error {
	if err := s.Segment.Params.Validate(); err != nil {
		return err
	}
	if s.Inspect.MaxRows < 0 || s.Inspect.MaxWidth < 1 {
		return ErrInvalidSetting
	}
	return nil
}
