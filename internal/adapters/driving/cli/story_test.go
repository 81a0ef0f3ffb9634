package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storyHeader = "id,text,valg1_label,valg1_goto,valg2_label,valg2_goto,check_stat,check_dc,check_success,check_fail,story_title\n"

func caveStory(t *testing.T) string {
	t.Helper()
	return writeFile(t, "hulen.csv", storyHeader+
		"1,,,,,,,,,,Hulen\n"+
		"2,Du står ved hulen.,Gå ind,3,Vend om,4,,,,,\n"+
		"3,Løse sten.,,,,,Evner,8,4,2,\n"+
		"4,Du går hjem.,,,,,,,,,\n")
}

func brokenStory(t *testing.T) string {
	t.Helper()
	return writeFile(t, "broken.csv", storyHeader+
		"1,Start,Videre,9,,,,,,,\n"+
		"1,Igen,,,,,,,,,\n")
}

func TestStoryCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(storyCmd.Commands()))
	for _, c := range storyCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"validate", "import", "list", "show", "delete"}, names)
}

func TestStoryValidateCmd_Clean(t *testing.T) {
	setupTestServices(t)
	out, err := execute(t, "story", "validate", caveStory(t))
	require.NoError(t, err)
	assert.Contains(t, out, "3 nodes")
	assert.Contains(t, out, "No problems found")
}

func TestStoryValidateCmd_Errors(t *testing.T) {
	setupTestServices(t)
	out, err := execute(t, "story", "validate", brokenStory(t))
	require.Error(t, err)
	assert.EqualError(t, err, "2 validation errors")
	assert.Contains(t, out, "error [1]: duplicate node id")
	assert.Contains(t, out, `error [1]: links to missing node "9"`)
}

func TestStoryImportCmd_ImportsAndBumpsVersion(t *testing.T) {
	setupTestServices(t)
	path := caveStory(t)

	out, err := execute(t, "story", "import", path, "--publish")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported hulen (version 1)")
	assert.Contains(t, out, "Title: Hulen")
	assert.Contains(t, out, "Nodes: 3")
	assert.Contains(t, out, "Published: yes")

	out, err = execute(t, "story", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported hulen (version 2)")
	assert.NotContains(t, out, "Published")
}

func TestStoryImportCmd_Slug(t *testing.T) {
	setupTestServices(t)
	out, err := execute(t, "story", "import", caveStory(t), "--slug", "the-cave")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported the-cave (version 1)")
}

func TestStoryImportCmd_RefusesErrors(t *testing.T) {
	setupTestServices(t)
	path := brokenStory(t)

	out, err := execute(t, "story", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import failed")
	assert.Contains(t, out, "duplicate node id")

	out, err = execute(t, "story", "import", path, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported broken (version 1)")
}

func TestStoryListCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "story", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stories imported.")

	_, err = execute(t, "story", "import", caveStory(t), "--publish")
	require.NoError(t, err)

	out, err = execute(t, "story", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hulen [published]")
	assert.Contains(t, out, "Title: Hulen")
	assert.Contains(t, out, "Version: 1, nodes: 3, choices: 2")
}

func TestStoryShowCmd(t *testing.T) {
	setupTestServices(t)
	_, err := execute(t, "story", "import", caveStory(t))
	require.NoError(t, err)

	out, err := execute(t, "story", "show", "hulen")
	require.NoError(t, err)
	assert.Contains(t, out, "Story: Hulen")
	assert.Contains(t, out, "[2] Du står ved hulen.")
	assert.Contains(t, out, "  -> 3: Gå ind")
	assert.Contains(t, out, "  -> 4: Vend om")
	assert.Contains(t, out, "  check Evner DC 8: success 4, fail 2")
}

func TestStoryShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)
	_, err := execute(t, "story", "show", "nope")
	assert.EqualError(t, err, `story "nope" not found`)
}

func TestStoryDeleteCmd(t *testing.T) {
	setupTestServices(t)
	_, err := execute(t, "story", "import", caveStory(t))
	require.NoError(t, err)

	out, err := execute(t, "story", "delete", "hulen")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted hulen")

	_, err = execute(t, "story", "delete", "hulen")
	assert.EqualError(t, err, `story "hulen" not found`)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b", preview("a\nb", 10))
	assert.Equal(t, "æøå...", preview("æøåæøå", 3))
}
