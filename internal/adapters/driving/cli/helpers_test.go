package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storycsv/internal/adapters/driven/csvfile"
	"github.com/custodia-labs/storycsv/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/storycsv/internal/core/services"
	"github.com/custodia-labs/storycsv/internal/normalisers"
)

// setupTestServices wires every command to real services over in-memory stores.
func setupTestServices(t *testing.T) *memory.ConfigStore {
	t.Helper()
	codec := csvfile.New()
	config := memory.NewConfigStore()
	SetServices(&Services{
		Segment:  services.NewSegmentService(normalisers.NewDefaultRegistry(), services.NewSegmenter, codec),
		Repair:   services.NewRepairService(codec),
		Inspect:  services.NewInspectService(codec),
		Story:    services.NewStoryService(codec, memory.NewStoryStore()),
		Settings: services.NewSettingsService(config),
	})
	t.Cleanup(func() { SetServices(nil) })
	return config
}

// execute runs rootCmd with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores defaults so flags do not leak between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
