// Package cli implements the storycsv command line.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
	"github.com/custodia-labs/storycsv/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

var (
	verbose   bool
	configDir string
	envFile   string
)

var (
	segmentService  driving.SegmentService
	repairService   driving.RepairService
	inspectService  driving.InspectService
	storyService    driving.StoryService
	settingsService driving.SettingsService

	// openLibrary returns a story service backed by the persistent library
	// and a function releasing it. Nil falls back to storyService.
	openLibrary func(settings *domain.AppSettings) (driving.StoryService, func() error, error)
)

// wiring builds the services once flags are parsed.
var wiring Wiring

// Services holds the driving ports the commands use.
type Services struct {
	Segment  driving.SegmentService
	Repair   driving.RepairService
	Inspect  driving.InspectService
	Story    driving.StoryService
	Settings driving.SettingsService

	// OpenLibrary opens the story library for import, list, show and delete.
	OpenLibrary func(settings *domain.AppSettings) (driving.StoryService, func() error, error)
}

// Wiring builds Services for a config directory. An empty directory
// means the default ~/.storycsv.
type Wiring func(configDir string) (*Services, error)

var rootCmd = &cobra.Command{
	Use:   "storycsv",
	Short: "Turn books into interactive story CSV files",
	Long: `storycsv converts book manuscripts into choose-your-own-adventure CSV files,
repairs tab-delimited exports whose rows were split across lines, and inspects
or re-exports story spreadsheets.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.storycsv)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with STORYCSV_* overrides")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs ready-made services.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	segmentService = s.Segment
	repairService = s.Repair
	inspectService = s.Inspect
	storyService = s.Story
	settingsService = s.Settings
	openLibrary = s.OpenLibrary
}

// SetWiring installs a function that builds the services after flag parsing.
func SetWiring(w Wiring) {
	wiring = w
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}
		} else {
			logger.Debug("loaded environment from %s", envFile)
		}
	}

	if wiring == nil {
		return nil
	}
	services, err := wiring(configDir)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	return nil
}

// currentSettings returns the effective settings, or the defaults when no
// settings service is configured.
func currentSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// library returns the story service for stored stories and its release func.
func library() (driving.StoryService, func() error, error) {
	if openLibrary == nil {
		if storyService == nil {
			return nil, nil, errors.New("story service not configured")
		}
		return storyService, func() error { return nil }, nil
	}
	settings, err := currentSettings()
	if err != nil {
		return nil, nil, err
	}
	svc, closeFn, err := openLibrary(settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open story library: %w", err)
	}
	return svc, closeFn, nil
}
