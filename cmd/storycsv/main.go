// Command storycsv converts books into interactive story CSV files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/storycsv/internal/adapters/driven/config/file"
	"github.com/custodia-labs/storycsv/internal/adapters/driven/csvfile"
	"github.com/custodia-labs/storycsv/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/storycsv/internal/adapters/driven/watch"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/cli"
	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
	"github.com/custodia-labs/storycsv/internal/core/services"
	"github.com/custodia-labs/storycsv/internal/logger"
	"github.com/custodia-labs/storycsv/internal/normalisers"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetWiring(wire)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// wire builds the services for one invocation.
func wire(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	codec := csvfile.New()
	return &cli.Services{
		Segment: services.NewSegmentService(
			normalisers.NewDefaultRegistry(),
			services.NewSegmenter,
			codec,
			services.WithWatcher(watch.New()),
		),
		Repair:   services.NewRepairService(codec),
		Inspect:  services.NewInspectService(codec),
		Story:    services.NewStoryService(codec, nil),
		Settings: services.NewSettingsService(configStore),
		OpenLibrary: func(settings *domain.AppSettings) (driving.StoryService, func() error, error) {
			dataDir := settings.Storage.DataDir
			if dataDir == "" && configDir != "" {
				dataDir = filepath.Join(configDir, "data")
			}
			store, err := sqlite.NewStore(dataDir)
			if err != nil {
				return nil, nil, err
			}
			logger.Debug("story library: %s", store.Path())
			return services.NewStoryService(codec, store.StoryStore()), store.Close, nil
		},
	}, nil
}
