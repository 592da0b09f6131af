// Command slumber analyses nightly sleep-monitoring records.
package main

import (
	"os"

	"github.com/custodia-labs/slumber-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/slumber-cli/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/slumber-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/slumber-cli/internal/analyses"
	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driving"
	"github.com/custodia-labs/slumber-cli/internal/core/services"
)

func main() {
	cli.Configure(cli.Services{
		OpenConfig: openConfig,
		Analyses:   newAnalysisService,
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// openConfig uses the TOML file at path, or ~/.slumber/config.toml.
func openConfig(path string) (driving.ConfigService, error) {
	var (
		store *file.ConfigStore
		err   error
	)
	if path == "" {
		store, err = file.NewConfigStore("")
	} else {
		store, err = file.OpenConfigStore(path)
	}
	if err != nil {
		return nil, err
	}
	return services.NewConfigService(store), nil
}

// newAnalysisService runs the built-in analyses over the on-disk archive.
func newAnalysisService(cfg domain.RunConfig) (driving.AnalysisService, error) {
	all, err := analyses.Defaults(cfg)
	if err != nil {
		return nil, err
	}
	return services.NewAnalysisService(filesystem.NewArchive(cfg.Root), cfg, all...), nil
}
