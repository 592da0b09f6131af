// Package cli provides the slumber command-line interface.
package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driving"
	"github.com/custodia-labs/slumber-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Services holds the constructors the commands use. They run after flag
// parsing, so --config and the data flags are honoured.
type Services struct {
	// OpenConfig opens the configuration at path, or the default location
	// when path is empty.
	OpenConfig func(path string) (driving.ConfigService, error)

	// Analyses builds an analysis service for a resolved run configuration.
	Analyses func(cfg domain.RunConfig) (driving.AnalysisService, error)
}

var (
	wiring        Services
	configService driving.ConfigService
)

// Persistent flags.
var (
	configPath    string
	dataRoot      string
	excludeNights []string
	keywords      []string
	densityWindow string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "slumber",
	Short: "Analyse nightly sleep-monitoring records",
	Long: `Slumber reads one directory per night of sleep-monitoring data
(ground truth bed/wake times, a free-text journal, a discrete event log and
an environmental sensor log), aligns the sources on a common timeline and
reports per-night metrics, latency categories and correlations.`,
	SilenceUsage:      true,
	PersistentPreRunE: openServices,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.slumber/config.toml)")
	flags.StringVar(&dataRoot, "root", "", "directory holding one sub-directory per night")
	flags.StringSliceVar(&excludeNights, "exclude", nil, "nights to skip, as YYYY-MM-DD (repeatable)")
	flags.StringSliceVar(&keywords, "keyword", nil, "journal keywords to tally (repeatable)")
	flags.StringVar(&densityWindow, "window", "", "event density window start: bed or onset")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug output and skipped nights")
}

// Configure sets the services used by the commands.
func Configure(s Services) {
	wiring = s
	configService = nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openServices(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(verbose)

	if wiring.OpenConfig == nil {
		return nil
	}
	svc, err := wiring.OpenConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	configService = svc
	return nil
}

// runConfig returns the stored configuration with command-line overrides applied.
func runConfig(cmd *cobra.Command) (domain.RunConfig, error) {
	if configService == nil {
		return domain.RunConfig{}, errors.New("config service not configured")
	}

	stored, err := configService.Get()
	if err != nil {
		return domain.RunConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := *stored

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = dataRoot
	}
	if flags.Changed("exclude") {
		cfg.Exclude = trimAll(excludeNights)
	}
	if flags.Changed("keyword") {
		cfg.Keywords = trimAll(keywords)
	}
	if flags.Changed("window") {
		cfg.DensityWindow = domain.WindowPolicy(strings.ToLower(strings.TrimSpace(densityWindow)))
	}

	if err := cfg.Validate(); err != nil {
		return domain.RunConfig{}, err
	}
	return cfg, nil
}

// analysisService builds the analysis service for the effective configuration.
func analysisService(cmd *cobra.Command) (driving.AnalysisService, domain.RunConfig, error) {
	cfg, err := runConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	if wiring.Analyses == nil {
		return nil, cfg, errors.New("analysis service not configured")
	}
	svc, err := wiring.Analyses(cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to set up analyses: %w", err)
	}
	return svc, cfg, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func formatPadding(d time.Duration) string {
	return fmt.Sprintf("%d min", int64(d/time.Minute))
}
