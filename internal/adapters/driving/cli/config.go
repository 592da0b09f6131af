package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View or create the configuration file.

Values are read from the config file and can be overridden per run with
--root, --exclude, --keyword and --window.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file",
	Long: `Writes the effective configuration (defaults plus any flags given)
to the config file. An existing file is kept unless --force is set.`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Printf("File: %s\n", configService.Path())
	cmd.Println()

	cmd.Println("[data]")
	cmd.Printf("  Root: %s\n", cfg.Root)
	cmd.Printf("  Exclude: %s\n", listOrNone(cfg.Exclude))
	cmd.Println()

	cmd.Println("[journal]")
	cmd.Printf("  Keywords: %s\n", listOrNone(cfg.Keywords))
	cmd.Println()

	cmd.Println("[analysis]")
	cmd.Printf("  Density window: %s (%s)\n", cfg.DensityWindow.Description(), cfg.DensityWindow)
	cmd.Printf("  Timeline padding: %s\n", formatPadding(cfg.TimelinePadding))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	path := configService.Path()
	if !configInitForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
	}

	if err := configService.Save(&cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
