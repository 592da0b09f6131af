package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/slumber-cli/internal/logger"
)

var (
	analyzeJSON   bool
	analyzePoints bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [analysis...]",
	Short: "Run analyses over the night archive",
	Long: `Loads every night under the data root and runs the named analyses,
or all of them when none are named. Nights that are excluded, incomplete or
unparseable are skipped and listed in the report; they never stop the run.

Run "slumber analyses" to list the available analyses.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzePoints, "points", false, "list every night's value in text output")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	svc, cfg, err := analysisService(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(args))
	for _, a := range args {
		names = append(names, strings.ToLower(strings.TrimSpace(a)))
	}

	logger.Info("Analysing %s", cfg.Root)
	report, err := svc.Run(cmd.Context(), names...)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return renderJSON(cmd.OutOrStdout(), report)
	}
	renderText(cmd.OutOrStdout(), stylesFor(cmd.OutOrStdout()), report, analyzePoints)
	return nil
}
