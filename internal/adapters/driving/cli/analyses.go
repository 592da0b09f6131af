package cli

import (
	"github.com/spf13/cobra"
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "List the available analyses",
	Args:  cobra.NoArgs,
	RunE:  runAnalyses,
}

func init() {
	rootCmd.AddCommand(analysesCmd)
}

func runAnalyses(cmd *cobra.Command, _ []string) error {
	svc, _, err := analysisService(cmd)
	if err != nil {
		return err
	}

	st := stylesFor(cmd.OutOrStdout())
	for _, info := range svc.Available() {
		cmd.Printf("%s %s\n", st.Label.Render(padRight(info.Name, 16)), info.Description)
		cmd.Printf("%s %s\n", padRight("", 16), st.Muted.Render("requires "+info.Requires.String()))
	}
	return nil
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
