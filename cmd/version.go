package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kytos-ng/lintgate/internal/report"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Mostra a versão do lintgate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "lintgate", report.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
