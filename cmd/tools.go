package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kytos-ng/lintgate/internal/config"
)

var toolsCfgPath string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Lista as ferramentas registradas e seu estado",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(toolsCfgPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-14s %-10s %-12s %s\n", "FERRAMENTA", "FAMÍLIA", "ESTADO", "COMANDO")
		for _, t := range cfg.Tools {
			family := t.Format
			command := strings.Join(t.Command, " ")
			if t.Builtin {
				family = "builtin"
				command = "(no próprio processo)"
			}
			state := "desabilitada"
			if t.Enabled {
				state = "habilitada"
			}
			fmt.Fprintf(out, "%-14s %-10s %-12s %s\n", t.Name, family, state, command)
		}
		return nil
	},
}

func init() {
	toolsCmd.Flags().StringVarP(&toolsCfgPath, "config", "c", "", "Arquivo de configuração (padrão: lintgate.yml quando existir)")
	rootCmd.AddCommand(toolsCmd)
}
