package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Códigos de saída do processo. O chamador distingue "o código tem
// problemas" (1) de "o próprio gate quebrou" (2).
const (
	ExitPass     = 0
	ExitGateFail = 1
	ExitInternal = 2
)

// errGateFailed sinaliza reprovação do gate; não é erro interno.
var errGateFailed = errors.New("quality gate reprovado")

var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "lintgate",
	Short: "lintgate - Quality gate agregador de linters",
	Long: "lintgate roda um conjunto de verificadores estáticos independentes sobre o\n" +
		"código, normaliza as saídas heterogêneas em achados uniformes e produz um\n" +
		"único veredito determinístico de aprovação ou reprovação.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute roda o comando e devolve o código de saída do processo.
func Execute() int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return ExitPass
	case errors.Is(err, errGateFailed):
		return ExitGateFail
	default:
		fmt.Fprintln(os.Stderr, "erro:", err)
		return ExitInternal
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Habilita logs em nível debug")
}
