// Package report renderiza o relatório agregado e mapeia o veredito para o
// código de saída do processo.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/kytos-ng/lintgate/internal/model"
)

// Version é a versão divulgada nos relatórios e no comando version.
const Version = "0.1.0"

// Formatos de saída reconhecidos.
const (
	FormatHuman   = "human"
	FormatMachine = "machine"
	FormatSARIF   = "sarif"
)

// Render serializa o relatório no formato pedido. As saídas machine e sarif
// são determinísticas: o mesmo relatório rende sempre os mesmos bytes.
func Render(rep model.AggregateReport, format string) ([]byte, error) {
	switch format {
	case FormatHuman:
		return renderHuman(rep), nil
	case FormatMachine:
		return renderMachine(rep)
	case FormatSARIF:
		return renderSARIF(rep)
	default:
		return nil, fmt.Errorf("report: formato %q desconhecido (use human, machine ou sarif)", format)
	}
}

// ExitCode traduz o veredito: 0 aprovado, 1 reprovado. O código 2 pertence ao
// cmd, reservado para erros de configuração e internos.
func ExitCode(rep model.AggregateReport) int {
	if rep.Verdict == model.VerdictFail {
		return 1
	}
	return 0
}

func renderMachine(rep model.AggregateReport) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: gerar JSON: %w", err)
	}
	return append(data, '\n'), nil
}
