// Package aggregate funde os resultados de todas as invocações em um único
// relatório determinístico. Aggregate é uma função pura: as mesmas entradas
// produzem sempre o mesmo relatório, byte a byte na renderização machine.
package aggregate

import (
	"sort"

	"github.com/kytos-ng/lintgate/internal/model"
)

// Thresholds são os limiares que decidem o veredito.
type Thresholds struct {
	// FailOn reprova o gate quando algum achado alcança esta severidade.
	FailOn model.Severity
	// EnforceGrade reprova também quando há violação de nota de
	// manutenibilidade (achado reservado lintgate/grade), mesmo que a
	// severidade dela fique abaixo de FailOn.
	EnforceGrade bool
}

// Aggregate funde os achados de todos os resultados, preservando a atribuição
// por ferramenta, e calcula o veredito. Zero ferramentas é aprovação com zero
// achados.
func Aggregate(results []model.RunResult, th Thresholds) model.AggregateReport {
	rep := model.AggregateReport{
		Verdict:  model.VerdictPass,
		FailOn:   th.FailOn,
		Findings: []model.Finding{},
		Tools:    make([]model.ToolSummary, 0, len(results)),
	}

	for _, res := range results {
		summary := model.ToolSummary{
			Tool:       res.Tool,
			Status:     res.Status,
			DurationMS: res.Duration.Milliseconds(),
			Err:        res.Err,
		}
		for _, f := range res.Findings {
			summary.Findings.Add(f.Severity)
			rep.Findings = append(rep.Findings, f)

			if f.Severity.AtLeast(th.FailOn) {
				rep.Verdict = model.VerdictFail
			}
			if th.EnforceGrade && f.RuleID == model.RuleGrade {
				rep.Verdict = model.VerdictFail
			}
		}
		rep.Tools = append(rep.Tools, summary)
		rep.DurationMS += res.Duration.Milliseconds()
	}

	SortFindings(rep.Findings)
	sort.Slice(rep.Tools, func(i, j int) bool { return rep.Tools[i].Tool < rep.Tools[j].Tool })
	rep.TotalFindings = len(rep.Findings)
	return rep
}

// SortFindings ordena por (caminho, linha, ferramenta, regra, mensagem) — uma
// ordem total, para que relatórios de entradas iguais saiam sempre iguais.
func SortFindings(fs []model.Finding) {
	sort.Slice(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Tool != b.Tool {
			return a.Tool < b.Tool
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Message < b.Message
	})
}
