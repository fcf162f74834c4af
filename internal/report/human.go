package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kytos-ng/lintgate/internal/model"
)

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	fileStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle  = lipgloss.NewStyle().Faint(true)

	sevStyles = map[model.Severity]lipgloss.Style{
		model.SevInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		model.SevWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.SevError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		model.SevFatal:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	}
)

// renderHuman monta o relatório agrupado para leitura no terminal: veredito,
// situação de cada ferramenta (quais rodaram, quais não e por quê) e os
// achados agrupados por arquivo, na ordem determinística do agregador.
func renderHuman(rep model.AggregateReport) []byte {
	var b strings.Builder

	if rep.Verdict == model.VerdictPass {
		b.WriteString(passStyle.Render("✅ quality gate aprovado"))
	} else {
		b.WriteString(failStyle.Render("❌ quality gate reprovado"))
	}
	fmt.Fprintf(&b, " %s\n\n", dimStyle.Render(fmt.Sprintf("(fail-on: %s, %d achado(s), %dms)",
		rep.FailOn, rep.TotalFindings, rep.DurationMS)))

	b.WriteString("Ferramentas:\n")
	for _, s := range rep.Tools {
		fmt.Fprintf(&b, "  %-14s %-14s %d achado(s) em %dms", s.Tool, string(s.Status), s.Findings.Total(), s.DurationMS)
		if s.Err != "" {
			fmt.Fprintf(&b, " — %s", dimStyle.Render(s.Err))
		}
		b.WriteString("\n")
	}

	lastFile := "\x00"
	for _, f := range rep.Findings {
		if f.FilePath != lastFile {
			lastFile = f.FilePath
			header := f.FilePath
			if header == "" {
				header = "(geral)"
			}
			fmt.Fprintf(&b, "\n%s\n", fileStyle.Render(header))
		}
		tag := sevStyles[f.Severity].Render(fmt.Sprintf("[%s]", f.Severity))
		loc := "     -"
		if f.Line > 0 {
			loc = fmt.Sprintf("%6d", f.Line)
		}
		rule := f.RuleID
		if rule == "" {
			rule = "-"
		}
		fmt.Fprintf(&b, "%s  %-9s %-22s %s %s\n", loc, tag, rule, f.Message,
			dimStyle.Render("("+f.Tool+")"))
	}

	return []byte(b.String())
}
