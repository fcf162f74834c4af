package adapters

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kytos-ng/lintgate/internal/config"
	"github.com/kytos-ng/lintgate/internal/model"
)

// Gramática da família table: uma linha por arquivo, no formato do
// radon mi -s:
//
//	caminho - NOTA (pontuação)
//
// A pontuação entre parênteses é opcional (radon sem -s não a imprime).
var tableRe = regexp.MustCompile(`^(.+?)\s+-\s+([A-F])(?:\s+\(([\d.]+)\))?$`)

func parseTable(tool config.ToolSpec, raw []byte) ([]model.Finding, error) {
	var out []model.Finding

	sc := bufio.NewScanner(bytes.NewReader(raw))
	sawText := false
	matched := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		sawText = true

		m := tableRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		matched++

		fp := filepath.ToSlash(m[1])
		grade := m[2]
		msg := fmt.Sprintf("índice de manutenibilidade %s", grade)
		if m[3] != "" {
			msg = fmt.Sprintf("índice de manutenibilidade %s (%s)", grade, m[3])
		}

		out = append(out, model.Finding{
			Tool:     tool.Name,
			RuleID:   "mi",
			Severity: model.SevInfo,
			Message:  msg,
			FilePath: fp,
		})

		// nota pior que a mínima vira o achado reservado de limiar
		if tool.MinGrade != "" && grade[0] > tool.MinGrade[0] {
			out = append(out, model.Finding{
				Tool:     tool.Name,
				RuleID:   model.RuleGrade,
				Severity: model.SevError,
				Message:  fmt.Sprintf("nota de manutenibilidade %s abaixo da mínima %s", grade, tool.MinGrade),
				FilePath: fp,
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("adapters: ler saída de %s: %w", tool.Name, err)
	}

	if sawText && matched == 0 {
		return nil, fmt.Errorf("adapters: saída de %s não casa com a gramática table", tool.Name)
	}
	return out, nil
}
