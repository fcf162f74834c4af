package adapters

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/kytos-ng/lintgate/internal/config"
	"github.com/kytos-ng/lintgate/internal/model"
)

// Gramática da família line: uma ocorrência por linha, nos formatos
//
//	caminho:linha:coluna: CODIGO mensagem   (pycodestyle, pylama)
//	caminho:linha: CODIGO mensagem
//	ERROR: caminho mensagem                 (isort --check-only)
//
// O código é opcional; sem ele a severidade padrão da ferramenta vale.
var (
	lineRe = regexp.MustCompile(`^(.+?):(\d+)(?::\d+)?:\s+(.*)$`)
	codeRe = regexp.MustCompile(`^([A-Z]+\d+)\s+(.*)$`)
)

func parseLine(tool config.ToolSpec, raw []byte) ([]model.Finding, error) {
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

		if rest, ok := strings.CutPrefix(line, "ERROR: "); ok {
			f, ok := parseErrorLine(tool, rest)
			if ok {
				matched++
				out = append(out, f)
			}
			continue
		}

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			// linhas de resumo e rodapés não fazem parte da gramática
			continue
		}
		matched++
		ln, _ := strconv.Atoi(m[2])

		code := ""
		msg := m[3]
		if cm := codeRe.FindStringSubmatch(msg); cm != nil {
			code, msg = cm[1], cm[2]
		}
		if disabled(tool, code) {
			continue
		}

		out = append(out, model.Finding{
			Tool:     tool.Name,
			RuleID:   code,
			Severity: severityFor(tool, code),
			Message:  strings.TrimSpace(msg),
			FilePath: filepath.ToSlash(m[1]),
			Line:     ln,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("adapters: ler saída de %s: %w", tool.Name, err)
	}

	if sawText && matched == 0 {
		return nil, fmt.Errorf("adapters: saída de %s não casa com a gramática line", tool.Name)
	}
	return out, nil
}

// parseErrorLine trata o formato do isort: "ERROR: caminho mensagem".
func parseErrorLine(tool config.ToolSpec, rest string) (model.Finding, bool) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return model.Finding{}, false
	}
	path := rest
	msg := ""
	if i := strings.IndexByte(rest, ' '); i > 0 {
		path, msg = rest[:i], strings.TrimSpace(rest[i+1:])
	}
	return model.Finding{
		Tool:     tool.Name,
		Severity: tool.DefaultSeverity,
		Message:  msg,
		FilePath: filepath.ToSlash(path),
	}, true
}

// severityFor resolve a severidade de um código pelo prefixo mais longo no
// mapa da ferramenta; sem correspondência vale a severidade padrão.
func severityFor(tool config.ToolSpec, code string) model.Severity {
	sev := tool.DefaultSeverity
	best := -1
	for prefix, s := range tool.SeverityMap {
		if strings.HasPrefix(code, prefix) && len(prefix) > best {
			best = len(prefix)
			sev = s
		}
	}
	return sev
}
