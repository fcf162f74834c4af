// Package tier valida os rótulos de nível dos testes. Todo arquivo de teste
// deve marcar seus casos com um dos níveis small, medium ou large
// (@pytest.mark.<nível>), que o executor de testes externo usa para seleção.
// O lintgate só confere os rótulos; nunca executa os testes.
package tier

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kytos-ng/lintgate/internal/model"
)

const toolName = "tiers"

// Tiers são os níveis reconhecidos.
var Tiers = []string{"small", "medium", "large"}

// marcadores do pytest que não são níveis e não devem gerar achados
var knownMarks = map[string]bool{
	"parametrize":    true,
	"skip":           true,
	"skipif":         true,
	"xfail":          true,
	"usefixtures":    true,
	"filterwarnings": true,
	"timeout":        true,
}

// Check examina cada arquivo de teste e relata violações de rótulo: arquivo
// com testes sem nenhum nível (warning) e marcador que não é nível nem
// marcador conhecido do pytest (error). Todos os achados usam a regra
// reservada lintgate/tier.
func Check(targets []string) ([]model.Finding, error) {
	var out []model.Finding
	for _, path := range targets {
		findings, err := checkFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, findings...)
	}
	return out, nil
}

func checkFile(path string) ([]model.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tier: abrir %s: %w", path, err)
	}
	defer f.Close()

	var out []model.Finding
	hasTier := false
	firstTest := 0

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())

		if firstTest == 0 && strings.HasPrefix(line, "def test_") {
			firstTest = n
		}

		mark, ok := strings.CutPrefix(line, "@pytest.mark.")
		if !ok {
			continue
		}
		if i := strings.IndexAny(mark, "( \t"); i >= 0 {
			mark = mark[:i]
		}
		switch {
		case isTier(mark):
			hasTier = true
		case knownMarks[mark]:
			// marcador legítimo do pytest, não é nível
		default:
			out = append(out, model.Finding{
				Tool:     toolName,
				RuleID:   model.RuleTier,
				Severity: model.SevError,
				Message:  fmt.Sprintf("marcador %q não é um nível reconhecido (use small, medium ou large)", mark),
				FilePath: path,
				Line:     n,
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tier: ler %s: %w", path, err)
	}

	if firstTest > 0 && !hasTier {
		out = append(out, model.Finding{
			Tool:     toolName,
			RuleID:   model.RuleTier,
			Severity: model.SevWarning,
			Message:  "arquivo de teste sem rótulo de nível (small, medium ou large)",
			FilePath: path,
			Line:     firstTest,
		})
	}
	return out, nil
}

func isTier(mark string) bool {
	for _, t := range Tiers {
		if mark == t {
			return true
		}
	}
	return false
}
