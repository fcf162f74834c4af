// Package plan resolve os alvos de uma execução e monta o plano de
// invocações do quality gate.
//
// Contrato de globs: cada padrão é comparado com path.Match contra o caminho
// completo (com barras normais) e contra cada segmento do caminho,
// diferenciando maiúsculas de minúsculas. Um nome simples como "venv"
// portanto exclui qualquer diretório com esse nome, em qualquer nível.
package plan

import (
	"path"
	"strings"

	"github.com/kytos-ng/lintgate/internal/config"
)

// Invocation é uma execução planejada de uma ferramenta sobre o subconjunto
// de alvos que sobrou depois dos globs. Consumida exatamente uma vez pelo
// executor; nunca alterada depois de criada.
type Invocation struct {
	Tool    config.ToolSpec
	Targets []string
}

// Build monta o plano: resolve os caminhos alvo uma única vez e, para cada
// ferramenta habilitada, aplica os globs de inclusão e exclusão. Ferramentas
// cujo subconjunto efetivo fica vazio saem do plano. A ordem do plano segue a
// ordem das ferramentas (por nome); a ordem de execução é decisão do executor.
func Build(cfg *config.Config, targetPaths []string) ([]Invocation, error) {
	targets, err := ResolveTargets(targetPaths)
	if err != nil {
		return nil, err
	}

	var invs []Invocation
	for _, tool := range cfg.EnabledTools() {
		exclude := append(append([]string(nil), cfg.Exclude...), tool.Exclude...)

		var subset []string
		for _, t := range targets {
			if matchesAny(tool.Match, t) && !matchesAny(exclude, t) {
				subset = append(subset, t)
			}
		}
		if len(subset) == 0 {
			continue
		}
		invs = append(invs, Invocation{Tool: tool, Targets: subset})
	}
	return invs, nil
}

// matchesAny aplica o contrato de globs do pacote: o padrão casa quando bate
// com o caminho inteiro ou com algum de seus segmentos.
func matchesAny(patterns []string, p string) bool {
	segments := strings.Split(p, "/")
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, p); ok {
			return true
		}
		for _, seg := range segments {
			if ok, _ := path.Match(pat, seg); ok {
				return true
			}
		}
	}
	return false
}
