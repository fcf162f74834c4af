package plan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// ResolveTargets expande os caminhos informados em uma lista de arquivos
// regulares: diretórios são percorridos recursivamente, caminhos repetidos
// são removidos e o resultado sai ordenado, com barras normais, para que o
// plano seja determinístico. Um caminho inexistente é erro de configuração.
func ResolveTargets(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	add := func(p string) {
		p = filepath.ToSlash(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		err := filepath.WalkDir(p, func(sub string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				add(sub)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("plan: resolver alvo %s: %w", p, err)
		}
	}

	sort.Strings(out)
	return out, nil
}
