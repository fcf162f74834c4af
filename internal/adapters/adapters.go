// Package adapters converte a saída bruta de cada ferramenta em achados
// normalizados. A família de parser vem de ToolSpec.Format, nunca do nome da
// ferramenta: ferramentas novas entram adicionando uma família ou
// reaproveitando uma existente, sem ramificar por identidade.
package adapters

import (
	"fmt"

	"github.com/kytos-ng/lintgate/internal/config"
	"github.com/kytos-ng/lintgate/internal/model"
)

// Parse interpreta a saída bruta segundo a família da ferramenta. Saída
// não vazia que não casa com a gramática esperada é erro; o chamador rebaixa
// esse erro para um achado fatal em vez de abortar a execução.
func Parse(tool config.ToolSpec, raw []byte) ([]model.Finding, error) {
	switch tool.Format {
	case config.FormatLine:
		return parseLine(tool, raw)
	case config.FormatTable:
		return parseTable(tool, raw)
	case config.FormatJSON:
		return parseJSON(tool, raw)
	default:
		return nil, fmt.Errorf("adapters: família de parser %q desconhecida", tool.Format)
	}
}

// disabled informa se algum dos identificadores está na lista de regras
// suprimidas da ferramenta.
func disabled(tool config.ToolSpec, ids ...string) bool {
	for _, d := range tool.Disable {
		for _, id := range ids {
			if id != "" && id == d {
				return true
			}
		}
	}
	return false
}
