package config

import (
	"github.com/kytos-ng/lintgate/internal/model"
)

// DefaultExclude é o conjunto de diretórios ignorados por padrão em todas as
// ferramentas, espelhando o que projetos Python costumam excluir.
var DefaultExclude = []string{".eggs", "build", "docs", "venv", ".git", "__pycache__"}

// defaults devolve a configuração embutida: limiares globais e o registro de
// ferramentas conhecidas. Tudo aqui pode ser sobrescrito pelo arquivo
// lintgate.yml; ferramentas fora deste registro são erro de configuração.
func defaults() *Config {
	return &Config{
		FailOn:       model.SevError,
		Concurrency:  1,
		Timeout:      DefaultTimeout,
		EnforceGrade: true,
		Exclude:      append([]string(nil), DefaultExclude...),
		Tools: []ToolSpec{
			{
				Name:    "pycodestyle",
				Enabled: true,
				Command: []string{"pycodestyle"},
				Format:  FormatLine,
				SeverityMap: map[string]model.Severity{
					"E": model.SevWarning,
					"W": model.SevInfo,
				},
				DefaultSeverity: model.SevWarning,
			},
			{
				Name:    "pydocstyle",
				Enabled: true,
				Command: []string{"pylama", "--linters", "pydocstyle"},
				Format:  FormatLine,
				SeverityMap: map[string]model.Severity{
					"D": model.SevWarning,
				},
				DefaultSeverity: model.SevWarning,
			},
			{
				Name:            "isort",
				Enabled:         true,
				Command:         []string{"isort", "--check-only"},
				Format:          FormatLine,
				DefaultSeverity: model.SevWarning,
				// isort relata no stderr ("ERROR: caminho mensagem")
				Stderr: true,
			},
			{
				Name:    "pylint",
				Enabled: true,
				Command: []string{"pylint", "--output-format=json"},
				Format:  FormatJSON,
				// W0511 (fixme): TODOs são rastreados fora do gate
				Disable: []string{"W0511"},
				// o código de saída do pylint é um bitmask (fatal=1, error=2,
				// warning=4, refactor=8, convention=16); 0..31 são desfechos
				// normais de análise
				OKExitCodes: exitCodeRange(31),
			},
			{
				Name:            "radon",
				Enabled:         true,
				Command:         []string{"radon", "mi", "-s"},
				Format:          FormatTable,
				MinGrade:        "C",
				DefaultSeverity: model.SevInfo,
				OKExitCodes:     []int{0},
			},
			{
				// validador embutido dos rótulos de nível dos testes
				// (small/medium/large); desabilitado até a configuração pedir
				Name:    "tiers",
				Enabled: false,
				Builtin: true,
				Match:   []string{"test_*.py", "*_test.py"},
			},
		},
	}
}

func exitCodeRange(max int) []int {
	codes := make([]int, 0, max+1)
	for c := 0; c <= max; c++ {
		codes = append(codes, c)
	}
	return codes
}
