// Package config monta a configuração de uma execução do lintgate a partir
// dos padrões embutidos, do arquivo lintgate.yml e das variáveis de ambiente
// LINTGATE_*. Precedência: flag > ambiente > arquivo > padrão embutido
// (as flags são aplicadas pelo pacote cmd depois do Load).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kytos-ng/lintgate/internal/model"
)

const (
	// DefaultTimeout é o tempo limite por ferramenta quando nem a
	// configuração nem a flag --timeout definem outro valor.
	DefaultTimeout = 60 * time.Second

	// DefaultConfigFile é lido quando --config não é informado e o
	// arquivo existe no diretório atual.
	DefaultConfigFile = "lintgate.yml"
)

// Famílias de parser reconhecidas (ver internal/adapters).
const (
	FormatLine  = "line"
	FormatTable = "table"
	FormatJSON  = "json"
)

// ToolSpec descreve uma ferramenta registrada, já com os padrões embutidos
// e as sobrescritas do arquivo aplicadas. Imutável depois do Load.
type ToolSpec struct {
	Name            string
	Enabled         bool
	Command         []string // argv fixo (executável + argumentos do template)
	Args            []string // argumentos extras vindos da configuração
	Format          string   // família de parser: line | table | json
	Match           []string // globs de inclusão (padrão: *.py)
	Exclude         []string // globs de exclusão específicos da ferramenta
	SeverityMap     map[string]model.Severity
	DefaultSeverity model.Severity
	OKExitCodes     []int  // códigos de saída documentados da ferramenta
	MinGrade        string // nota mínima de manutenibilidade (A..F, família table)
	Disable         []string
	Timeout         time.Duration // 0 usa o tempo limite global
	Stderr          bool          // lê os achados do stderr (isort)
	Builtin         bool          // roda no próprio processo, sem subprocesso
}

// OKExit informa se o código de saída pertence ao conjunto documentado.
func (t ToolSpec) OKExit(code int) bool {
	for _, c := range t.OKExitCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Config reúne os limiares globais e as ferramentas registradas.
type Config struct {
	FailOn       model.Severity
	Concurrency  int
	Timeout      time.Duration
	EnforceGrade bool
	Exclude      []string // globs excluídos para todas as ferramentas
	Tools        []ToolSpec
}

// EnabledTools devolve cópias das ferramentas habilitadas, ordenadas por nome.
func (c *Config) EnabledTools() []ToolSpec {
	out := make([]ToolSpec, 0, len(c.Tools))
	for _, t := range c.Tools {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}

// Tool procura uma ferramenta registrada pelo nome.
func (c *Config) Tool(name string) (ToolSpec, bool) {
	for _, t := range c.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return ToolSpec{}, false
}

// Restrict habilita apenas as ferramentas nomeadas, desabilitando o resto.
// Nomes desconhecidos são erro de configuração.
func (c *Config) Restrict(names []string) error {
	wanted := map[string]bool{}
	for _, n := range names {
		if _, ok := c.Tool(n); !ok {
			return fmt.Errorf("config: ferramenta desconhecida %q", n)
		}
		wanted[n] = true
	}
	for i := range c.Tools {
		c.Tools[i].Enabled = c.Tools[i].Enabled && wanted[c.Tools[i].Name]
	}
	return nil
}

// Espelho do YAML. Campos ausentes herdam o valor anterior (padrão embutido),
// por isso ponteiros onde o zero é um valor válido.
type fileConfig struct {
	FailOn       string                  `yaml:"fail_on"`
	Concurrency  *int                    `yaml:"concurrency"`
	Timeout      string                  `yaml:"timeout"`
	EnforceGrade *bool                   `yaml:"enforce_grade"`
	Exclude      []string                `yaml:"exclude"`
	Tools        map[string]toolOverride `yaml:"tools"`
}

type toolOverride struct {
	Enabled         *bool             `yaml:"enabled"`
	Command         []string          `yaml:"command"`
	Args            []string          `yaml:"args"`
	Format          string            `yaml:"format"`
	Match           []string          `yaml:"match"`
	Exclude         []string          `yaml:"exclude"`
	SeverityMap     map[string]string `yaml:"severity_map"`
	DefaultSeverity string            `yaml:"default_severity"`
	OKExitCodes     []int             `yaml:"ok_exit_codes"`
	MinGrade        string            `yaml:"min_grade"`
	Disable         []string          `yaml:"disable"`
	Timeout         string            `yaml:"timeout"`
	Stderr          *bool             `yaml:"stderr"`
}

// Load constrói a configuração completa de uma execução. Com path vazio o
// arquivo padrão é usado quando existir; um path explícito inexistente é erro.
func Load(configPath string) (*Config, error) {
	cfg := defaults()

	// .env é opcional; alimenta as variáveis LINTGATE_* abaixo
	_ = godotenv.Load()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := cfg.applyFile(configPath, data); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// sem arquivo: segue com padrões e ambiente
	default:
		return nil, fmt.Errorf("config: ler %s: %w", configPath, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	// campos desconhecidos no YAML são erro, não silêncio
	dec.KnownFields(true)

	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // arquivo vazio equivale a nenhuma sobrescrita
		}
		return fmt.Errorf("config: interpretar %s: %w", path, err)
	}

	if fc.FailOn != "" {
		sev, err := model.ParseSeverity(fc.FailOn)
		if err != nil {
			return fmt.Errorf("config: fail_on: %w", err)
		}
		c.FailOn = sev
	}
	if fc.Concurrency != nil {
		c.Concurrency = *fc.Concurrency
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config: timeout: %w", err)
		}
		c.Timeout = d
	}
	if fc.EnforceGrade != nil {
		c.EnforceGrade = *fc.EnforceGrade
	}
	if fc.Exclude != nil {
		// substitui a lista padrão por inteiro
		c.Exclude = fc.Exclude
	}

	for name, ov := range fc.Tools {
		idx := -1
		for i := range c.Tools {
			if c.Tools[i].Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("config: ferramenta desconhecida %q", name)
		}
		if err := applyOverride(&c.Tools[idx], ov); err != nil {
			return fmt.Errorf("config: tools.%s: %w", name, err)
		}
	}
	return nil
}

func applyOverride(spec *ToolSpec, ov toolOverride) error {
	if ov.Enabled != nil {
		spec.Enabled = *ov.Enabled
	}
	if ov.Command != nil {
		spec.Command = ov.Command
	}
	if ov.Args != nil {
		spec.Args = ov.Args
	}
	if ov.Format != "" {
		spec.Format = ov.Format
	}
	if ov.Match != nil {
		spec.Match = ov.Match
	}
	if ov.Exclude != nil {
		spec.Exclude = ov.Exclude
	}
	if ov.SeverityMap != nil {
		m := make(map[string]model.Severity, len(ov.SeverityMap))
		for prefix, raw := range ov.SeverityMap {
			sev, err := model.ParseSeverity(raw)
			if err != nil {
				return fmt.Errorf("severity_map.%s: %w", prefix, err)
			}
			m[prefix] = sev
		}
		spec.SeverityMap = m
	}
	if ov.DefaultSeverity != "" {
		sev, err := model.ParseSeverity(ov.DefaultSeverity)
		if err != nil {
			return fmt.Errorf("default_severity: %w", err)
		}
		spec.DefaultSeverity = sev
	}
	if ov.OKExitCodes != nil {
		spec.OKExitCodes = ov.OKExitCodes
	}
	if ov.MinGrade != "" {
		spec.MinGrade = strings.ToUpper(strings.TrimSpace(ov.MinGrade))
	}
	if ov.Disable != nil {
		spec.Disable = ov.Disable
	}
	if ov.Timeout != "" {
		d, err := time.ParseDuration(ov.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		spec.Timeout = d
	}
	if ov.Stderr != nil {
		spec.Stderr = *ov.Stderr
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LINTGATE_FAIL_ON"); v != "" {
		sev, err := model.ParseSeverity(v)
		if err != nil {
			return fmt.Errorf("config: LINTGATE_FAIL_ON: %w", err)
		}
		c.FailOn = sev
	}
	if v := os.Getenv("LINTGATE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: LINTGATE_CONCURRENCY: %w", err)
		}
		c.Concurrency = n
	}
	if v := os.Getenv("LINTGATE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: LINTGATE_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// finish normaliza e valida a configuração montada.
func (c *Config) finish() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("config: concurrency deve ser >= 1, obtido %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout deve ser positivo, obtido %s", c.Timeout)
	}
	if err := validGlobs(c.Exclude); err != nil {
		return fmt.Errorf("config: exclude: %w", err)
	}

	sort.Slice(c.Tools, func(i, j int) bool { return c.Tools[i].Name < c.Tools[j].Name })

	for i := range c.Tools {
		if err := c.Tools[i].normalize(); err != nil {
			return fmt.Errorf("config: tools.%s: %w", c.Tools[i].Name, err)
		}
	}
	return nil
}

func (t *ToolSpec) normalize() error {
	if t.DefaultSeverity == "" {
		t.DefaultSeverity = model.SevWarning
	}
	if len(t.Match) == 0 {
		t.Match = []string{"*.py"}
	}
	if err := validGlobs(t.Match); err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if err := validGlobs(t.Exclude); err != nil {
		return fmt.Errorf("exclude: %w", err)
	}
	if t.Timeout < 0 {
		return fmt.Errorf("timeout deve ser positivo, obtido %s", t.Timeout)
	}
	if t.MinGrade != "" {
		if len(t.MinGrade) != 1 || t.MinGrade[0] < 'A' || t.MinGrade[0] > 'F' {
			return fmt.Errorf("min_grade %q inválida (use uma letra de A a F)", t.MinGrade)
		}
	}
	if t.Builtin {
		return nil
	}
	if len(t.Command) == 0 || strings.TrimSpace(t.Command[0]) == "" {
		return fmt.Errorf("comando vazio")
	}
	switch t.Format {
	case FormatLine, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("família de parser %q inválida (use line, table ou json)", t.Format)
	}
	if len(t.OKExitCodes) == 0 {
		t.OKExitCodes = []int{0, 1}
	}
	return nil
}

func validGlobs(patterns []string) error {
	for _, p := range patterns {
		if _, err := path.Match(p, "x"); err != nil {
			return fmt.Errorf("glob %q inválido", p)
		}
	}
	return nil
}
