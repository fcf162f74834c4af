package model

import (
	"fmt"
	"strings"
	"time"
)

// Severity classifica a importância de um achado, em ordem crescente:
// info < warning < error < fatal.
type Severity string

const (
	SevInfo    Severity = "info"
	SevWarning Severity = "warning"
	SevError   Severity = "error"
	SevFatal   Severity = "fatal"
)

// Rank devolve a posição da severidade na ordem total (info=1 ... fatal=4).
// Severidades desconhecidas ficam abaixo de todas (0).
func (s Severity) Rank() int {
	switch s {
	case SevInfo:
		return 1
	case SevWarning:
		return 2
	case SevError:
		return 3
	case SevFatal:
		return 4
	default:
		return 0
	}
}

// AtLeast informa se a severidade alcança ou ultrapassa o limiar dado.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// ParseSeverity interpreta um nome de severidade sem diferenciar maiúsculas.
func ParseSeverity(raw string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "info":
		return SevInfo, nil
	case "warning":
		return SevWarning, nil
	case "error":
		return SevError, nil
	case "fatal":
		return SevFatal, nil
	default:
		return "", fmt.Errorf("severidade %q desconhecida (use info, warning, error ou fatal)", raw)
	}
}

// Identificadores de regra reservados. Achados com esses ids são produzidos
// pelo próprio lintgate para relatar falhas de execução e violações de
// limiar, nunca pelas ferramentas externas.
const (
	RuleTimeout    = "lintgate/timeout"
	RuleCrashed    = "lintgate/crashed"
	RuleParseError = "lintgate/parse-error"
	RuleGrade      = "lintgate/grade"
	RuleTier       = "lintgate/tier"
)

// Finding é um problema normalizado relatado por uma ferramenta.
type Finding struct {
	Tool     string   `json:"tool"`
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	FilePath string   `json:"file_path"` // caminho com barras normais; vazio quando não se aplica
	Line     int      `json:"line,omitempty"`
}

// RunStatus descreve o desfecho de uma invocação de ferramenta.
type RunStatus string

const (
	StatusSuccess  RunStatus = "success"
	StatusTimeout  RunStatus = "timeout"
	StatusCrashed  RunStatus = "crashed"
	StatusNotFound RunStatus = "tool-not-found"
	StatusSkipped  RunStatus = "skipped" // cancelada antes de iniciar
)

// RunResult é o resultado de uma invocação, já normalizado pelo adapter.
type RunResult struct {
	Tool     string
	Status   RunStatus
	Findings []Finding
	ExitCode int // -1 quando o processo não chegou a encerrar normalmente
	Duration time.Duration
	Err      string // motivo legível quando a ferramenta não pôde rodar
}

// SeverityCount conta achados por severidade.
type SeverityCount struct {
	Info    int `json:"info"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
	Fatal   int `json:"fatal"`
}

// Add incrementa o contador da severidade dada.
func (c *SeverityCount) Add(s Severity) {
	switch s {
	case SevInfo:
		c.Info++
	case SevWarning:
		c.Warning++
	case SevError:
		c.Error++
	case SevFatal:
		c.Fatal++
	}
}

// Total soma os contadores de todas as severidades.
func (c SeverityCount) Total() int {
	return c.Info + c.Warning + c.Error + c.Fatal
}

// ToolSummary resume a execução de uma ferramenta no relatório agregado.
type ToolSummary struct {
	Tool       string        `json:"tool"`
	Status     RunStatus     `json:"status"`
	Findings   SeverityCount `json:"findings"`
	DurationMS int64         `json:"duration_ms"`
	Err        string        `json:"error,omitempty"`
}

// Verdict é o resultado final do quality gate.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// AggregateReport é o artefato final de uma execução: função pura dos
// RunResults e dos limiares configurados, sem timestamps nem ids, para que
// entradas iguais produzam sempre o mesmo relatório.
type AggregateReport struct {
	Verdict       Verdict       `json:"verdict"`
	FailOn        Severity      `json:"fail_on"`
	TotalFindings int           `json:"total_findings"`
	Tools         []ToolSummary `json:"tools"`
	Findings      []Finding     `json:"findings"`
	DurationMS    int64         `json:"duration_ms"` // soma do tempo das ferramentas
}
