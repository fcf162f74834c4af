package scanner

import (
	"fmt"
	"time"

	"github.com/kytos-ng/lintgate/internal/model"
	"github.com/kytos-ng/lintgate/internal/plan"
	"github.com/kytos-ng/lintgate/internal/tier"
)

// BuiltinFunc é um verificador que roda no próprio processo, sem subprocesso,
// mas cumpre o mesmo contrato de um adapter de ferramenta externa.
type BuiltinFunc func(targets []string) ([]model.Finding, error)

var builtins = map[string]BuiltinFunc{
	"tiers": tier.Check,
}

func runBuiltin(inv plan.Invocation) model.RunResult {
	res := model.RunResult{Tool: inv.Tool.Name, Status: model.StatusSuccess, ExitCode: 0}

	fn, ok := builtins[inv.Tool.Name]
	if !ok {
		res.Status = model.StatusNotFound
		res.ExitCode = -1
		res.Err = fmt.Sprintf("verificador embutido %q não registrado", inv.Tool.Name)
		return res
	}

	start := time.Now()
	findings, err := fn(inv.Targets)
	res.Duration = time.Since(start)

	if err != nil {
		res.Findings = []model.Finding{reserved(inv.Tool.Name, model.RuleParseError, err.Error())}
		return res
	}
	res.Findings = findings
	return res
}
