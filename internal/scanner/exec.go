// Package scanner executa uma invocação planejada e devolve o resultado já
// normalizado. É o único pacote que toca primitivas de processo; falhas de
// execução nunca escapam como erro, viram status e achados no RunResult.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kytos-ng/lintgate/internal/adapters"
	"github.com/kytos-ng/lintgate/internal/model"
	"github.com/kytos-ng/lintgate/internal/plan"
)

// Run executa a invocação com o tempo limite dado (o da ferramenta, quando
// definido, tem precedência). Sem alvos a execução é um no-op bem-sucedido.
func Run(ctx context.Context, inv plan.Invocation, timeout time.Duration) model.RunResult {
	tool := inv.Tool
	res := model.RunResult{Tool: tool.Name, Status: model.StatusSuccess, ExitCode: -1}
	if len(inv.Targets) == 0 {
		res.ExitCode = 0
		return res
	}
	if tool.Builtin {
		return runBuiltin(inv)
	}
	if tool.Timeout > 0 {
		timeout = tool.Timeout
	}

	// o relógio da invocação é próprio: cancelar a execução não mata
	// processos em andamento, eles terminam pelo seu tempo limite
	tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	args := append(append([]string(nil), tool.Command[1:]...), tool.Args...)
	args = append(args, inv.Targets...)
	cmd := exec.CommandContext(tctx, tool.Command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)

	switch {
	case errors.Is(err, exec.ErrNotFound):
		res.Status = model.StatusNotFound
		res.Err = fmt.Sprintf("executável %q não encontrado no PATH", tool.Command[0])
		return res

	case errors.Is(tctx.Err(), context.DeadlineExceeded):
		// saída parcial descartada
		res.Status = model.StatusTimeout
		res.Err = fmt.Sprintf("excedeu o tempo limite de %s", timeout)
		res.Findings = []model.Finding{reserved(tool.Name, model.RuleTimeout,
			fmt.Sprintf("ferramenta excedeu o tempo limite de %s", timeout))}
		return res
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			res.Status = model.StatusCrashed
			res.Err = err.Error()
			res.Findings = []model.Finding{reserved(tool.Name, model.RuleCrashed,
				fmt.Sprintf("ferramenta falhou ao iniciar: %v", err))}
			return res
		}
	}

	res.ExitCode = cmd.ProcessState.ExitCode()
	if !tool.OKExit(res.ExitCode) {
		res.Status = model.StatusCrashed
		res.Err = firstLine(stderr.String())
		res.Findings = []model.Finding{reserved(tool.Name, model.RuleCrashed,
			fmt.Sprintf("ferramenta encerrou com código %d, fora do conjunto documentado", res.ExitCode))}
		return res
	}

	raw := stdout.Bytes()
	if tool.Stderr {
		raw = stderr.Bytes()
	}
	findings, perr := adapters.Parse(tool, raw)
	if perr != nil {
		// erro de gramática rebaixa para um único achado fatal; a execução
		// das demais ferramentas segue (status continua success)
		res.Findings = []model.Finding{reserved(tool.Name, model.RuleParseError, perr.Error())}
		return res
	}
	res.Findings = findings
	return res
}

func reserved(tool, rule, msg string) model.Finding {
	return model.Finding{
		Tool:     tool,
		RuleID:   rule,
		Severity: model.SevFatal,
		Message:  msg,
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
