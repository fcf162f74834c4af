package executor

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kytos-ng/lintgate/internal/config"
	"github.com/kytos-ng/lintgate/internal/model"
	"github.com/kytos-ng/lintgate/internal/plan"
)

func fakePlan(n int) []plan.Invocation {
	invs := make([]plan.Invocation, n)
	for i := range invs {
		invs[i] = plan.Invocation{
			Tool:    config.ToolSpec{Name: fmt.Sprintf("ferramenta-%02d", i)},
			Targets: []string{"alvo.py"},
		}
	}
	return invs
}

// fakeRun devolve um achado previsível por ferramenta.
func fakeRun(_ context.Context, inv plan.Invocation) model.RunResult {
	return model.RunResult{
		Tool:   inv.Tool.Name,
		Status: model.StatusSuccess,
		Findings: []model.Finding{{
			Tool:     inv.Tool.Name,
			RuleID:   "X100",
			Severity: model.SevWarning,
			Message:  "achado de " + inv.Tool.Name,
			FilePath: "alvo.py",
			Line:     1,
		}},
	}
}

func TestExecutePreservaOrdemDoPlano(t *testing.T) {
	invs := fakePlan(8)

	// atrasa as primeiras invocações para embaralhar a ordem de término
	run := func(ctx context.Context, inv plan.Invocation) model.RunResult {
		if inv.Tool.Name < "ferramenta-04" {
			time.Sleep(20 * time.Millisecond)
		}
		return fakeRun(ctx, inv)
	}

	results := Execute(context.Background(), invs, 8, run)
	if len(results) != len(invs) {
		t.Fatalf("esperado %d resultados, obtido %d", len(invs), len(results))
	}
	for i, res := range results {
		if res.Tool != invs[i].Tool.Name {
			t.Errorf("posição %d: esperado %s, obtido %s", i, invs[i].Tool.Name, res.Tool)
		}
	}
}

func TestExecuteLimiteDeConcorrencia(t *testing.T) {
	var ativo, pico int32

	run := func(ctx context.Context, inv plan.Invocation) model.RunResult {
		n := atomic.AddInt32(&ativo, 1)
		for {
			p := atomic.LoadInt32(&pico)
			if n <= p || atomic.CompareAndSwapInt32(&pico, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&ativo, -1)
		return fakeRun(ctx, inv)
	}

	Execute(context.Background(), fakePlan(6), 2, run)
	if got := atomic.LoadInt32(&pico); got > 2 {
		t.Errorf("esperado no máximo 2 invocações simultâneas, obtido %d", got)
	}
}

func TestExecuteSequencialEConcorrenteEquivalem(t *testing.T) {
	invs := fakePlan(5)

	seq := Execute(context.Background(), invs, 1, fakeRun)
	par := Execute(context.Background(), invs, 5, fakeRun)

	if !reflect.DeepEqual(seq, par) {
		t.Errorf("esperado resultados idênticos, obtido\nseq: %+v\npar: %+v", seq, par)
	}
}

func TestExecuteCancelamento(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Execute(ctx, fakePlan(3), 1, fakeRun)
	if len(results) != 3 {
		t.Fatalf("esperado 3 resultados mesmo cancelado, obtido %d", len(results))
	}
	for _, res := range results {
		if res.Status != model.StatusSkipped {
			t.Errorf("esperado status skipped, obtido %s", res.Status)
		}
		if res.Err == "" {
			t.Error("esperado motivo preenchido em Err")
		}
	}
}
