// Package executor dirige as invocações do plano com paralelismo limitado.
package executor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kytos-ng/lintgate/internal/model"
	"github.com/kytos-ng/lintgate/internal/plan"
)

// RunFunc executa uma invocação; em produção é o scanner, nos testes um fake.
type RunFunc func(ctx context.Context, inv plan.Invocation) model.RunResult

// Execute roda o plano com até limit invocações simultâneas e devolve um
// RunResult por invocação, na ordem do plano, qualquer que seja a ordem de
// término. Uma falha de ferramenta nunca interrompe as irmãs; cancelar o
// contexto impede novas invocações de começar (status skipped) mas ainda
// devolve todos os resultados já coletados.
func Execute(ctx context.Context, invs []plan.Invocation, limit int, run RunFunc) []model.RunResult {
	if limit < 1 {
		limit = 1
	}

	results := make([]model.RunResult, len(invs))
	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, inv := range invs {
		i, inv := i, inv
		g.Go(func() error {
			// cada goroutine escreve só na sua posição; não há estado
			// compartilhado entre invocações
			if ctx.Err() != nil {
				results[i] = model.RunResult{
					Tool:     inv.Tool.Name,
					Status:   model.StatusSkipped,
					ExitCode: -1,
					Err:      "execução cancelada antes de iniciar",
				}
				return nil
			}
			results[i] = run(ctx, inv)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
