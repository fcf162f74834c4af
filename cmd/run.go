package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kytos-ng/lintgate/internal/aggregate"
	"github.com/kytos-ng/lintgate/internal/config"
	"github.com/kytos-ng/lintgate/internal/executor"
	"github.com/kytos-ng/lintgate/internal/logging"
	"github.com/kytos-ng/lintgate/internal/model"
	"github.com/kytos-ng/lintgate/internal/plan"
	"github.com/kytos-ng/lintgate/internal/report"
	"github.com/kytos-ng/lintgate/internal/scanner"
)

var (
	cfgPath     string
	format      string
	failOn      string
	onlyTools   string
	concurrency int
	timeoutFlag time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run [alvos...]",
	Short: "Roda o quality gate sobre os alvos (padrão: diretório atual)",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.InitLogger(debugMode)
		defer logging.Logger.Sync()
		log := logging.ForRun()

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		// precedência: flag > ambiente > arquivo > padrão embutido
		if cmd.Flags().Changed("fail-on") {
			sev, err := model.ParseSeverity(failOn)
			if err != nil {
				return fmt.Errorf("config: fail-on: %w", err)
			}
			cfg.FailOn = sev
		}
		if cmd.Flags().Changed("concurrency") {
			if concurrency < 1 {
				return fmt.Errorf("config: concurrency deve ser >= 1, obtido %d", concurrency)
			}
			cfg.Concurrency = concurrency
		}
		if cmd.Flags().Changed("timeout") {
			if timeoutFlag <= 0 {
				return fmt.Errorf("config: timeout deve ser positivo, obtido %s", timeoutFlag)
			}
			cfg.Timeout = timeoutFlag
		}
		if onlyTools != "" {
			if err := cfg.Restrict(splitAndTrim(onlyTools)); err != nil {
				return err
			}
		}
		switch format {
		case report.FormatHuman, report.FormatMachine, report.FormatSARIF:
		default:
			return fmt.Errorf("config: formato %q desconhecido (use human, machine ou sarif)", format)
		}

		targets := args
		if len(targets) == 0 {
			targets = []string{"."}
		}

		invs, err := plan.Build(cfg, targets)
		if err != nil {
			return err
		}
		log.Infof("plano com %d invocação(ões) sobre %d alvo(s)", len(invs), len(targets))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		results := executor.Execute(ctx, invs, cfg.Concurrency,
			func(ctx context.Context, inv plan.Invocation) model.RunResult {
				log.Infow("executando ferramenta", "ferramenta", inv.Tool.Name, "alvos", len(inv.Targets))
				res := scanner.Run(ctx, inv, cfg.Timeout)
				if res.Status != model.StatusSuccess {
					log.Warnw("ferramenta não concluiu", "ferramenta", res.Tool, "status", res.Status, "motivo", res.Err)
				}
				return res
			})

		rep := aggregate.Aggregate(results, aggregate.Thresholds{
			FailOn:       cfg.FailOn,
			EnforceGrade: cfg.EnforceGrade,
		})

		out, err := report.Render(rep, format)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return fmt.Errorf("escrever relatório: %w", err)
		}

		if report.ExitCode(rep) != ExitPass {
			return errGateFailed
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Arquivo de configuração (padrão: lintgate.yml quando existir)")
	runCmd.Flags().StringVarP(&format, "format", "f", report.FormatHuman, "Formato do relatório (human, machine, sarif)")
	runCmd.Flags().StringVar(&failOn, "fail-on", "", "Severidade que reprova o gate (info, warning, error, fatal)")
	runCmd.Flags().StringVar(&onlyTools, "only", "", "Roda apenas as ferramentas nomeadas (ex: pylint,radon)")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Limite de ferramentas simultâneas (padrão: 1)")
	runCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Tempo limite por ferramenta (padrão: 60s)")
	rootCmd.AddCommand(runCmd)
}

func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(strings.ToLower(part))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
