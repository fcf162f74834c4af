package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kytos-ng/lintgate/internal/model"
)

// fakeGateConfig troca os comandos de duas ferramentas por echos de shell:
// a "pycodestyle" falsa sempre relata um warning e a "pydocstyle" falsa
// sempre relata um error. As demais ficam de fora.
const fakeGateConfig = `
tools:
  pycodestyle:
    command: ["sh", "-c", "echo 'app/a.py:1:1: E100 aviso de estilo'"]
  pydocstyle:
    command: ["sh", "-c", "echo 'app/b.py:2:1: E200 erro de docstring'"]
    severity_map:
      E: error
  isort:
    enabled: false
  pylint:
    enabled: false
  radon:
    enabled: false
`

func writeFakeGate(t *testing.T) (cfgPath, targetDir string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath = filepath.Join(dir, "lintgate.yml")
	if err := os.WriteFile(cfgPath, []byte(fakeGateConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	targetDir = filepath.Join(dir, "app")
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(targetDir, "a.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, targetDir
}

func runGate(t *testing.T, args ...string) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs(args)
	return Execute(), buf.Bytes()
}

func decodeReport(t *testing.T, out []byte) model.AggregateReport {
	t.Helper()
	var rep model.AggregateReport
	if err := json.Unmarshal(out, &rep); err != nil {
		t.Fatalf("saída machine inválida: %v\n%s", err, out)
	}
	return rep
}

func TestRunGateReprovado(t *testing.T) {
	cfgPath, targetDir := writeFakeGate(t)

	code, out := runGate(t, "run", "--config", cfgPath, "--format", "machine", "--fail-on", "error", targetDir)
	if code != ExitGateFail {
		t.Fatalf("esperado código de saída %d, obtido %d", ExitGateFail, code)
	}

	rep := decodeReport(t, out)
	if rep.Verdict != model.VerdictFail {
		t.Errorf("esperado veredito fail, obtido %s", rep.Verdict)
	}
	if rep.TotalFindings != 2 || len(rep.Findings) != 2 {
		t.Fatalf("esperado 2 achados, obtido %d", rep.TotalFindings)
	}
	// ordem determinística por (caminho, linha, ferramenta)
	if rep.Findings[0].FilePath != "app/a.py" || rep.Findings[1].FilePath != "app/b.py" {
		t.Errorf("ordem inesperada: %+v", rep.Findings)
	}
	if rep.Findings[0].Severity != model.SevWarning || rep.Findings[1].Severity != model.SevError {
		t.Errorf("severidades inesperadas: %+v", rep.Findings)
	}
}

func TestRunGateAprovadoComLimiarFatal(t *testing.T) {
	cfgPath, targetDir := writeFakeGate(t)

	code, out := runGate(t, "run", "--config", cfgPath, "--format", "machine", "--fail-on", "fatal", targetDir)
	if code != ExitPass {
		t.Fatalf("esperado código de saída %d, obtido %d", ExitPass, code)
	}

	rep := decodeReport(t, out)
	if rep.Verdict != model.VerdictPass {
		t.Errorf("esperado veredito pass, obtido %s", rep.Verdict)
	}
	// o veredito muda mas os achados continuam listados
	if rep.TotalFindings != 2 {
		t.Errorf("esperado 2 achados, obtido %d", rep.TotalFindings)
	}
}

func TestRunGateConcorrenciaNaoMudaORelatorio(t *testing.T) {
	cfgPath, targetDir := writeFakeGate(t)

	_, seqOut := runGate(t, "run", "--config", cfgPath, "--format", "machine", "--fail-on", "error", "--concurrency", "1", targetDir)
	_, parOut := runGate(t, "run", "--config", cfgPath, "--format", "machine", "--fail-on", "error", "--concurrency", "4", targetDir)

	seq := decodeReport(t, seqOut)
	par := decodeReport(t, parOut)

	// só as durações podem variar entre execuções
	seq.DurationMS, par.DurationMS = 0, 0
	for i := range seq.Tools {
		seq.Tools[i].DurationMS = 0
	}
	for i := range par.Tools {
		par.Tools[i].DurationMS = 0
	}
	if !reflect.DeepEqual(seq, par) {
		t.Errorf("esperado relatórios equivalentes:\nseq: %+v\npar: %+v", seq, par)
	}
}

func TestRunErroDeConfiguracao(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lintgate.yml")
	if err := os.WriteFile(cfgPath, []byte("tools:\n  flake8:\n    enabled: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _ := runGate(t, "run", "--config", cfgPath, "--format", "machine", "--fail-on", "error", dir)
	if code != ExitInternal {
		t.Errorf("esperado código de saída %d para configuração inválida, obtido %d", ExitInternal, code)
	}
}

func TestRunFormatoInvalido(t *testing.T) {
	cfgPath, targetDir := writeFakeGate(t)

	code, _ := runGate(t, "run", "--config", cfgPath, "--format", "xml", "--fail-on", "error", targetDir)
	if code != ExitInternal {
		t.Errorf("esperado código de saída %d, obtido %d", ExitInternal, code)
	}
}

func TestToolsListaORegistro(t *testing.T) {
	code, out := runGate(t, "tools")
	if code != ExitPass {
		t.Fatalf("esperado código de saída 0, obtido %d", code)
	}
	for _, want := range []string{"pycodestyle", "pydocstyle", "isort", "pylint", "radon", "tiers", "builtin"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("esperado %q na listagem:\n%s", want, out)
		}
	}
}

func TestVersion(t *testing.T) {
	code, out := runGate(t, "version")
	if code != ExitPass {
		t.Fatalf("esperado código de saída 0, obtido %d", code)
	}
	if !bytes.Contains(out, []byte("lintgate")) {
		t.Errorf("saída inesperada: %s", out)
	}
}
