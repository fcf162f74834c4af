package aggregate

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/kytos-ng/lintgate/internal/model"
)

func sampleResults() []model.RunResult {
	return []model.RunResult{
		{
			Tool:     "pydocstyle",
			Status:   model.StatusSuccess,
			Duration: 120 * time.Millisecond,
			Findings: []model.Finding{
				{Tool: "pydocstyle", RuleID: "D100", Severity: model.SevWarning, Message: "sem docstring", FilePath: "b.py", Line: 1},
			},
		},
		{
			Tool:     "pylint",
			Status:   model.StatusSuccess,
			Duration: 300 * time.Millisecond,
			Findings: []model.Finding{
				{Tool: "pylint", RuleID: "E0602", Severity: model.SevError, Message: "variável indefinida", FilePath: "a.py", Line: 9},
				{Tool: "pylint", RuleID: "C0114", Severity: model.SevInfo, Message: "sem docstring", FilePath: "a.py", Line: 1},
			},
		},
	}
}

func TestAggregateSemFerramentas(t *testing.T) {
	rep := Aggregate(nil, Thresholds{FailOn: model.SevError})
	if rep.Verdict != model.VerdictPass {
		t.Errorf("esperado pass, obtido %s", rep.Verdict)
	}
	if rep.TotalFindings != 0 || len(rep.Findings) != 0 {
		t.Errorf("esperado 0 achados, obtido %d", rep.TotalFindings)
	}
}

func TestAggregateEhPura(t *testing.T) {
	th := Thresholds{FailOn: model.SevError, EnforceGrade: true}

	a := Aggregate(sampleResults(), th)
	b := Aggregate(sampleResults(), th)
	if !reflect.DeepEqual(a, b) {
		t.Error("esperado relatórios idênticos para entradas idênticas")
	}

	ja, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	jb, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ja, jb) {
		t.Error("esperado codificação byte a byte idêntica")
	}
}

func TestAggregateOrdenaAchados(t *testing.T) {
	rep := Aggregate(sampleResults(), Thresholds{FailOn: model.SevError})

	want := []model.Finding{
		{Tool: "pylint", RuleID: "C0114", Severity: model.SevInfo, Message: "sem docstring", FilePath: "a.py", Line: 1},
		{Tool: "pylint", RuleID: "E0602", Severity: model.SevError, Message: "variável indefinida", FilePath: "a.py", Line: 9},
		{Tool: "pydocstyle", RuleID: "D100", Severity: model.SevWarning, Message: "sem docstring", FilePath: "b.py", Line: 1},
	}
	if !reflect.DeepEqual(rep.Findings, want) {
		t.Errorf("ordem inesperada:\nesperado %+v\nobtido   %+v", want, rep.Findings)
	}
	if rep.Tools[0].Tool != "pydocstyle" || rep.Tools[1].Tool != "pylint" {
		t.Errorf("esperado resumos ordenados por ferramenta, obtido %+v", rep.Tools)
	}
}

func TestAggregateVeredito(t *testing.T) {
	tests := []struct {
		name     string
		failOn   model.Severity
		expected model.Verdict
	}{
		{"error_reprova", model.SevError, model.VerdictFail},
		{"fatal_aprova", model.SevFatal, model.VerdictPass},
		{"warning_reprova", model.SevWarning, model.VerdictFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Aggregate(sampleResults(), Thresholds{FailOn: tt.failOn})
			if rep.Verdict != tt.expected {
				t.Errorf("esperado %s, obtido %s", tt.expected, rep.Verdict)
			}
			// o veredito nunca esconde achados
			if rep.TotalFindings != 3 {
				t.Errorf("esperado 3 achados, obtido %d", rep.TotalFindings)
			}
		})
	}
}

func TestAggregateViolacaoDeNota(t *testing.T) {
	results := []model.RunResult{{
		Tool:   "radon",
		Status: model.StatusSuccess,
		Findings: []model.Finding{
			{Tool: "radon", RuleID: model.RuleGrade, Severity: model.SevError, Message: "nota D abaixo da mínima C", FilePath: "a.py"},
		},
	}}

	// com fail-on fatal só a imposição de nota reprova
	rep := Aggregate(results, Thresholds{FailOn: model.SevFatal, EnforceGrade: true})
	if rep.Verdict != model.VerdictFail {
		t.Errorf("esperado fail com enforce_grade ligado, obtido %s", rep.Verdict)
	}

	rep = Aggregate(results, Thresholds{FailOn: model.SevFatal, EnforceGrade: false})
	if rep.Verdict != model.VerdictPass {
		t.Errorf("esperado pass com enforce_grade desligado, obtido %s", rep.Verdict)
	}
}

func TestAggregateContagens(t *testing.T) {
	rep := Aggregate(sampleResults(), Thresholds{FailOn: model.SevError})

	var pylint model.ToolSummary
	for _, s := range rep.Tools {
		if s.Tool == "pylint" {
			pylint = s
		}
	}
	if pylint.Findings.Error != 1 || pylint.Findings.Info != 1 || pylint.Findings.Total() != 2 {
		t.Errorf("contagem inesperada para pylint: %+v", pylint.Findings)
	}
	if rep.DurationMS != 420 {
		t.Errorf("esperado duração total 420ms, obtido %d", rep.DurationMS)
	}
}
