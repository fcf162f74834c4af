package report

import (
	"encoding/json"
	"fmt"

	"github.com/kytos-ng/lintgate/internal/model"
)

// Estruturas mínimas do SARIF 2.1.0 reconhecidas por GitHub e VSCode.
type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"` // error, warning, note
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// renderSARIF exporta os achados em SARIF 2.1.0 para consumo por pipelines.
// A ferramenta de origem de cada achado entra no ruleId (ferramenta/regra)
// já que o documento carrega um único driver.
func renderSARIF(rep model.AggregateReport) ([]byte, error) {
	results := make([]sarifResult, 0, len(rep.Findings))
	for _, f := range rep.Findings {
		uri := f.FilePath
		if uri == "" {
			uri = "UNKNOWN"
		}
		start := f.Line
		if start <= 0 {
			start = 1
		}
		rule := f.RuleID
		if rule == "" {
			rule = f.Tool
		} else {
			rule = f.Tool + "/" + rule
		}

		results = append(results, sarifResult{
			RuleID:  rule,
			Level:   sevToLevel(f.Severity),
			Message: sarifMessage{Text: f.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: uri},
					Region:           sarifRegion{StartLine: start},
				},
			}},
		})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: "lintgate", Version: Version}},
			Results: results,
		}},
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: gerar SARIF: %w", err)
	}
	return append(data, '\n'), nil
}

func sevToLevel(s model.Severity) string {
	switch s {
	case model.SevFatal, model.SevError:
		return "error"
	case model.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
