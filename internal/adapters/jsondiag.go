package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kytos-ng/lintgate/internal/config"
	"github.com/kytos-ng/lintgate/internal/model"
)

// Gramática da família json: um array de diagnósticos estruturados, no
// formato do pylint --output-format=json.
type jsonDiag struct {
	Type      string `json:"type"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Symbol    string `json:"symbol"`
	Message   string `json:"message"`
	MessageID string `json:"message-id"`
}

func parseJSON(tool config.ToolSpec, raw []byte) ([]model.Finding, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var diags []jsonDiag
	if err := json.Unmarshal(raw, &diags); err != nil {
		return nil, fmt.Errorf("adapters: saída de %s não é um array JSON de diagnósticos: %w", tool.Name, err)
	}

	out := make([]model.Finding, 0, len(diags))
	for _, d := range diags {
		if disabled(tool, d.MessageID, d.Symbol) {
			continue
		}
		rule := d.MessageID
		if rule == "" {
			rule = d.Symbol
		}
		out = append(out, model.Finding{
			Tool:     tool.Name,
			RuleID:   rule,
			Severity: diagSeverity(tool, d.Type),
			Message:  strings.TrimSpace(d.Message),
			FilePath: filepath.ToSlash(d.Path),
			Line:     d.Line,
		})
	}
	return out, nil
}

func diagSeverity(tool config.ToolSpec, typ string) model.Severity {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "fatal":
		return model.SevFatal
	case "error":
		return model.SevError
	case "warning":
		return model.SevWarning
	case "convention", "refactor", "info":
		return model.SevInfo
	default:
		return tool.DefaultSeverity
	}
}
