package etl

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/BartekS5/odevalidator/pkg/models"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportWriter is a Loader that encodes the report to Out.
type ReportWriter struct {
	Out    io.Writer
	Format string
}

func NewReportWriter(out io.Writer, format string) (*ReportWriter, error) {
	switch format {
	case "", FormatJSON:
		format = FormatJSON
	case FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
	return &ReportWriter{Out: out, Format: format}, nil
}

func (w *ReportWriter) Load(report *models.BatchReport) error {
	if w.Format == FormatYAML {
		enc := yaml.NewEncoder(w.Out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to write YAML report: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
