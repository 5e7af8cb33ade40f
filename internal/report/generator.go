// Package report renders monthly report documents into portable formats.
// Visual rendering (PDF, charts) lives with the consuming collaborator;
// this package only produces data formats.
package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"fjacquet/finanza/internal/logging"
	"fjacquet/finanza/internal/reportagg"

	"github.com/gocarina/gocsv"
)

// Generator renders report documents in various formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new report Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{logger: logger.WithField("component", "ReportGenerator")}
}

// Generate renders the document in the specified format (json, xml or csv).
// It returns the rendered bytes, or an error if rendering fails or the
// format is unsupported.
func (g *Generator) Generate(doc reportagg.Document, format string) ([]byte, error) {
	g.logger.Debug("Rendering report",
		logging.Field{Key: logging.FieldMonth, Value: doc.Month},
		logging.Field{Key: logging.FieldFormat, Value: format})

	switch format {
	case "json":
		return g.generateJSON(doc)
	case "xml":
		return g.generateXML(doc)
	case "csv":
		return g.generateCSV(doc)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(doc reportagg.Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateXML(doc reportagg.Document) ([]byte, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(out)), nil
}

// summaryLine is one key,value record of the CSV summary preamble.
type summaryLine struct {
	Key   string `csv:"key"`
	Value string `csv:"value"`
}

// generateCSV renders the summary block as key,value preamble lines,
// then a blank line, then the transaction row table.
func (g *Generator) generateCSV(doc reportagg.Document) ([]byte, error) {
	preamble := []summaryLine{
		{Key: "title", Value: doc.Title},
		{Key: "month", Value: doc.Month},
		{Key: "generated_at", Value: doc.GeneratedAt},
		{Key: "total_income", Value: doc.Summary.TotalIncome.String()},
		{Key: "total_expense", Value: doc.Summary.TotalExpense.String()},
		{Key: "net", Value: doc.Summary.Net.String()},
	}

	var buf bytes.Buffer
	if err := gocsv.MarshalWithoutHeaders(&preamble, &buf); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report summary")
		return nil, fmt.Errorf("failed to marshal CSV report summary: %w", err)
	}
	buf.WriteString("\n")

	rows, err := gocsv.MarshalString(&doc.Rows)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	buf.WriteString(rows)
	return buf.Bytes(), nil
}
