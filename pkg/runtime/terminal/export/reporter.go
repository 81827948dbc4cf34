package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/alarm-atlas/pkg/models/api"
)

type TableConfig struct {
	ColumnWidth int
	MaxColumns  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		ColumnWidth: 28,
		MaxColumns:  6,
	}
}

// Reporter renders a report as a fixed-width table. Wide reports (the stale
// alarm audit carries thirteen columns) are truncated to the first MaxColumns
// columns; the JSON reporter carries the full rows.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *api.Report) error {
	headers := report.Headers
	if len(headers) > c.config.MaxColumns {
		headers = headers[:c.config.MaxColumns]
	}

	cell := func(value string) string {
		if len(value) > c.config.ColumnWidth {
			value = value[:c.config.ColumnWidth-3] + "..."
		}
		return fmt.Sprintf(" %-*s ", c.config.ColumnWidth, value)
	}

	funcMap := template.FuncMap{
		"separator": func() string {
			parts := make([]string, len(headers))
			for i := range headers {
				parts[i] = strings.Repeat("-", c.config.ColumnWidth+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"headerRow": func() string {
			parts := make([]string, len(headers))
			for i, h := range headers {
				parts[i] = cell(h.Header)
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"dataRow": func(row map[string]string) string {
			parts := make([]string, len(headers))
			for i, h := range headers {
				parts[i] = cell(row[h.Accessor])
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"join": strings.Join,
	}

	tmpl := `
{{.Name}}

Findings: {{.Count}}
Total Monthly Cost: {{.TotalMonthlyCost}}
{{if .FailedInventory}}
Inventory unavailable for: {{join .FailedInventory ", "}}
Findings for these resource types may be false positives.
{{end}}
{{if .Resource}}{{separator}}
{{headerRow}}
{{separator}}
{{range .Resource}}{{dataRow .}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
