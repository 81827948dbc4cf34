package terminal

import (
	"encoding/json"
	"io"
	"os"

	"github.com/de-tools/alarm-atlas/pkg/models/api"
)

// Reporter writes reports as indented JSON, the same shape the web API
// serves, for piping into other tooling.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new JSON reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *api.Report) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
