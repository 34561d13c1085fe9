package render

import (
	"encoding/json"

	"github.com/dshills/engcheck/internal/schema"
)

type jsonRenderer struct{}

func (r *jsonRenderer) RenderChecklist(c *schema.Checklist) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// RenderReports emits a single object for one document and an array for
// several.
func (r *jsonRenderer) RenderReports(reports []*schema.Report) ([]byte, error) {
	if len(reports) == 1 {
		return json.MarshalIndent(reports[0], "", "  ")
	}
	if reports == nil {
		reports = []*schema.Report{}
	}
	return json.MarshalIndent(reports, "", "  ")
}
