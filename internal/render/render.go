package render

import (
	"fmt"

	"github.com/dshills/engcheck/internal/schema"
)

// Renderer formats checklists and compliance reports for output.
type Renderer interface {
	RenderChecklist(c *schema.Checklist) ([]byte, error)
	// RenderReports formats one report per checked document, in order.
	RenderReports(reports []*schema.Report) ([]byte, error)
}

// Options tune a renderer.
type Options struct {
	// Color enables terminal styling in the text format.
	Color bool
	// Evidence includes per-item assessments in the text and md formats.
	Evidence bool
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "text", "json", "md".
func NewRenderer(format string, opts Options) (Renderer, error) {
	switch format {
	case "text":
		return newTextRenderer(opts), nil
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{evidence: opts.Evidence}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are text, json, md", format)
	}
}
