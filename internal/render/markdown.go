package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dshills/engcheck/internal/schema"
)

type markdownRenderer struct {
	evidence bool
}

// cellEscaper keeps registry and document text from breaking table rows and
// list items.
var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

var mdFuncs = template.FuncMap{
	"cell": cellEscaper.Replace,
}

var mdChecklistTemplate = template.Must(template.New("checklist").Funcs(mdFuncs).Parse(`# EngCheck Checklist: {{ .Project }}

*Registry: {{ .Registry }}*
{{ if .Items }}
| ID | Requirement |
|----|-------------|
{{ range .Items }}| {{ cell .ID }} | {{ cell .Description }} |
{{ end }}{{ else }}
No standards apply to this project type.
{{ end }}`))

var mdReportTemplate = template.Must(template.New("report").Funcs(mdFuncs).Parse(`{{ range .Reports }}# EngCheck Report: {{ .Input.Document }}

**Project:** {{ .Input.Project }}
**Verdict:** {{ .Summary.Verdict }}
**Coverage:** {{ .Summary.Coverage }}% ({{ .Summary.SatisfiedCount }}/{{ .Summary.ChecklistCount }} items satisfied)
{{ if .Flags }}
## Non-compliance
{{ range .Flags }}
- **{{ cell .Item }}**: {{ cell .Message }}{{ end }}
{{ else }}
Document complies with selected standards.
{{ end }}{{ if and $.Evidence .Assessments }}
## Evidence
{{ range .Assessments }}{{ if .Satisfied }}
- **{{ cell .Item }}** matched "{{ cell .MatchedKeyword }}": > {{ cell .Evidence }}{{ end }}{{ end }}
{{ end }}
---
*Registry: {{ .Input.Registry }} | Pages with text: {{ .Meta.PagesWithText }}/{{ .Meta.Pages }} | Run: {{ .RunID }}*

{{ end }}`))

func (r *markdownRenderer) RenderChecklist(c *schema.Checklist) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdChecklistTemplate.Execute(&buf, c); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *markdownRenderer) RenderReports(reports []*schema.Report) ([]byte, error) {
	data := struct {
		Reports  []*schema.Report
		Evidence bool
	}{reports, r.evidence}

	var buf bytes.Buffer
	if err := mdReportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
