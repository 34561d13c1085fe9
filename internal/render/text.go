package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/engcheck/internal/compliance"
	"github.com/dshills/engcheck/internal/schema"
)

// Plain-text messages printed by check-document.
const (
	MsgCompliant    = "Document complies with selected standards."
	MsgNonCompliant = "Non-compliance detected:"
)

type style func(string) string

func plain(s string) string { return s }

func styled(st lipgloss.Style) style {
	return func(s string) string { return st.Render(s) }
}

type textRenderer struct {
	evidence bool
	heading  style
	pass     style
	fail     style
	id       style
	dim      style
}

func newTextRenderer(opts Options) *textRenderer {
	r := &textRenderer{
		evidence: opts.Evidence,
		heading:  plain,
		pass:     plain,
		fail:     plain,
		id:       plain,
		dim:      plain,
	}
	if opts.Color {
		r.heading = styled(lipgloss.NewStyle().Bold(true))
		r.pass = styled(lipgloss.NewStyle().Foreground(lipgloss.Color("10")))
		r.fail = styled(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")))
		r.id = styled(lipgloss.NewStyle().Foreground(lipgloss.Color("12")))
		r.dim = styled(lipgloss.NewStyle().Faint(true))
	}
	return r
}

// RenderChecklist prints "[ID] description" per item.
func (r *textRenderer) RenderChecklist(c *schema.Checklist) ([]byte, error) {
	var sb strings.Builder
	for _, s := range c.Items {
		fmt.Fprintf(&sb, "%s %s\n", r.id("["+s.ID+"]"), s.Description)
	}
	return []byte(sb.String()), nil
}

// RenderReports prints the compliance message and flags per document. With
// more than one document each block is headed by the document path.
func (r *textRenderer) RenderReports(reports []*schema.Report) ([]byte, error) {
	var sb strings.Builder
	for i, rep := range reports {
		if len(reports) > 1 {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "%s\n", r.heading("== "+rep.Input.Document+" =="))
		}
		if compliance.Compliant(rep.Summary.Verdict) {
			fmt.Fprintf(&sb, "%s\n", r.pass(MsgCompliant))
		} else {
			fmt.Fprintf(&sb, "%s\n", r.fail(MsgNonCompliant))
			for _, f := range rep.Flags {
				fmt.Fprintf(&sb, "- %s: %s\n", r.id(f.Item), f.Message)
			}
		}
		if r.evidence {
			for _, a := range rep.Assessments {
				if !a.Satisfied {
					continue
				}
				fmt.Fprintf(&sb, "+ %s: matched %q %s\n", r.id(a.Item), a.MatchedKeyword, r.dim(a.Evidence))
			}
		}
	}
	return []byte(sb.String()), nil
}
