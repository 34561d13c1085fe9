package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/engcheck/internal/schema"
)

func testChecklist() *schema.Checklist {
	return &schema.Checklist{
		Tool:     "engcheck",
		Version:  "1.0",
		Project:  "electrical",
		Registry: "standards.json",
		Items: []schema.Standard{
			{ID: "NEC-100", Description: "Grounding required", Projects: []string{"electrical"}, Keywords: []string{"ground"}},
			{ID: "NEC-210", Description: "GFCI protection in wet locations", Projects: []string{"electrical"}, Keywords: []string{"gfci"}},
		},
	}
}

func testReport(doc string, flags []schema.Flag) *schema.Report {
	verdict := schema.VerdictCompliant
	if len(flags) > 0 {
		verdict = schema.VerdictNonCompliant
	}
	if flags == nil {
		flags = []schema.Flag{}
	}
	return &schema.Report{
		Tool:    "engcheck",
		Version: "1.0",
		RunID:   "run-1",
		Input:   schema.Input{Document: doc, Project: "electrical", Registry: "standards.json"},
		Summary: schema.Summary{Verdict: verdict, ChecklistCount: 2, SatisfiedCount: 2 - len(flags), FlagCount: len(flags)},
		Flags:   flags,
		Assessments: []schema.Assessment{
			{Item: "NEC-100", Description: "Grounding required", Satisfied: true, MatchedKeyword: "ground", Evidence: "all circuits grounded"},
		},
		Meta: schema.Meta{Pages: 1, PagesWithText: 1, Extractor: "text"},
	}
}

func TestNewRenderer_Unknown(t *testing.T) {
	if _, err := NewRenderer("xml", Options{}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestText_Checklist(t *testing.T) {
	r, _ := NewRenderer("text", Options{})
	out, err := r.RenderChecklist(testChecklist())
	if err != nil {
		t.Fatal(err)
	}
	want := "[NEC-100] Grounding required\n[NEC-210] GFCI protection in wet locations\n"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestText_EmptyChecklist(t *testing.T) {
	r, _ := NewRenderer("text", Options{})
	out, err := r.RenderChecklist(&schema.Checklist{Project: "plumbing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestText_Compliant(t *testing.T) {
	r, _ := NewRenderer("text", Options{})
	out, err := r.RenderReports([]*schema.Report{testReport("plan.pdf", nil)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != MsgCompliant+"\n" {
		t.Errorf("got %q", out)
	}
}

func TestText_NonCompliant(t *testing.T) {
	r, _ := NewRenderer("text", Options{})
	rep := testReport("plan.pdf", []schema.Flag{{Item: "NEC-210", Message: "GFCI protection in wet locations"}})
	out, err := r.RenderReports([]*schema.Report{rep})
	if err != nil {
		t.Fatal(err)
	}
	want := MsgNonCompliant + "\n- NEC-210: GFCI protection in wet locations\n"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestText_NotApplicableIsCompliant(t *testing.T) {
	r, _ := NewRenderer("text", Options{})
	rep := testReport("plan.pdf", nil)
	rep.Summary.Verdict = schema.VerdictNotApplicable
	out, _ := r.RenderReports([]*schema.Report{rep})
	if !strings.HasPrefix(string(out), MsgCompliant) {
		t.Errorf("got %q", out)
	}
}

func TestText_MultipleDocumentsHeaded(t *testing.T) {
	r, _ := NewRenderer("text", Options{})
	out, _ := r.RenderReports([]*schema.Report{
		testReport("a.pdf", nil),
		testReport("b.pdf", []schema.Flag{{Item: "NEC-210", Message: "GFCI"}}),
	})
	s := string(out)
	a := strings.Index(s, "== a.pdf ==")
	b := strings.Index(s, "== b.pdf ==")
	if a < 0 || b < 0 || a > b {
		t.Errorf("document headers missing or out of order:\n%s", s)
	}
}

func TestText_Evidence(t *testing.T) {
	r, _ := NewRenderer("text", Options{Evidence: true})
	out, _ := r.RenderReports([]*schema.Report{testReport("plan.pdf", nil)})
	if !strings.Contains(string(out), `+ NEC-100: matched "ground" all circuits grounded`) {
		t.Errorf("evidence line missing:\n%s", out)
	}
}

func TestText_NoEvidenceByDefault(t *testing.T) {
	r, _ := NewRenderer("text", Options{})
	out, _ := r.RenderReports([]*schema.Report{testReport("plan.pdf", nil)})
	if strings.Contains(string(out), "matched") {
		t.Errorf("unexpected evidence:\n%s", out)
	}
}

func TestJSON_SingleReportIsObject(t *testing.T) {
	r, _ := NewRenderer("json", Options{})
	out, err := r.RenderReports([]*schema.Report{testReport("plan.pdf", nil)})
	if err != nil {
		t.Fatal(err)
	}
	var got schema.Report
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Input.Document != "plan.pdf" || got.Summary.Verdict != schema.VerdictCompliant {
		t.Errorf("unexpected report: %+v", got)
	}
	if !strings.Contains(string(out), `"flags": []`) {
		t.Errorf("flags should serialize as an empty array:\n%s", out)
	}
}

func TestJSON_MultipleReportsIsArray(t *testing.T) {
	r, _ := NewRenderer("json", Options{})
	out, err := r.RenderReports([]*schema.Report{testReport("a.pdf", nil), testReport("b.pdf", nil)})
	if err != nil {
		t.Fatal(err)
	}
	var got []schema.Report
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 2 || got[1].Input.Document != "b.pdf" {
		t.Errorf("unexpected reports: %+v", got)
	}
}

func TestJSON_FlagKeys(t *testing.T) {
	r, _ := NewRenderer("json", Options{})
	rep := testReport("plan.pdf", []schema.Flag{{Item: "NEC-210", Message: "GFCI"}})
	out, _ := r.RenderReports([]*schema.Report{rep})
	if !strings.Contains(string(out), `"item": "NEC-210"`) || !strings.Contains(string(out), `"message": "GFCI"`) {
		t.Errorf("flag keys missing:\n%s", out)
	}
}

func TestJSON_Checklist(t *testing.T) {
	r, _ := NewRenderer("json", Options{})
	out, err := r.RenderChecklist(testChecklist())
	if err != nil {
		t.Fatal(err)
	}
	var got schema.Checklist
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].ID != "NEC-100" {
		t.Errorf("unexpected checklist: %+v", got)
	}
}

func TestMarkdown_Checklist(t *testing.T) {
	r, _ := NewRenderer("md", Options{})
	out, err := r.RenderChecklist(testChecklist())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, "# EngCheck Checklist: electrical") {
		t.Errorf("missing heading:\n%s", s)
	}
	if !strings.Contains(s, "| NEC-100 | Grounding required |") {
		t.Errorf("missing row:\n%s", s)
	}
}

func TestMarkdown_Report(t *testing.T) {
	r, _ := NewRenderer("md", Options{Evidence: true})
	rep := testReport("plan.pdf", []schema.Flag{{Item: "NEC-210", Message: "GFCI"}})
	out, err := r.RenderReports([]*schema.Report{rep})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{
		"# EngCheck Report: plan.pdf",
		"**Verdict:** NON_COMPLIANT",
		"- **NEC-210**: GFCI",
		"## Evidence",
		`matched "ground"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in:\n%s", want, s)
		}
	}
}

func TestMarkdown_ChecklistEscapesPipes(t *testing.T) {
	r, _ := NewRenderer("md", Options{})
	c := testChecklist()
	c.Items[0].Description = "Grounding | bonding required\nat service"
	out, err := r.RenderChecklist(c)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `| NEC-100 | Grounding \| bonding required at service |`) {
		t.Errorf("row not escaped:\n%s", out)
	}
}

func TestMarkdown_ReportEscapesPipes(t *testing.T) {
	r, _ := NewRenderer("md", Options{Evidence: true})
	rep := testReport("plan.pdf", []schema.Flag{{Item: "NEC-210", Message: "GFCI | AFCI"}})
	rep.Assessments[0].Evidence = "panel A | panel B grounded"
	out, err := r.RenderReports([]*schema.Report{rep})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, `- **NEC-210**: GFCI \| AFCI`) {
		t.Errorf("flag message not escaped:\n%s", s)
	}
	if !strings.Contains(s, `> panel A \| panel B grounded`) {
		t.Errorf("evidence not escaped:\n%s", s)
	}
}
