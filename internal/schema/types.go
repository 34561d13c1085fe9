package schema

// Standard is a single compliance rule loaded from the registry.
type Standard struct {
	ID          string   `json:"id" yaml:"id"`
	Description string   `json:"description" yaml:"description"`
	Projects    []string `json:"projects" yaml:"projects"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
}

// AppliesTo reports whether the standard is tagged with projectType.
// The comparison is exact and case-sensitive.
func (s Standard) AppliesTo(projectType string) bool {
	for _, p := range s.Projects {
		if p == projectType {
			return true
		}
	}
	return false
}

// Flag reports a checklist item whose keywords were not found in a document.
type Flag struct {
	Item    string `json:"item"`
	Message string `json:"message"`
}

// Assessment is the per-item outcome of a compliance check.
type Assessment struct {
	Item           string `json:"item"`
	Description    string `json:"description"`
	Satisfied      bool   `json:"satisfied"`
	MatchedKeyword string `json:"matched_keyword,omitempty"`
	Evidence       string `json:"evidence,omitempty"`
}

// Verdict is the overall outcome for one document.
type Verdict string

const (
	VerdictCompliant     Verdict = "COMPLIANT"
	VerdictNonCompliant  Verdict = "NON_COMPLIANT"
	VerdictNotApplicable Verdict = "NOT_APPLICABLE"
)

// Summary holds the counts derived from a checklist and its flags.
type Summary struct {
	Verdict        Verdict `json:"verdict"`
	ChecklistCount int     `json:"checklist_count"`
	SatisfiedCount int     `json:"satisfied_count"`
	FlagCount      int     `json:"flag_count"`
	Coverage       int     `json:"coverage"` // percent of checklist items satisfied
}

// Input captures the parameters used for a compliance run.
type Input struct {
	Document     string `json:"document"`
	DocumentHash string `json:"document_hash"` // SHA-256 of the raw file bytes
	Project      string `json:"project"`
	Registry     string `json:"registry"`
	RegistryHash string `json:"registry_hash"`
}

// Meta holds extraction metadata for a run.
type Meta struct {
	Pages         int    `json:"pages"`
	PagesWithText int    `json:"pages_with_text"`
	Extractor     string `json:"extractor"`
	GeneratedAt   string `json:"generated_at"`
}

// Report is the top-level output of check-document for a single document.
type Report struct {
	Tool        string       `json:"tool"`
	Version     string       `json:"version"`
	RunID       string       `json:"run_id"`
	Input       Input        `json:"input"`
	Summary     Summary      `json:"summary"`
	Flags       []Flag       `json:"flags"`
	Assessments []Assessment `json:"assessments,omitempty"`
	Meta        Meta         `json:"meta"`
}

// Checklist is the output of generate-checklist.
type Checklist struct {
	Tool     string     `json:"tool"`
	Version  string     `json:"version"`
	Project  string     `json:"project"`
	Registry string     `json:"registry"`
	Items    []Standard `json:"items"`
}
