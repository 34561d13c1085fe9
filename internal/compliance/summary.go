package compliance

import "github.com/dshills/engcheck/internal/schema"

// Summarize derives counts, coverage and the verdict from a checklist and
// the flags Evaluate produced for it. Coverage is the integer percentage of
// satisfied items; an empty checklist is NOT_APPLICABLE with 100% coverage.
func Summarize(checklist []schema.Standard, flags []schema.Flag) schema.Summary {
	total := len(checklist)
	satisfied := total - len(flags)
	if satisfied < 0 {
		satisfied = 0
	}

	coverage := 100
	if total > 0 {
		coverage = satisfied * 100 / total
	}

	return schema.Summary{
		Verdict:        Verdict(checklist, flags),
		ChecklistCount: total,
		SatisfiedCount: satisfied,
		FlagCount:      len(flags),
		Coverage:       coverage,
	}
}

// Verdict is NOT_APPLICABLE for an empty checklist, COMPLIANT when nothing
// was flagged and NON_COMPLIANT otherwise.
func Verdict(checklist []schema.Standard, flags []schema.Flag) schema.Verdict {
	switch {
	case len(checklist) == 0:
		return schema.VerdictNotApplicable
	case len(flags) == 0:
		return schema.VerdictCompliant
	default:
		return schema.VerdictNonCompliant
	}
}

// Compliant reports whether v should be treated as passing.
func Compliant(v schema.Verdict) bool {
	return v == schema.VerdictCompliant || v == schema.VerdictNotApplicable
}
