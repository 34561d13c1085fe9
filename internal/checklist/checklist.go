package checklist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/engcheck/internal/schema"
)

// Build returns the standards that apply to projectType, in input order.
// Tags match exactly and case-sensitively. A project type that no standard
// names yields an empty, non-nil checklist.
func Build(standards []schema.Standard, projectType string) []schema.Standard {
	out := make([]schema.Standard, 0, len(standards))
	for _, s := range standards {
		if s.AppliesTo(projectType) {
			out = append(out, s)
		}
	}
	return out
}

// Projects returns the distinct project tags named anywhere in standards,
// sorted.
func Projects(standards []schema.Standard) []string {
	seen := make(map[string]struct{})
	for _, s := range standards {
		for _, p := range s.Projects {
			seen[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Known reports whether any standard is tagged with projectType.
func Known(standards []schema.Standard, projectType string) bool {
	for _, s := range standards {
		if s.AppliesTo(projectType) {
			return true
		}
	}
	return false
}

// Lines renders each item as "[ID] description", one per line.
func Lines(items []schema.Standard) []string {
	lines := make([]string, 0, len(items))
	for _, s := range items {
		lines = append(lines, fmt.Sprintf("[%s] %s", s.ID, s.Description))
	}
	return lines
}

// Suggest returns known project tags that differ from projectType only by
// case or surrounding whitespace. Used to hint at a likely typo; Build itself
// never matches them.
func Suggest(standards []schema.Standard, projectType string) []string {
	want := strings.ToLower(strings.TrimSpace(projectType))
	var out []string
	for _, p := range Projects(standards) {
		if p != projectType && strings.ToLower(p) == want {
			out = append(out, p)
		}
	}
	return out
}
