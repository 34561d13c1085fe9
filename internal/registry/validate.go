package registry

import (
	"fmt"
	"strings"

	"github.com/dshills/engcheck/internal/schema"
)

func validateEntries(entries []any) ([]schema.Standard, error) {
	standards := make([]schema.Standard, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, raw := range entries {
		s, err := validateEntry(raw, i)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[s.ID]; dup {
			return nil, &MalformedDataError{
				Index:  i,
				Entry:  s.ID,
				Field:  "id",
				Reason: fmt.Sprintf("duplicate id (first defined at entry #%d)", first),
			}
		}
		seen[s.ID] = i
		standards = append(standards, s)
	}
	return standards, nil
}

func validateEntry(raw any, idx int) (schema.Standard, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return schema.Standard{}, malformed(idx, "", "", "entry must be an object")
	}

	// Read the id first so later failures can name the entry.
	id, reason := requiredString(obj, "id")
	if reason != "" {
		return schema.Standard{}, malformed(idx, "", "id", reason)
	}

	desc, reason := requiredString(obj, "description")
	if reason != "" {
		return schema.Standard{}, malformed(idx, id, "description", reason)
	}
	projects, reason := requiredStringList(obj, "projects")
	if reason != "" {
		return schema.Standard{}, malformed(idx, id, "projects", reason)
	}
	keywords, reason := requiredStringList(obj, "keywords")
	if reason != "" {
		return schema.Standard{}, malformed(idx, id, "keywords", reason)
	}

	return schema.Standard{
		ID:          id,
		Description: desc,
		Projects:    projects,
		Keywords:    keywords,
	}, nil
}

// requiredString returns the field value, or a non-empty reason when the
// field is missing, not a string, or blank.
func requiredString(obj map[string]any, field string) (string, string) {
	v, ok := obj[field]
	if !ok || v == nil {
		return "", "is required"
	}
	s, ok := v.(string)
	if !ok {
		return "", "must be a string"
	}
	if strings.TrimSpace(s) == "" {
		return "", "must not be blank"
	}
	return s, ""
}

func requiredStringList(obj map[string]any, field string) ([]string, string) {
	v, ok := obj[field]
	if !ok || v == nil {
		return nil, "is required"
	}
	items, ok := v.([]any)
	if !ok {
		return nil, "must be a list of strings"
	}
	if len(items) == 0 {
		return nil, "must not be empty"
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, "must be a list of strings"
		}
		if strings.TrimSpace(s) == "" {
			return nil, "must not contain blank values"
		}
		out = append(out, s)
	}
	return out, ""
}
