// Package extract converts documents into plain text for compliance
// checking. Extractors are opaque to the evaluator: they either return the
// whole document's text or an *ExtractionError, never partial text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors matched via errors.Is.
var (
	ErrExtraction        = errors.New("document extraction failed")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Result is the text extracted from one document.
type Result struct {
	// Text is the extractable text of all pages in document order, joined
	// by "\n". Pages without text contribute nothing.
	Text          string
	Pages         int
	PagesWithText int
}

// Extractor turns the document at path into text.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, path string) (Result, error)
}

// ExtractionError reports a document that is missing, unreadable, corrupted
// or of an unsupported format.
type ExtractionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Path, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// ForPath selects an extractor by file extension.
func ForPath(path string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return PDF{}, nil
	case ".txt", ".text", ".md":
		return Text{}, nil
	default:
		return nil, &ExtractionError{
			Path:   path,
			Reason: fmt.Sprintf("no extractor for %q files (supported: .pdf, .txt, .text, .md)", ext),
			Err:    ErrUnsupportedFormat,
		}
	}
}

// joinPages joins non-blank pages with "\n" and reports how many were kept.
func joinPages(pages []string) (string, int) {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "\n"), len(kept)
}
