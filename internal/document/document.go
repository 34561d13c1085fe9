package document

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/dshills/engcheck/internal/extract"
)

// Document is a checked file with its extracted text.
type Document struct {
	Path          string
	Hash          string // "sha256:<hex>" of the raw file bytes
	Text          string
	Pages         int
	PagesWithText int
	Extractor     string
}

// Load extracts the text of the file at path with ex and hashes its raw
// bytes. Any failure is returned as an *extract.ExtractionError, or the
// context error if ctx was cancelled.
func Load(ctx context.Context, ex extract.Extractor, path string) (*Document, error) {
	res, err := ex.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	hash, err := hashFile(path)
	if err != nil {
		return nil, &extract.ExtractionError{Path: path, Reason: "hash document", Err: err}
	}

	return &Document{
		Path:          path,
		Hash:          hash,
		Text:          res.Text,
		Pages:         res.Pages,
		PagesWithText: res.PagesWithText,
		Extractor:     ex.Name(),
	}, nil
}

// Open selects an extractor from the file extension and loads path.
func Open(ctx context.Context, path string) (*Document, error) {
	ex, err := extract.ForPath(path)
	if err != nil {
		return nil, err
	}
	return Load(ctx, ex, path)
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}
