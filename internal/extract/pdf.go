package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/dshills/engcheck/internal/logger"
)

// PDF extracts the plain text of each page of a PDF file.
type PDF struct{}

func (PDF) Name() string { return "pdf" }

// Extract reads every page in order. Pages without a content stream or with
// blank text are skipped. A page whose content cannot be decoded fails the
// whole document, so callers never see partial text.
func (PDF) Extract(ctx context.Context, path string) (res Result, err error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := checkFile(path); err != nil {
		return Result{}, err
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &ExtractionError{Path: path, Reason: fmt.Sprintf("corrupted PDF: %v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return Result{}, &ExtractionError{Path: path, Reason: "not a readable PDF", Err: err}
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		page := r.Page(i)
		if page.V.IsNull() || page.V.Key("Contents").IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Result{}, &ExtractionError{Path: path, Reason: fmt.Sprintf("page %d could not be decoded", i), Err: err}
		}
		pages = append(pages, text)
	}

	text, kept := joinPages(pages)
	logger.ForComponent("extract").Debug("pdf extracted", "path", path, "pages", total, "pages_with_text", kept)
	return Result{Text: text, Pages: total, PagesWithText: kept}, nil
}

// checkFile rejects missing paths and directories before a parser sees them.
func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ExtractionError{Path: path, Reason: "document not found", Err: err}
		}
		return &ExtractionError{Path: path, Reason: "stat document", Err: err}
	}
	if info.IsDir() {
		return &ExtractionError{Path: path, Reason: "document is a directory"}
	}
	return nil
}
