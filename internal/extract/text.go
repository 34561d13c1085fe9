package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Text extracts plain-text documents. A leading UTF-8 or UTF-16 byte order
// mark selects the decoding; otherwise the bytes are read as UTF-8, falling
// back to Windows-1252 when they are not valid UTF-8. Form feeds separate
// pages.
type Text struct{}

func (Text) Name() string { return "text" }

func (Text) Extract(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := checkFile(path); err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, &ExtractionError{Path: path, Reason: "read document", Err: err}
	}

	decoded, err := decodeText(data)
	if err != nil {
		return Result{}, &ExtractionError{Path: path, Reason: "decode text", Err: err}
	}

	pages := strings.Split(decoded, "\f")
	joined, kept := joinPages(pages)
	return Result{Text: joined, Pages: len(pages), PagesWithText: kept}, nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func decodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		// BOMOverride selects the UTF-16 byte order and strips the BOM.
		dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("utf-16 decode: %w", err)
		}
		return string(out), nil
	}

	// A literal U+FFFD is valid UTF-8; only invalid byte sequences fall back.
	data = bytes.TrimPrefix(data, bomUTF8)
	if utf8.Valid(data) {
		return string(data), nil
	}

	legacy, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("windows-1252 decode: %w", err)
	}
	return string(legacy), nil
}
