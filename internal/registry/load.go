package registry

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/engcheck/internal/schema"
)

// Format selects the decoder for a registry source.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath returns FormatYAML for .yaml/.yml sources and FormatJSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a registry file and returns its standards in file order.
func Load(path string) ([]schema.Standard, error) {
	standards, _, err := load(path)
	return standards, err
}

// load returns the parsed standards along with the "sha256:<hex>" digest of
// the bytes they were parsed from.
func load(path string) ([]schema.Standard, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", &NotFoundError{Path: path, Err: err}
		}
		return nil, "", fmt.Errorf("registry: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("registry: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("registry: read %s: %w", path, err)
	}

	standards, err := Parse(data, FormatForPath(path))
	if err != nil {
		var me *MalformedDataError
		if errors.As(err, &me) {
			me.Source = path
		}
		return nil, "", err
	}
	return standards, fmt.Sprintf("sha256:%x", sha256.Sum256(data)), nil
}

// Parse decodes and validates a registry payload. Unknown entry fields are
// ignored.
func Parse(data []byte, format Format) ([]schema.Standard, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, malformed(-1, "", "", "payload is empty")
	}

	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &MalformedDataError{Index: -1, Reason: "decode yaml", Err: err}
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &MalformedDataError{Index: -1, Reason: "decode json", Err: err}
		}
	}

	entries, ok := doc.([]any)
	if !ok {
		return nil, malformed(-1, "", "", "top level must be an array of standards")
	}
	return validateEntries(entries)
}
