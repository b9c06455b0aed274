// Package parser converts structure descriptions — indented ASCII trees,
// JSON documents or YAML documents — into the unified tree model.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/autostruct/autostruct/internal/structure"
)

// Format selects which parser interprets the input text. The selector is
// authoritative; file extensions are advisory only.
type Format int

const (
	FormatASCII Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "ascii"
	}
}

// ParseFormat maps a selector string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascii", "tree", "txt":
		return FormatASCII, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatASCII, fmt.Errorf("unknown format %q (want ascii, json or yaml)", s)
}

// FormatForPath guesses a default Format from a file extension. Purely
// advisory; an explicit selector wins.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatASCII
	}
}

// FormatError reports input text the selected decoder could not turn into
// a tree. Only the JSON and YAML paths produce it; the ASCII parser skips
// malformed lines instead of failing the document.
type FormatError struct {
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s format: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Parse runs the parser selected by format over input and returns the
// root of the resulting tree.
func Parse(format Format, input string) (*structure.Node, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(input)
	case FormatYAML:
		return ParseYAML(input)
	default:
		return ParseASCII(input), nil
	}
}
