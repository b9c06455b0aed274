package parser

import (
	"strings"

	"github.com/autostruct/autostruct/internal/structure"
)

// branchGlyphs terminate a line's indentation region. The vertical bar is
// deliberately absent: continuation bars count as plain indentation so
// that a child under "│   " lands deeper than its parent's connector.
const branchGlyphs = "├└┌┐┘┬┴┼─"

// trimCutset strips glyphs and dashes that survive the indentation scan on
// irregularly drawn lines.
const trimCutset = "├└│─┌┐┘┬┴┼ \t"

// frame pairs an open directory with the indentation level that
// introduced it.
type frame struct {
	dir    *structure.Node
	indent int
}

// ParseASCII converts an indented tree — plain indentation, pipe
// continuation or Unicode box drawing — into a structure tree. It is
// best-effort and never fails: lines without usable content are skipped.
//
// A directory marker with an empty name (a lone "/") is dropped without
// opening a stack frame, so deeper lines that follow attach to the
// previous open ancestor. Historical behavior, kept on purpose.
func ParseASCII(input string) *structure.Node {
	root := structure.NewRoot()
	stack := []frame{{dir: root, indent: -1}}

	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent, content := scanLine(line)
		name := strings.Trim(content, trimCutset)
		if name == "" {
			continue
		}

		// A line can only nest under an ancestor strictly shallower
		// than itself.
		for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].dir

		if strings.HasSuffix(name, "/") {
			dirName := strings.TrimSuffix(name, "/")
			if dirName == "" {
				continue
			}
			dir := structure.NewDir(dirName)
			parent.Add(dir)
			stack = append(stack, frame{dir: dir, indent: indent})
			continue
		}
		parent.Add(structure.NewFile(name))
	}
	return root
}

// scanLine computes a line's indentation level and raw content region.
// Spaces and vertical bars count one unit, tabs count four. The first
// branch glyph ends the indentation region, but the dashes and spaces
// immediately after it still accumulate indent before content starts.
func scanLine(line string) (indent int, content string) {
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		switch r := runes[i]; {
		case r == '\t':
			indent += 4
			i++
		case r == ' ' || r == '│':
			indent++
			i++
		case strings.ContainsRune(branchGlyphs, r):
			i++
			for i < len(runes) && (runes[i] == ' ' || runes[i] == '─') {
				indent++
				i++
			}
			return indent, strings.TrimSpace(string(runes[i:]))
		default:
			return indent, strings.TrimSpace(string(runes[i:]))
		}
	}
	return indent, ""
}
