package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/autostruct/autostruct/internal/structure"
)

// ParseJSON decodes a JSON document into a structure tree. The top-level
// value must be an object. Entries are interpreted recursively: an object
// is a directory, null or any other scalar is a file (the value is
// ignored), and an array under a key is a directory whose contents are
// declared as an ordered list — string elements are plain file names,
// object elements contribute their entries, anything else is skipped.
//
// The decoder's token stream is walked directly so that children keep
// their declaration order; Unmarshal into a map would lose it.
func ParseJSON(input string) (*structure.Node, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &FormatError{Format: FormatJSON, Err: jsonErr(err)}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &FormatError{Format: FormatJSON, Err: errors.New("top-level value must be an object")}
	}

	root := structure.NewRoot()
	if err := decodeObject(dec, root); err != nil {
		return nil, &FormatError{Format: FormatJSON, Err: err}
	}
	switch _, err := dec.Token(); {
	case err == nil:
		return nil, &FormatError{Format: FormatJSON, Err: errors.New("unexpected data after document")}
	case err != io.EOF:
		return nil, &FormatError{Format: FormatJSON, Err: jsonErr(err)}
	}
	return root, nil
}

// decodeObject consumes an object's entries (the opening brace is already
// read) and adds them to dir.
func decodeObject(dec *json.Decoder, dir *structure.Node) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return jsonErr(err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in object", tok)
		}
		if err := decodeValue(dec, dir, key); err != nil {
			return err
		}
	}
}

// decodeValue consumes one value and adds the node it denotes under dir.
func decodeValue(dec *json.Decoder, dir *structure.Node, name string) error {
	tok, err := dec.Token()
	if err != nil {
		return jsonErr(err)
	}
	if delim, ok := tok.(json.Delim); ok {
		child := structure.NewDir(name)
		var derr error
		if delim == '{' {
			derr = decodeObject(dec, child)
		} else {
			derr = decodeList(dec, child)
		}
		if derr != nil {
			return derr
		}
		dir.Add(child)
		return nil
	}
	// null and every scalar denote a file.
	dir.Add(structure.NewFile(name))
	return nil
}

// decodeList consumes array elements into dir.
func decodeList(dec *json.Decoder, dir *structure.Node) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return jsonErr(err)
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case ']':
				return nil
			case '{':
				if err := decodeObject(dec, dir); err != nil {
					return err
				}
			case '[':
				if err := discard(dec, 1); err != nil {
					return err
				}
			}
		case string:
			dir.Add(structure.NewFile(t))
		}
		// Other scalars in a list carry no name and are skipped.
	}
}

// discard consumes tokens until depth pending containers have closed.
func discard(dec *json.Decoder, depth int) error {
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return jsonErr(err)
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

func jsonErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.New("unexpected end of JSON input")
	}
	return err
}
