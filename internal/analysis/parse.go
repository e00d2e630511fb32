package analysis

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParsedKind says where in the response the ingredient list was found
type ParsedKind int

const (
	// ParsedUnrecognized means valid JSON with no list in it
	ParsedUnrecognized ParsedKind = iota
	// ParsedList means the response was a bare JSON array
	ParsedList
	// ParsedWrapped means the array was the value of an object member
	ParsedWrapped
)

func (k ParsedKind) String() string {
	switch k {
	case ParsedList:
		return "list"
	case ParsedWrapped:
		return "wrapped"
	default:
		return "unrecognized"
	}
}

// Parsed is the result of ParseIngredientList
type Parsed struct {
	Kind ParsedKind
	// Key is the object member the list was found under (ParsedWrapped only)
	Key   string
	Items []string
}

// ParseIngredientList extracts the ingredient array from a model response.
//
// A bare array is used as is. For an object, members are scanned in document
// order and the first one holding an array wins, since models asked for JSON
// objects tend to nest the list under a key of their choosing. Anything else
// is ParsedUnrecognized. Invalid JSON is an ErrMalformed error.
func ParseIngredientList(text string) (Parsed, error) {
	data := bytes.TrimSpace([]byte(text))
	if !json.Valid(data) {
		return Parsed{}, malformed("response is not valid JSON")
	}

	switch data[0] {
	case '[':
		items, err := listItems(data)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Kind: ParsedList, Items: items}, nil
	case '{':
		return scanObject(data)
	default:
		return Parsed{Kind: ParsedUnrecognized}, nil
	}
}

// scanObject walks the top-level members in order; encoding/json maps would
// lose that order.
func scanObject(data []byte) (Parsed, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return Parsed{}, malformed("%v", err)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Parsed{}, malformed("%v", err)
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return Parsed{}, malformed("member %q: %v", key, err)
		}

		value = bytes.TrimSpace(value)
		if len(value) > 0 && value[0] == '[' {
			items, err := listItems(value)
			if err != nil {
				return Parsed{}, err
			}
			return Parsed{Kind: ParsedWrapped, Key: key, Items: items}, nil
		}
	}

	return Parsed{Kind: ParsedUnrecognized}, nil
}

// listItems turns array elements into strings. Strings are trimmed and empty
// ones dropped; other scalars keep their JSON text; null is skipped.
func listItems(data []byte) ([]string, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, malformed("%v", err)
	}

	items := make([]string, 0, len(elems))
	for _, elem := range elems {
		elem = bytes.TrimSpace(elem)
		switch {
		case len(elem) == 0, bytes.Equal(elem, []byte("null")):
			continue
		case elem[0] == '"':
			var s string
			if err := json.Unmarshal(elem, &s); err != nil {
				return nil, malformed("%v", err)
			}
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		default:
			items = append(items, string(elem))
		}
	}
	return items, nil
}
