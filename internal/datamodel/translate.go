package datamodel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clbanning/mxj/v2"
	"github.com/kurochkinivan/webpa_collector/internal/domain"
)

// TranslateOptions mirror the knobs of the original external converter:
// drop whitespace-only text nodes, drop namespace prefixes from element
// and attribute names, indent the output.
type TranslateOptions struct {
	StripText      bool
	StripNamespace bool
	Pretty         bool
}

// Translate converts a TR-181 USP data-model XML document into JSON
// isomorphic to the element/attribute tree. Malformed XML yields a
// ParseError.
func Translate(xmlData []byte, source string, opts TranslateOptions) ([]byte, error) {
	m, err := mxj.NewMapXml(xmlData)
	if err != nil {
		return nil, &domain.ParseError{Source: source, Err: err}
	}

	doc := cleanValue(map[string]any(m), opts)

	var data []byte
	if opts.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal translated document: %w", err)
	}

	return append(data, '\n'), nil
}

func cleanValue(value any, opts TranslateOptions) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			if opts.StripText && isWhitespaceText(key, child) {
				continue
			}

			if opts.StripNamespace {
				key = stripNamespace(key)
			}

			out[key] = cleanValue(child, opts)
		}
		return out

	case []any:
		out := make([]any, 0, len(v))
		for _, child := range v {
			out = append(out, cleanValue(child, opts))
		}
		return out

	default:
		return v
	}
}

// isWhitespaceText reports text-only nodes that carry no payload: the
// "#text" remnants of mixed content and elements whose whole value is
// blank.
func isWhitespaceText(key string, value any) bool {
	if strings.HasPrefix(key, attrPrefix) {
		return false
	}

	s, ok := value.(string)
	if !ok {
		return false
	}

	return strings.TrimSpace(s) == ""
}

const textKey = "#text"

// stripNamespace removes the "prefix:" qualifier from an element or
// attribute name, keeping the attribute marker intact.
func stripNamespace(key string) string {
	if key == textKey {
		return key
	}

	attr := strings.HasPrefix(key, attrPrefix)
	k := strings.TrimPrefix(key, attrPrefix)

	if i := strings.LastIndex(k, ":"); i >= 0 {
		k = k[i+1:]
	}

	if attr {
		return attrPrefix + k
	}

	return k
}

const attrPrefix = "-"
