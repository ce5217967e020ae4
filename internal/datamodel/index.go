package datamodel

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/kurochkinivan/webpa_collector/internal/domain"
)

const (
	AccessReadOnly  = "readOnly"
	AccessReadWrite = "readWrite"
)

var (
	instanceSegment = regexp.MustCompile(`\.[0-9]+\.`)
	wildcardSegment = regexp.MustCompile(`\.\*\.`)
)

// Generic turns a concrete parameter path into its data-model form by
// replacing instance numbers and wild-card segments with "{i}".
func Generic(path string) string {
	path = instanceSegment.ReplaceAllString(path, ".{i}.")
	return wildcardSegment.ReplaceAllString(path, ".{i}.")
}

// Index is the implemented data model: generic parameter paths mapped to
// their access rule. It answers path membership, writability and
// wild-carded lookups.
type Index struct {
	access map[string]string
}

func NewIndex(access map[string]string) *Index {
	return &Index{access: access}
}

// IndexFromJSON loads a flat schema document: an object keyed by generic
// parameter path with access strings as values.
func IndexFromJSON(data []byte, source string) (*Index, error) {
	var access map[string]string
	if err := json.Unmarshal(data, &access); err != nil {
		return nil, &domain.MalformedInputError{Source: source, Err: err}
	}

	if len(access) == 0 {
		return nil, &domain.MalformedInputError{Source: source, Err: fmt.Errorf("schema defines no parameter paths")}
	}

	return NewIndex(access), nil
}

// IndexFromTranslatedSchema builds the flat path index out of a
// translated (XML-to-JSON) data-model document: every object's
// parameters become "Object.Path.Parameter" entries.
func IndexFromTranslatedSchema(data []byte, source string) (*Index, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &domain.MalformedInputError{Source: source, Err: err}
	}

	document, ok := childMap(doc, "document")
	if !ok {
		return nil, &domain.MalformedInputError{Source: source, Err: fmt.Errorf("missing document element")}
	}

	model, ok := childMap(document, "model")
	if !ok {
		return nil, &domain.MalformedInputError{Source: source, Err: fmt.Errorf("missing model element")}
	}

	access := make(map[string]string)
	for _, obj := range childList(model, "object") {
		objPath, _ := attr(obj, "name")
		if objPath == "" {
			continue
		}

		for _, param := range childList(obj, "parameter") {
			name, ok := attr(param, "name")
			if !ok {
				continue
			}

			paramAccess, ok := attr(param, "access")
			if !ok {
				paramAccess = AccessReadOnly
			}

			access[objPath+name] = paramAccess
		}
	}

	if len(access) == 0 {
		return nil, &domain.MalformedInputError{Source: source, Err: fmt.Errorf("schema defines no parameter paths")}
	}

	return NewIndex(access), nil
}

// IndexFromFile loads either schema form from disk: the flat
// path-to-access map, or a full translated data-model document.
func IndexFromFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %q: %w", path, err)
	}

	if ix, flatErr := IndexFromJSON(data, path); flatErr == nil {
		return ix, nil
	}

	return IndexFromTranslatedSchema(data, path)
}

// Contains reports whether the path, made generic, is implemented.
func (ix *Index) Contains(path string) bool {
	_, ok := ix.access[Generic(path)]
	return ok
}

// Access returns the access rule for a parameter path.
func (ix *Index) Access(path string) (string, error) {
	access, ok := ix.access[Generic(path)]
	if !ok {
		return "", &domain.NoSuchPathError{Path: path}
	}

	return access, nil
}

// IsWritable reports whether the parameter path is readWrite.
func (ix *Index) IsWritable(path string) (bool, error) {
	access, err := ix.Access(path)
	if err != nil {
		return false, err
	}

	return access == AccessReadWrite, nil
}

// FindParams returns the implemented parameter paths matching the
// incoming path. Instance numbers and "*" segments match any instance;
// a trailing dot matches the whole subtree.
func (ix *Index) FindParams(path string) ([]string, error) {
	re, err := pathRegex(path)
	if err != nil {
		return nil, err
	}

	var found []string
	for key := range ix.access {
		if re.MatchString(key) {
			found = append(found, key)
		}
	}

	if len(found) == 0 {
		return nil, &domain.NoSuchPathError{Path: path}
	}

	sort.Strings(found)

	return found, nil
}

// ValidateNames checks every comma-separated path of a fetch filter
// against the implemented data model.
func (ix *Index) ValidateNames(names string) error {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if strings.HasSuffix(name, ".") {
			if _, err := ix.FindParams(name); err != nil {
				return err
			}
			continue
		}

		if !ix.Contains(name) {
			return &domain.NoSuchPathError{Path: name}
		}
	}

	return nil
}

func pathRegex(path string) (*regexp.Regexp, error) {
	pattern := "^" + regexp.QuoteMeta(Generic(path))
	if strings.HasSuffix(path, ".") {
		pattern += ".*"
	}
	pattern += "$"

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile path pattern for %q: %w", path, err)
	}

	return re, nil
}

// Translated documents carry attributes either as "-name" (this
// repository's translator) or "@name" (the converter the schema may
// have originally gone through); both are accepted.
func attr(m map[string]any, name string) (string, bool) {
	for _, key := range []string{attrPrefix + name, "@" + name} {
		if v, ok := m[key].(string); ok {
			return v, true
		}
	}

	return "", false
}

func childMap(m map[string]any, name string) (map[string]any, bool) {
	for key, value := range m {
		if stripNamespace(key) != name {
			continue
		}

		if child, ok := value.(map[string]any); ok {
			return child, true
		}
	}

	return nil, false
}

func childList(m map[string]any, name string) []map[string]any {
	for key, value := range m {
		if stripNamespace(key) != name {
			continue
		}

		switch v := value.(type) {
		case []any:
			out := make([]map[string]any, 0, len(v))
			for _, item := range v {
				if child, ok := item.(map[string]any); ok {
					out = append(out, child)
				}
			}
			return out

		case map[string]any:
			return []map[string]any{v}
		}
	}

	return nil
}
