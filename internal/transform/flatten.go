package transform

import (
	"encoding/json"
	"fmt"

	"github.com/kurochkinivan/webpa_collector/internal/domain"
)

// webpaResponse mirrors the TR1D1UM config payload. A parameter entry is
// scalar unless parameterCount says the server collapsed a whole subtree
// into its value array.
type webpaResponse struct {
	Parameters []webpaParameter `json:"parameters"`
}

type webpaParameter struct {
	Name           string          `json:"name"`
	Value          json.RawMessage `json:"value"`
	DataType       int             `json:"dataType"`
	ParameterCount int             `json:"parameterCount"`
}

type webpaEntry struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	DataType int    `json:"dataType"`
}

// Parameters extracts every parameter record from a raw fetch payload,
// expanding subtree entries into individual records.
func Parameters(raw []byte, source string) ([]*domain.Parameter, error) {
	var resp webpaResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &domain.MalformedInputError{Source: source, Err: err}
	}

	if resp.Parameters == nil {
		return nil, &domain.MalformedInputError{Source: source, Err: fmt.Errorf("missing parameter list")}
	}

	var params []*domain.Parameter
	for i, p := range resp.Parameters {
		if p.ParameterCount > 1 {
			var entries []webpaEntry
			if err := json.Unmarshal(p.Value, &entries); err != nil {
				return nil, &domain.MalformedInputError{
					Source: source,
					Err:    fmt.Errorf("parameter #%d %q: expected entry list: %w", i+1, p.Name, err),
				}
			}

			for _, e := range entries {
				params = append(params, &domain.Parameter{
					Name:     e.Name,
					Value:    e.Value,
					DataType: e.DataType,
				})
			}

			continue
		}

		var value string
		if err := json.Unmarshal(p.Value, &value); err != nil {
			return nil, &domain.MalformedInputError{
				Source: source,
				Err:    fmt.Errorf("parameter #%d %q: expected scalar value: %w", i+1, p.Name, err),
			}
		}

		params = append(params, &domain.Parameter{
			Name:     p.Name,
			Value:    value,
			DataType: p.DataType,
		})
	}

	for _, p := range params {
		if err := p.Validate(); err != nil {
			return nil, &domain.MalformedInputError{Source: source, Err: err}
		}
	}

	return params, nil
}

// Flatten converts a raw fetch payload into a single object keyed by
// full parameter path. Integer-typed values become JSON numbers. The
// result is deterministic: identical input always marshals to identical
// bytes.
func Flatten(raw []byte, source string) (map[string]any, error) {
	params, err := Parameters(raw, source)
	if err != nil {
		return nil, err
	}

	flat := make(map[string]any, len(params))
	for _, p := range params {
		value, err := p.TypedValue()
		if err != nil {
			return nil, &domain.MalformedInputError{Source: source, Err: err}
		}

		flat[p.Name] = value
	}

	return flat, nil
}
