package domain

import (
	"fmt"
	"strconv"
)

// WebPA wire data types. Only the integer one changes how a value is
// rendered; everything else stays a string.
const (
	DataTypeString = 0
	DataTypeInt    = 2
)

type Parameter struct {
	Name     string `csv:"name"      db:"name"      json:"name"`
	Value    string `csv:"value"     db:"value"     json:"value"`
	DataType int    `csv:"data_type" db:"data_type" json:"data_type"`
}

func (p *Parameter) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}

	return nil
}

// TypedValue returns the value as it should appear in a converted
// document: integers for DataTypeInt, the raw string otherwise.
func (p *Parameter) TypedValue() (any, error) {
	if p.DataType != DataTypeInt {
		return p.Value, nil
	}

	n, err := strconv.Atoi(p.Value)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: value %q is not an integer: %w", p.Name, p.Value, err)
	}

	return n, nil
}
