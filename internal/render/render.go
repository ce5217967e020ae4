package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kurochkinivan/webpa_collector/internal/domain"
)

// Pretty reads one JSON document from r and writes an indented rendering
// to w. The reformat is byte-level, so the output re-parses to a value
// structurally equal to the input.
func Pretty(r io.Reader, w io.Writer, source string) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", source, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return &domain.MalformedInputError{Source: source, Err: err}
	}
	buf.WriteByte('\n')

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// MarshalDocument renders a converted document, optionally indented.
// Map keys are sorted by the encoder, which keeps output deterministic.
func MarshalDocument(doc any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	return append(data, '\n'), nil
}
