package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jszwec/csvutil"
)

// Entry is one row of a tabular export of a converted document.
type Entry struct {
	Name  string `csv:"name"`
	Value string `csv:"value"`
	Type  string `csv:"type"`
}

// EntriesFromDocument turns a flat converted document into export rows,
// ordered by parameter path.
func EntriesFromDocument(doc map[string]any) ([]Entry, error) {
	entries := make([]Entry, 0, len(doc))

	for name, value := range doc {
		entry := Entry{Name: name}

		switch v := value.(type) {
		case string:
			entry.Value = v
			entry.Type = "string"
		case int:
			entry.Value = strconv.Itoa(v)
			entry.Type = "int"
		case float64:
			entry.Value = strconv.FormatFloat(v, 'f', -1, 64)
			entry.Type = "int"
		case bool:
			entry.Value = strconv.FormatBool(v)
			entry.Type = "boolean"
		default:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to render value of %q: %w", name, err)
			}
			entry.Value = string(data)
			entry.Type = "object"
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries, nil
}

// WriteTable encodes entries with a header row. comma selects the
// dialect: '\t' for TSV, ',' for CSV.
func WriteTable(w io.Writer, entries []Entry, comma rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma

	enc := csvutil.NewEncoder(writer)

	for i := range entries {
		if err := enc.Encode(entries[i]); err != nil {
			return fmt.Errorf("failed to encode entry %q: %w", entries[i].Name, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	return nil
}
