package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
)

// ToCSV writes any slice of records as CSV. The header row is the JSON
// field set of the first record, in document order; fields that only
// appear on later records are dropped. Cells are the JSON text of the
// value, so strings keep their quotes; null and missing cells become
// empty strings.
func ToCSV(records any, path string) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("records are not a sequence: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no records to export")
	}

	header, err := fieldNames(rows[0])
	if err != nil {
		return fmt.Errorf("read first record: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(row, &obj); err != nil {
			return fmt.Errorf("read record: %w", err)
		}
		cells := make([]string, len(header))
		for i, name := range header {
			cells[i] = cellValue(obj[name])
		}
		if err := w.Write(cells); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// fieldNames returns the top-level keys of a JSON object in document
// order.
func fieldNames(obj json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("record is not an object")
	}

	var names []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyTok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		names = append(names, key)
	}
	return names, nil
}

func cellValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	return string(raw)
}
