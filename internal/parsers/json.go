package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lepinkainen/config-forge/internal/proxy"
)

// jsonParser handles JSON payloads: a single object is one record, an array
// of objects is many.
type jsonParser struct{}

func init() {
	mustRegister(jsonParser{}, 10)
}

func (jsonParser) Name() string { return "json" }

func (jsonParser) Detect(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return false
	}
	return json.Valid(trimmed)
}

func (jsonParser) Parse(data []byte) ([]proxy.Record, []error) {
	trimmed := bytes.TrimSpace(data)

	if trimmed[0] == '{' {
		var record proxy.Record
		if err := json.Unmarshal(trimmed, &record); err != nil {
			return nil, []error{fmt.Errorf("malformed JSON object: %w", err)}
		}
		return []proxy.Record{record}, nil
	}

	// Array: decode elements individually so one bad element doesn't
	// discard the rest.
	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, []error{fmt.Errorf("malformed JSON array: %w", err)}
	}

	var records []proxy.Record
	var warnings []error
	for i, raw := range elements {
		var record proxy.Record
		if err := json.Unmarshal(raw, &record); err != nil {
			warnings = append(warnings, fmt.Errorf("skipping JSON array element %d: %w", i, err))
			continue
		}
		records = append(records, record)
	}

	return records, warnings
}
