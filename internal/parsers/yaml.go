package parsers

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/config-forge/internal/proxy"
)

// yamlParser handles YAML payloads: a mapping is one record, a sequence is
// many, and Clash-style documents with a top-level "proxies" list unwrap to
// that list.
type yamlParser struct{}

func init() {
	mustRegister(yamlParser{}, 20)
}

func (yamlParser) Name() string { return "yaml" }

func (yamlParser) Detect(data []byte) bool {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	switch doc.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

func (yamlParser) Parse(data []byte) ([]proxy.Record, []error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, []error{fmt.Errorf("malformed YAML: %w", err)}
	}

	switch v := doc.(type) {
	case map[string]any:
		// Clash-style subscription: the records live under "proxies".
		if proxies, ok := v["proxies"].([]any); ok {
			return recordsFromSequence(proxies)
		}
		return []proxy.Record{proxy.Record(v)}, nil
	case []any:
		return recordsFromSequence(v)
	default:
		return nil, []error{fmt.Errorf("unsupported YAML document type %T", doc)}
	}
}

func recordsFromSequence(elements []any) ([]proxy.Record, []error) {
	var records []proxy.Record
	var warnings []error

	for i, element := range elements {
		m, ok := element.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Errorf("skipping YAML sequence element %d: not a mapping (%T)", i, element))
			continue
		}
		records = append(records, proxy.Record(m))
	}

	return records, warnings
}
