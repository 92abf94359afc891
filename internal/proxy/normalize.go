package proxy

import (
	"strings"

	"github.com/google/uuid"
)

// Fields whose values vary between otherwise identical subscription dumps.
// They carry no identity and would break duplicate detection, so they are
// stripped during normalization.
var volatileFields = map[string]bool{
	"timestamp": true,
	"comment":   true,
	"remarks":   true,
}

// Normalize produces the canonical form of a record: volatile fields are
// removed, string values are trimmed, UUID-valued strings are lowercased,
// numeric values get a single representation, and defaults fill in missing
// fields (the detected protocol's section first, then the "common" section).
// Fetched values always win over defaults; fields absent from both are
// omitted.
func Normalize(r Record, defaults Defaults) Record {
	normalized, _ := canonicalize(r).(map[string]any)
	if normalized == nil {
		normalized = Record{}
	}

	protocol := DetectProtocol(normalized)
	applyDefaults(normalized, defaults[string(protocol)])
	applyDefaults(normalized, defaults[CommonDefaults])

	return normalized
}

// CommonDefaults is the defaults-template section applied to every record
// regardless of detected protocol.
const CommonDefaults = "common"

func applyDefaults(r map[string]any, fields map[string]any) {
	for key, value := range fields {
		if _, present := r[key]; !present {
			r[key] = canonicalize(value)
		}
	}
}

// canonicalize walks a parsed value and rewrites it into a stable form so
// that semantically identical entries from differently formatted sources
// compare equal.
func canonicalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if volatileFields[strings.ToLower(k)] {
				continue
			}
			out[k] = canonicalize(item)
		}
		return out
	case Record:
		return canonicalize(map[string]any(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = canonicalize(item)
		}
		return out
	case string:
		return canonicalizeString(val)
	case float64:
		// JSON decodes every number as float64; fold integral values back
		// so they compare equal to YAML-decoded ints.
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	case int:
		return int64(val)
	case uint64:
		return int64(val)
	default:
		return val
	}
}

func canonicalizeString(s string) any {
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err == nil {
		return strings.ToLower(s)
	}
	return s
}
