// Package proxy models proxy configuration records and their normalization.
package proxy

// Record is one parsed proxy configuration: a mapping of field names to
// values. Values are whatever the source format produced (strings, numbers,
// booleans, nested maps and lists).
type Record map[string]any

// Defaults maps a protocol name to baseline field values applied when a
// fetched record omits them. Fetched values always take precedence.
type Defaults map[string]map[string]any

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
