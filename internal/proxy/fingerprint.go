package proxy

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint returns the deduplication key of a normalized record: the
// SHA-256 of the canonical JSON serialization of its protocol identity
// fields. Records from different sources that describe the same endpoint
// produce the same fingerprint even when their cosmetic fields differ.
//
// encoding/json serializes map keys in sorted order, which keeps the
// serialization canonical without extra work.
func Fingerprint(r Record) string {
	serialized, err := json.Marshal(IdentityFields(r))
	if err != nil {
		// Records come from JSON/YAML parsing, so they only hold
		// marshalable types; this path is unreachable in practice.
		serialized = []byte(err.Error())
	}

	sum := sha256.Sum256(serialized)
	return hex.EncodeToString(sum[:])
}
