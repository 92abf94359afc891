package proxy

import "testing"

func TestFingerprint(t *testing.T) {
	base := Record{"server": "1.1.1.1", "server_port": 80, "password": "p", "method": "m"}
	cosmetic := Record{"server": "1.1.1.1", "server_port": 80, "password": "p", "method": "m", "plugin": "obfs"}
	other := Record{"server": "2.2.2.2", "server_port": 80, "password": "p", "method": "m"}

	fpBase := Fingerprint(base)
	fpCosmetic := Fingerprint(cosmetic)
	fpOther := Fingerprint(other)

	if fpBase != fpCosmetic {
		t.Errorf("records differing only in non-identity fields got different fingerprints:\n%s\n%s", fpBase, fpCosmetic)
	}
	if fpBase == fpOther {
		t.Error("records with different servers share a fingerprint")
	}
}

func TestFingerprint_StableAcrossCalls(t *testing.T) {
	record := Record{
		"server":      "1.1.1.1",
		"server_port": int64(443),
		"password":    "p",
		"sni":         "example.com",
		"extra":       map[string]any{"b": 2, "a": 1},
	}

	first := Fingerprint(record)
	for range 10 {
		if got := Fingerprint(record); got != first {
			t.Fatalf("fingerprint unstable: %s != %s", got, first)
		}
	}
}

func TestFingerprint_NormalizedDuplicatesCollapse(t *testing.T) {
	defaults := Defaults{"shadowsocks": {"method": "aes-128-gcm"}}

	// Same endpoint, one from a JSON source (float ports), one from YAML.
	a := Normalize(Record{"server": "1.1.1.1", "server_port": float64(8388), "password": "p", "method": "aes-128-gcm"}, defaults)
	b := Normalize(Record{"server": "1.1.1.1", "server_port": 8388, "password": "p", "method": "aes-128-gcm", "comment": "mirror copy"}, defaults)

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("normalized duplicates from different formats must share a fingerprint")
	}
}
