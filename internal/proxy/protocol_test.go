package proxy

import (
	"reflect"
	"testing"
)

func TestDetectProtocol(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected Protocol
	}{
		{
			name:     "shadowsocks",
			record:   Record{"server": "1.1.1.1", "server_port": 80, "password": "p", "method": "m"},
			expected: Shadowsocks,
		},
		{
			name:     "shadowsocksr",
			record:   Record{"server": "1.1.1.1", "server_port": 80, "password": "p", "protocol": "origin"},
			expected: ShadowsocksR,
		},
		{
			name:     "trojan",
			record:   Record{"server": "1.1.1.1", "server_port": 443, "password": "p", "sni": "s"},
			expected: Trojan,
		},
		{
			name:     "vless",
			record:   Record{"server": "1.1.1.1", "server_port": 443, "uuid": "u", "encryption": "none"},
			expected: VLESS,
		},
		{
			name:     "vmess",
			record:   Record{"server": "1.1.1.1", "server_port": 443, "uuid": "u"},
			expected: VMess,
		},
		{
			name:     "shadowsocks wins when both method and protocol present",
			record:   Record{"server": "1.1.1.1", "server_port": 80, "password": "p", "method": "m", "protocol": "origin"},
			expected: Shadowsocks,
		},
		{
			name:     "unknown",
			record:   Record{"host": "1.1.1.1", "port": 80},
			expected: Unknown,
		},
		{
			name:     "empty record",
			record:   Record{},
			expected: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectProtocol(tt.record); got != tt.expected {
				t.Errorf("DetectProtocol() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIdentityFields(t *testing.T) {
	t.Run("shadowsocks picks identity subset", func(t *testing.T) {
		record := Record{
			"server":      "1.1.1.1",
			"server_port": 80,
			"password":    "p",
			"method":      "m",
			"plugin":      "obfs-local", // cosmetic, not identity
		}

		got := IdentityFields(record)

		want := Record{"server": "1.1.1.1", "server_port": 80, "password": "p", "method": "m"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("IdentityFields() = %#v, want %#v", got, want)
		}
	})

	t.Run("unknown protocol uses whole record", func(t *testing.T) {
		record := Record{"host": "1.1.1.1", "port": 80}

		got := IdentityFields(record)

		if !reflect.DeepEqual(got, record) {
			t.Errorf("IdentityFields() = %#v, want full record", got)
		}
	})

	t.Run("returned identity is a copy", func(t *testing.T) {
		record := Record{"host": "1.1.1.1"}

		got := IdentityFields(record)
		got["host"] = "mutated"

		if record["host"] != "1.1.1.1" {
			t.Error("IdentityFields() aliases the input record")
		}
	})
}
