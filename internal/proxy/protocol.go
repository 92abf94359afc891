package proxy

// Protocol identifies a proxy protocol family detected from a record's
// characteristic fields.
type Protocol string

// Known protocols
const (
	Shadowsocks  Protocol = "shadowsocks"
	ShadowsocksR Protocol = "shadowsocksr"
	Trojan       Protocol = "trojan"
	VLESS        Protocol = "vless"
	VMess        Protocol = "vmess"
	Unknown      Protocol = ""
)

// DetectProtocol determines the protocol from a record's characteristic
// keys. Detection order matters: a record carrying both "method" and
// "protocol" is treated as shadowsocks.
func DetectProtocol(r Record) Protocol {
	switch {
	case r.hasAll("server", "server_port", "password", "method"):
		return Shadowsocks
	case r.hasAll("server", "server_port", "password", "protocol"):
		return ShadowsocksR
	case r.hasAll("server", "server_port", "password", "sni"):
		return Trojan
	case r.hasAll("server", "server_port", "uuid", "encryption"):
		return VLESS
	case r.hasAll("server", "server_port", "uuid"):
		return VMess
	default:
		return Unknown
	}
}

// identityFieldNames lists the fields that define a record's identity per
// protocol. Two records agreeing on all of them are the same logical entry.
var identityFieldNames = map[Protocol][]string{
	Shadowsocks:  {"server", "server_port", "password", "method"},
	ShadowsocksR: {"server", "server_port", "password", "protocol", "obfs"},
	Trojan:       {"server", "server_port", "password", "sni"},
	VLESS:        {"server", "server_port", "uuid", "encryption"},
	VMess:        {"server", "server_port", "uuid"},
}

// IdentityFields extracts the protocol-specific identity fields of a record.
// For unknown protocols the whole record is its own identity.
func IdentityFields(r Record) Record {
	protocol := DetectProtocol(r)

	names, ok := identityFieldNames[protocol]
	if !ok {
		return r.Clone()
	}

	identity := make(Record, len(names))
	for _, name := range names {
		if v, present := r[name]; present {
			identity[name] = v
		}
	}
	return identity
}

func (r Record) hasAll(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r[k]; !ok {
			return false
		}
	}
	return true
}
