package proxy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefaults reads a YAML defaults template mapping protocol names to
// baseline field values:
//
//	shadowsocks:
//	  method: aes-128-gcm
//	trojan:
//	  sni: example.com
//
// A missing file is not an error here; the caller decides whether to
// tolerate it.
func LoadDefaults(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var defaults Defaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("failed to parse defaults file %s: %w", path, err)
	}

	if defaults == nil {
		defaults = Defaults{}
	}
	return defaults, nil
}
