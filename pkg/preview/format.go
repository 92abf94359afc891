// Package preview provides an interactive record browser using Bubble Tea.
package preview

import (
	"fmt"
	"strings"
)

// Item is one deduplicated record prepared for display.
type Item struct {
	Group       string // output-group label
	Server      string // primary identity field
	Port        int64
	Protocol    string // detected protocol, empty for unknown
	Fingerprint string
	JSON        string // pretty-printed record
}

// FormatCompactListItem formats a single record in compact list format
// Example: " 1. [Canada     ] shadowsocks  1.2.3.4:443"
func FormatCompactListItem(index int, item Item) string {
	protocol := item.Protocol
	if protocol == "" {
		protocol = "unknown"
	}

	group := item.Group
	const maxGroupLength = 12
	if len(group) > maxGroupLength {
		group = group[:maxGroupLength-3] + "..."
	}

	return fmt.Sprintf("%2d. [%-12s] %-12s %s:%d", index+1, group, protocol, item.Server, item.Port)
}

// FormatDetailedItem formats a single record with all metadata
func FormatDetailedItem(item Item) string {
	var b strings.Builder

	b.WriteString("═══════════════════════════════════════════════════════════════════════\n")
	b.WriteString(fmt.Sprintf("Group: %s\n", item.Group))

	if item.Protocol != "" {
		b.WriteString(fmt.Sprintf("Protocol: %s\n", item.Protocol))
	}

	b.WriteString(fmt.Sprintf("Server: %s:%d\n", item.Server, item.Port))
	b.WriteString(fmt.Sprintf("Fingerprint: %s\n", item.Fingerprint))
	b.WriteString(fmt.Sprintf("\n%s\n", item.JSON))
	b.WriteString("═══════════════════════════════════════════════════════════════════════\n")

	return b.String()
}
