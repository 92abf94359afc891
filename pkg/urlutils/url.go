// Package urlutils provides URL helper functions.
package urlutils

import (
	"net/url"
	"path"
	"strings"
)

// IsValidURL checks if a URL is valid
func IsValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// PathBase returns the last path segment of a URL with its extension
// stripped. Returns an empty string when the URL has no usable path
// segment (e.g. "https://example.com/" or an unparseable URL).
func PathBase(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}

	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return ""
	}

	return strings.TrimSuffix(base, path.Ext(base))
}
