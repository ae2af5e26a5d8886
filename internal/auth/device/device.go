// Package device turns a User-Agent header into the display name stored on
// a session.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknownDevice = "Unknown Device"

// ParseUserAgent returns "<browser> on <os>" for a User-Agent header.
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return unknownDevice
	}
	parsed := useragent.New(ua)

	browser, _ := parsed.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	platform := parsed.OS()
	if platform == "" {
		platform = parsed.Platform()
	}
	if platform == "" {
		platform = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + platform)
}
