// Package device classifies the calling wallet from its User-Agent so request
// logs and metrics can be segmented by client platform.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// Platform buckets a caller into a coarse client class.
type Platform string

const (
	PlatformMobile  Platform = "mobile"
	PlatformDesktop Platform = "desktop"
	PlatformBot     Platform = "bot"
	PlatformUnknown Platform = "unknown"
)

// Classify returns the platform bucket for a raw User-Agent string.
func Classify(userAgentString string) Platform {
	if userAgentString == "" {
		return PlatformUnknown
	}

	ua := useragent.New(userAgentString)
	switch {
	case ua.Bot():
		return PlatformBot
	case ua.Mobile():
		return PlatformMobile
	default:
		return PlatformDesktop
	}
}

// Describe extracts a human-readable device name from a User-Agent string.
// Returns "Browser on OS" (e.g. "Safari on iOS") or "Unknown Device".
func Describe(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown Device"
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	browser = strings.TrimSpace(browser)
	os := strings.TrimSpace(ua.OSInfo().Name)

	switch {
	case browser == "" && os == "":
		return "Unknown Device"
	case browser == "":
		return os
	case os == "":
		return browser
	default:
		return browser + " on " + os
	}
}
