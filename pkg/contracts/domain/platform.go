package domain

import "strings"

// Platform identifies a quick-commerce platform. The set is closed: rows
// carrying anything that does not canonicalize to one of the three known
// platforms are dropped during canonical table construction.
type Platform string

const (
	PlatformBlinkit   Platform = "Blinkit"
	PlatformInstamart Platform = "Instamart"
	PlatformZepto     Platform = "Zepto"
	// PlatformUnknown is the typed "unrecognized" variant produced by
	// ParsePlatform for values outside the allow-list.
	PlatformUnknown Platform = ""
)

// AllPlatforms is the fixed iteration order used by every per-platform view.
var AllPlatforms = []Platform{PlatformBlinkit, PlatformInstamart, PlatformZepto}

// platformAliases maps lowercase source spellings to the canonical
// lowercase platform name. Historical exports labelled Instamart as
// "Instagram" and "Insta-Mart".
var platformAliases = map[string]string{
	"instagram":  "instamart",
	"insta-mart": "instamart",
}

var platformDisplay = map[string]Platform{
	"blinkit":   PlatformBlinkit,
	"instamart": PlatformInstamart,
	"zepto":     PlatformZepto,
}

// ParsePlatform canonicalizes a raw platform cell. Parsing is idempotent:
// feeding a canonical display form back in returns it unchanged.
func ParsePlatform(raw string) Platform {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := platformAliases[s]; ok {
		s = alias
	}
	return platformDisplay[s]
}

// Known reports whether p is one of the three supported platforms.
func (p Platform) Known() bool {
	return p == PlatformBlinkit || p == PlatformInstamart || p == PlatformZepto
}

func (p Platform) String() string {
	return string(p)
}
