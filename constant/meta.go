// Package constant defines immutable application-level identifiers.
package constant

const (
	// Tvshowl is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Tvshowl = "tvshowl"

	// Version is the current application semantic version string.
	Version = "0.4.0"

	// UserAgent is sent with every feed request.
	UserAgent = Tvshowl + "/" + Version + " (+https://github.com/vonZeppelin/tvshowl)"
)

// Build metadata, overridden via -ldflags at release time.
var (
	BuiltAt  = ""
	BuiltBy  = ""
	Revision = ""
)
