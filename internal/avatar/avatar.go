package avatar

import "strings"

// DefaultIcon is the bundled fallback avatar asset path
const DefaultIcon = "/icons/avatar_origin.png"

// Resolver normalizes avatar paths into displayable URLs against a fixed
// API base address
type Resolver struct {
	apiBaseURL string
}

// NewResolver creates a resolver bound to the given API base address
func NewResolver(apiBaseURL string) *Resolver {
	return &Resolver{apiBaseURL: apiBaseURL}
}

// Resolve converts an avatar path to a full URL. Total function:
// empty paths fall back to the default icon, absolute URLs pass through,
// backend-served /static paths get the API base prefixed, anything else is
// returned unchanged.
func (r *Resolver) Resolve(avatarPath string) string {
	if avatarPath == "" {
		return DefaultIcon
	}
	if strings.HasPrefix(avatarPath, "http") {
		return avatarPath
	}
	if strings.HasPrefix(avatarPath, "/static") {
		return r.apiBaseURL + avatarPath
	}
	return avatarPath
}
