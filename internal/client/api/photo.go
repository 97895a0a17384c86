package api

import "strings"

// DefaultAvatarPath is the backend's stock avatar, served from its static
// asset host.
const DefaultAvatarPath = "uploads/default-profile.png"

// NormalizePhotoURL resolves a photo reference to a displayable absolute
// URL. The backend emits three shapes: full URLs, relative upload paths,
// and sentinel garbage from upstream serialization quirks (empty strings,
// "null", anything containing the literal text "undefined").
func NormalizePhotoURL(staticBase, ref string) string {
	trimmed := strings.TrimSpace(ref)
	lower := strings.ToLower(trimmed)
	if trimmed == "" || lower == "null" || strings.Contains(lower, "undefined") {
		return staticBase + "/" + DefaultAvatarPath
	}
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return trimmed
	}
	return staticBase + "/" + strings.TrimPrefix(trimmed, "/")
}

func (c *Client) normalizePhoto(ref string) string {
	return NormalizePhotoURL(c.staticBase, ref)
}
