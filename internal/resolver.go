package internal

import (
	"net/url"
	"strings"
)

// CanonicalVideoID extracts the platform-assigned video ID from any accepted
// URL shape. Two shapes are recognized: the query-parameter form
// (youtube.com/watch?v=ID) and the short-link form (youtu.be/ID). Anything
// else is returned unchanged, so an already canonical ID passes through and
// the function is idempotent.
func CanonicalVideoID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}

	switch u.Hostname() {
	case "www.youtube.com", "youtube.com", "m.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/v/"); ok && rest != "" {
			return rest
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id
		}
	}

	return trimmed
}

// WatchURL builds the canonical watch URL for a video ID. IDs that already
// look like URLs are passed through so un-normalized references still work
// with yt-dlp.
func WatchURL(id string) string {
	if strings.HasPrefix(id, "https://") || strings.HasPrefix(id, "http://") {
		return id
	}
	return "https://www.youtube.com/watch?v=" + id
}
