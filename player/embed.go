package player

import (
	"net/url"
	"strings"

	"storefront/models"
)

// Embed providers the player knows how to render
const (
	ProviderYouTube = "YOUTUBE"
	ProviderVimeo   = "VIMEO"
)

// DetectEmbed classifies a raw content URL and derives the iframe embed URL
// for it. Returns empty provider when the URL is not a supported embed.
func DetectEmbed(raw string) (provider, embedURL string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	switch host {
	case "youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return ProviderYouTube, "https://www.youtube.com/embed/" + id
			}
		}
		if id, ok := pathID(u.Path, "/embed/"); ok {
			return ProviderYouTube, "https://www.youtube.com/embed/" + id
		}
		if id, ok := pathID(u.Path, "/shorts/"); ok {
			return ProviderYouTube, "https://www.youtube.com/embed/" + id
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" && !strings.Contains(id, "/") {
			return ProviderYouTube, "https://www.youtube.com/embed/" + id
		}
	case "vimeo.com":
		if id := strings.Trim(u.Path, "/"); isDigits(id) {
			return ProviderVimeo, "https://player.vimeo.com/video/" + id
		}
	case "player.vimeo.com":
		if id, ok := pathID(u.Path, "/video/"); ok && isDigits(id) {
			return ProviderVimeo, "https://player.vimeo.com/video/" + id
		}
	}
	return "", ""
}

// Playable reports whether a content item is a video with a supported embed.
// Non-video and unembeddable items are skipped during navigation, never
// treated as blockers.
func Playable(content models.Content) bool {
	if !strings.EqualFold(content.Type, "VIDEO") {
		return false
	}
	provider, _ := DetectEmbed(content.URL)
	return provider != ""
}

// NextPlayable returns the index of the nearest playable item after from in
// the flattened play order, or -1 when none remains.
func NextPlayable(contents []models.Content, from int) int {
	for i := from + 1; i < len(contents); i++ {
		if Playable(contents[i]) {
			return i
		}
	}
	return -1
}

func pathID(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	id := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
