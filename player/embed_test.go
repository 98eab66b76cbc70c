package player

import (
	"testing"

	"storefront/models"

	"github.com/stretchr/testify/assert"
)

func TestDetectEmbed(t *testing.T) {
	tests := []struct {
		url      string
		provider string
		embed    string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", ProviderYouTube, "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", ProviderYouTube, "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", ProviderYouTube, "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", ProviderYouTube, "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://vimeo.com/123456789", ProviderVimeo, "https://player.vimeo.com/video/123456789"},
		{"https://player.vimeo.com/video/123456789", ProviderVimeo, "https://player.vimeo.com/video/123456789"},
		{"https://vimeo.com/not-a-video", "", ""},
		{"https://www.youtube.com/watch", "", ""},
		{"https://example.com/video.mp4", "", ""},
		{"not a url", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		provider, embed := DetectEmbed(tt.url)
		assert.Equal(t, tt.provider, provider, "url=%q", tt.url)
		assert.Equal(t, tt.embed, embed, "url=%q", tt.url)
	}
}

func TestPlayable(t *testing.T) {
	assert.True(t, Playable(models.Content{Type: "VIDEO", URL: "https://youtu.be/abc123"}))
	assert.True(t, Playable(models.Content{Type: "video", URL: "https://vimeo.com/42"}))

	// Articles are never playable even with a video URL
	assert.False(t, Playable(models.Content{Type: "ARTICLE", URL: "https://youtu.be/abc123"}))
	// Videos hosted outside the supported embeds are not playable
	assert.False(t, Playable(models.Content{Type: "VIDEO", URL: "https://example.com/raw.mp4"}))
}

func TestNextPlayableSkipsUnembeddable(t *testing.T) {
	contents := []models.Content{
		{ID: "a", Type: "VIDEO", URL: "https://youtu.be/one"},
		{ID: "b", Type: "ARTICLE", URL: ""},
		{ID: "c", Type: "VIDEO", URL: "https://example.com/self-hosted.mp4"},
		{ID: "d", Type: "VIDEO", URL: "https://vimeo.com/99"},
		{ID: "e", Type: "QUIZ", URL: ""},
	}

	// Non-video and unembeddable items are skipped over, not blockers
	assert.Equal(t, 3, NextPlayable(contents, 0))
	assert.Equal(t, 3, NextPlayable(contents, 1))
	assert.Equal(t, -1, NextPlayable(contents, 3))
	assert.Equal(t, -1, NextPlayable(contents, 4))
	assert.Equal(t, 0, NextPlayable(contents, -1))
}
