package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videoforge/videoforge/pkg/models"
)

func TestLookup(t *testing.T) {
	t.Run("KnownPlatforms", func(t *testing.T) {
		for _, platform := range []models.Platform{
			models.PlatformYouTube,
			models.PlatformYouTubeShort,
			models.PlatformTikTok,
			models.PlatformInstagramReel,
			models.PlatformInstagramPost,
			models.PlatformTwitter,
		} {
			p, ok := Lookup(platform)
			require.True(t, ok, "missing preset for %s", platform)
			assert.NotEmpty(t, p.Name)
			assert.Greater(t, p.Width, 0)
			assert.Greater(t, p.Height, 0)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, ok := Lookup("vimeo")
		assert.False(t, ok)
	})
}

func TestPresetValues(t *testing.T) {
	short, _ := Lookup(models.PlatformYouTubeShort)
	assert.Equal(t, 1080, short.Width)
	assert.Equal(t, 1920, short.Height)
	assert.Equal(t, 60, short.MaxDuration)
	assert.Equal(t, "9:16", short.AspectRatio)

	yt, _ := Lookup(models.PlatformYouTube)
	assert.Equal(t, 0, yt.MaxDuration, "youtube preset has no duration cap")
	assert.Equal(t, "8M", yt.Bitrate)
}

func TestFFmpegArgs(t *testing.T) {
	p, _ := Lookup(models.PlatformTikTok)
	args := strings.Join(p.FFmpegArgs(), " ")

	assert.Contains(t, args, "-c:v libx264")
	assert.Contains(t, args, "-b:v 6M")
	assert.Contains(t, args, "scale=1080:1920")
	assert.Contains(t, args, "-b:a 128k")
	assert.Contains(t, args, "+faststart")
}
