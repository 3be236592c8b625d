// Package export holds platform-specific encoding presets.
package export

import (
	"fmt"

	"github.com/videoforge/videoforge/pkg/models"
)

// Preset is a fixed encoding profile for one target platform
type Preset struct {
	Name         string
	Width        int
	Height       int
	FPS          int
	Codec        string
	Bitrate      string
	AudioBitrate string
	MaxDuration  int // seconds, 0 = unlimited
	AspectRatio  string
}

// presets is process-wide static lookup data, never mutated
var presets = map[models.Platform]Preset{
	models.PlatformYouTube: {
		Name:         "YouTube",
		Width:        1920,
		Height:       1080,
		FPS:          30,
		Codec:        "libx264",
		Bitrate:      "8M",
		AudioBitrate: "192k",
		AspectRatio:  "16:9",
	},
	models.PlatformYouTubeShort: {
		Name:         "YouTube Shorts",
		Width:        1080,
		Height:       1920,
		FPS:          30,
		Codec:        "libx264",
		Bitrate:      "6M",
		AudioBitrate: "192k",
		MaxDuration:  60,
		AspectRatio:  "9:16",
	},
	models.PlatformTikTok: {
		Name:         "TikTok",
		Width:        1080,
		Height:       1920,
		FPS:          30,
		Codec:        "libx264",
		Bitrate:      "6M",
		AudioBitrate: "128k",
		MaxDuration:  180,
		AspectRatio:  "9:16",
	},
	models.PlatformInstagramReel: {
		Name:         "Instagram Reels",
		Width:        1080,
		Height:       1920,
		FPS:          30,
		Codec:        "libx264",
		Bitrate:      "6M",
		AudioBitrate: "128k",
		MaxDuration:  90,
		AspectRatio:  "9:16",
	},
	models.PlatformInstagramPost: {
		Name:         "Instagram Post",
		Width:        1080,
		Height:       1080,
		FPS:          30,
		Codec:        "libx264",
		Bitrate:      "5M",
		AudioBitrate: "128k",
		MaxDuration:  60,
		AspectRatio:  "1:1",
	},
	models.PlatformTwitter: {
		Name:         "Twitter/X",
		Width:        1920,
		Height:       1080,
		FPS:          30,
		Codec:        "libx264",
		Bitrate:      "5M",
		AudioBitrate: "128k",
		MaxDuration:  140,
		AspectRatio:  "16:9",
	},
}

// Lookup returns the preset for a platform
func Lookup(platform models.Platform) (Preset, bool) {
	p, ok := presets[platform]
	return p, ok
}

// FFmpegArgs generates the encoding arguments for a preset
func (p Preset) FFmpegArgs() []string {
	return []string{
		"-c:v", p.Codec,
		"-b:v", p.Bitrate,
		"-r", fmt.Sprintf("%d", p.FPS),
		"-vf", fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
			p.Width, p.Height, p.Width, p.Height),
		"-c:a", "aac",
		"-b:a", p.AudioBitrate,
		"-movflags", "+faststart",
		"-pix_fmt", "yuv420p",
	}
}
