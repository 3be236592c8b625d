package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/videoforge/videoforge/pkg/models"
)

func TestFitFilter(t *testing.T) {
	t.Run("cover scales up and crops", func(t *testing.T) {
		assert.Equal(t,
			"scale=1920:1080:force_original_aspect_ratio=increase,crop=1920:1080",
			fitFilter(models.FitCover, 1920, 1080))
	})

	t.Run("contain scales down and pads", func(t *testing.T) {
		assert.Equal(t,
			"scale=1080:1920:force_original_aspect_ratio=decrease,pad=1080:1920:(ow-iw)/2:(oh-ih)/2",
			fitFilter(models.FitContain, 1080, 1920))
	})

	t.Run("stretch ignores aspect ratio", func(t *testing.T) {
		assert.Equal(t, "scale=640:480", fitFilter(models.FitStretch, 640, 480))
	})
}

func TestEscapeDrawtext(t *testing.T) {
	assert.Equal(t, `10\:30`, escapeDrawtext("10:30"))
	assert.Equal(t, `it'\''s`, escapeDrawtext("it's"))
	assert.Equal(t, `a\\b`, escapeDrawtext(`a\b`))
}

func TestDrawtextFilter(t *testing.T) {
	t.Run("font family by name", func(t *testing.T) {
		got := drawtextFilter(TextOptions{
			Text:     "Hello",
			Font:     "Arial",
			FontSize: 48,
			Color:    "#FFFFFF",
			Position: models.PositionCenter,
		})
		assert.Contains(t, got, "drawtext=text='Hello'")
		assert.Contains(t, got, "font='Arial'")
		assert.Contains(t, got, "fontsize=48")
		assert.Contains(t, got, "fontcolor=0xFFFFFF")
		assert.Contains(t, got, "x=(w-text_w)/2:y=(h-text_h)/2")
		assert.NotContains(t, got, "fontfile")
		assert.NotContains(t, got, "box=")
		assert.NotContains(t, got, "enable=")
	})

	t.Run("explicit font file wins", func(t *testing.T) {
		got := drawtextFilter(TextOptions{
			Text:     "x",
			Font:     "Yu Gothic",
			FontFile: "/usr/share/fonts/yu.ttf",
			FontSize: 32,
			Color:    "#000000",
			Position: models.PositionTopLeft,
		})
		assert.Contains(t, got, "fontfile='/usr/share/fonts/yu.ttf'")
		assert.NotContains(t, got, "font='Yu Gothic'")
	})

	t.Run("background box with alpha", func(t *testing.T) {
		got := drawtextFilter(TextOptions{
			Text: "x", Font: "Arial", FontSize: 48, Color: "#FFFFFF",
			Position: models.PositionBottomCenter,
			BgColor:  "#00000080",
		})
		assert.Contains(t, got, "box=1:boxcolor=0x000000@0x80:boxborderw=10")
	})

	t.Run("background box without alpha", func(t *testing.T) {
		got := drawtextFilter(TextOptions{
			Text: "x", Font: "Arial", FontSize: 48, Color: "#FFFFFF",
			Position: models.PositionBottomCenter,
			BgColor:  "#112233",
		})
		assert.Contains(t, got, "box=1:boxcolor=0x112233@0.5:boxborderw=10")
	})

	t.Run("border", func(t *testing.T) {
		got := drawtextFilter(TextOptions{
			Text: "x", Font: "Arial", FontSize: 48, Color: "#FFFFFF",
			Position:    models.PositionBottomRight,
			BorderColor: "#FF0000",
			BorderWidth: 2,
		})
		assert.Contains(t, got, "bordercolor=0xFF0000:borderw=2")
		assert.Contains(t, got, "x=w*0.95-text_w:y=h*0.85")
	})

	t.Run("time window", func(t *testing.T) {
		start, end := 1.5, 4.0
		got := drawtextFilter(TextOptions{
			Text: "x", Font: "Arial", FontSize: 48, Color: "#FFFFFF",
			Position: models.PositionCenter,
			Start:    &start,
			End:      &end,
		})
		assert.Contains(t, got, "enable='gte(t,1.5)*lte(t,4)'")
	})

	t.Run("open-ended window", func(t *testing.T) {
		start := 2.0
		got := drawtextFilter(TextOptions{
			Text: "x", Font: "Arial", FontSize: 48, Color: "#FFFFFF",
			Position: models.PositionCenter,
			Start:    &start,
		})
		assert.Contains(t, got, "enable='gte(t,2)'")
	})

	t.Run("unknown position falls back to bottom center", func(t *testing.T) {
		got := drawtextFilter(TextOptions{
			Text: "x", Font: "Arial", FontSize: 48, Color: "#FFFFFF",
			Position: models.Position("nowhere"),
		})
		assert.Contains(t, got, "x=(w-text_w)/2:y=h*0.85")
	})
}

func TestAudioFilter(t *testing.T) {
	t.Run("volume only", func(t *testing.T) {
		assert.Equal(t, "volume=0.3", audioFilter(AudioMixOptions{Volume: 0.3}))
	})

	t.Run("fades", func(t *testing.T) {
		got := audioFilter(AudioMixOptions{Volume: 0.5, FadeIn: 1, FadeOut: 2, TotalDuration: 10})
		assert.Equal(t, "volume=0.5,afade=t=in:st=0:d=1,afade=t=out:st=8:d=2", got)
	})

	t.Run("fade-out start clamped at zero", func(t *testing.T) {
		got := audioFilter(AudioMixOptions{Volume: 1, FadeOut: 5, TotalDuration: 3})
		assert.Contains(t, got, "afade=t=out:st=0:d=5")
	})
}

func TestNarrationFilter(t *testing.T) {
	t.Run("mixed with video audio", func(t *testing.T) {
		got := narrationFilter([]NarrationTrack{
			{Path: "a.wav", Offset: 0},
			{Path: "b.wav", Offset: 4.0},
		}, true)
		assert.Equal(t,
			"[1:a]adelay=0|0[n0];[2:a]adelay=4000|4000[n1];[0:a][n0][n1]amix=inputs=3:duration=first[aout]",
			got)
	})

	t.Run("silent video keeps longest narration", func(t *testing.T) {
		got := narrationFilter([]NarrationTrack{
			{Path: "a.wav", Offset: 1.25},
			{Path: "b.wav", Offset: 6},
		}, false)
		assert.Equal(t,
			"[1:a]adelay=1250|1250[n0];[2:a]adelay=6000|6000[n1];[n0][n1]amix=inputs=2:duration=longest[aout]",
			got)
	})

	t.Run("single track over silent video skips amix", func(t *testing.T) {
		got := narrationFilter([]NarrationTrack{{Path: "a.wav", Offset: 2.5}}, false)
		assert.Equal(t, "[1:a]adelay=2500|2500[n0];[n0]anull[aout]", got)
	})
}

func TestXfadeName(t *testing.T) {
	assert.Equal(t, "fade", xfadeName(models.TransitionFade))
	assert.Equal(t, "fade", xfadeName(models.TransitionCrossfade))
	assert.Equal(t, "wipeleft", xfadeName(models.TransitionWipeLeft))
	assert.Equal(t, "wiperight", xfadeName(models.TransitionWipeRight))
	assert.Equal(t, "dissolve", xfadeName(models.TransitionDissolve))
	assert.Equal(t, "fade", xfadeName(models.TransitionType("spiral")))
}
