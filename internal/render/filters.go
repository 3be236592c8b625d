package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/videoforge/videoforge/pkg/models"
)

// positionExprs maps the seven named anchors to drawtext placement
// expressions. Normalized margins: 5% from edges, 85% down for bottom rows.
var positionExprs = map[models.Position]string{
	models.PositionCenter:       "x=(w-text_w)/2:y=(h-text_h)/2",
	models.PositionTopCenter:    "x=(w-text_w)/2:y=h*0.05",
	models.PositionBottomCenter: "x=(w-text_w)/2:y=h*0.85",
	models.PositionTopLeft:      "x=w*0.05:y=h*0.05",
	models.PositionTopRight:     "x=w*0.95-text_w:y=h*0.05",
	models.PositionBottomLeft:   "x=w*0.05:y=h*0.85",
	models.PositionBottomRight:  "x=w*0.95-text_w:y=h*0.85",
}

// xfadeNames maps transition types to ffmpeg xfade effect names
var xfadeNames = map[models.TransitionType]string{
	models.TransitionFade:      "fade",
	models.TransitionCrossfade: "fade",
	models.TransitionWipeLeft:  "wipeleft",
	models.TransitionWipeRight: "wiperight",
	models.TransitionDissolve:  "dissolve",
}

// xfadeName resolves a transition type to its xfade effect; unmapped names
// default to fade
func xfadeName(kind models.TransitionType) string {
	if name, ok := xfadeNames[kind]; ok {
		return name
	}
	return "fade"
}

// fitFilter builds the scale filter for a fit mode
func fitFilter(fit models.FitMode, width, height int) string {
	switch fit {
	case models.FitCover:
		return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
			width, height, width, height)
	case models.FitContain:
		return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
			width, height, width, height)
	default: // stretch
		return fmt.Sprintf("scale=%d:%d", width, height)
	}
}

// escapeDrawtext escapes text for the drawtext filter (backslash, single
// quote, colon)
func escapeDrawtext(text string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		`'`, `'\''`,
		`:`, `\:`,
	).Replace(text)
}

// drawtextFilter builds the full drawtext filter expression for an overlay
func drawtextFilter(opts TextOptions) string {
	parts := []string{fmt.Sprintf("text='%s'", escapeDrawtext(opts.Text))}

	if opts.FontFile != "" {
		parts = append(parts, fmt.Sprintf("fontfile='%s'", opts.FontFile))
	} else {
		parts = append(parts, fmt.Sprintf("font='%s'", opts.Font))
	}

	parts = append(parts, fmt.Sprintf("fontsize=%d", opts.FontSize))
	parts = append(parts, fmt.Sprintf("fontcolor=0x%s", strings.TrimPrefix(opts.Color, "#")))

	expr, ok := positionExprs[opts.Position]
	if !ok {
		expr = positionExprs[models.PositionBottomCenter]
	}
	parts = append(parts, expr)

	if opts.BgColor != "" {
		hex := strings.TrimPrefix(opts.BgColor, "#")
		if len(hex) == 8 {
			// trailing byte pair is the alpha channel
			parts = append(parts, fmt.Sprintf("box=1:boxcolor=0x%s@0x%s:boxborderw=10", hex[:6], hex[6:]))
		} else {
			parts = append(parts, fmt.Sprintf("box=1:boxcolor=0x%s@0.5:boxborderw=10", hex))
		}
	}

	if opts.BorderColor != "" && opts.BorderWidth > 0 {
		parts = append(parts, fmt.Sprintf("bordercolor=0x%s:borderw=%d",
			strings.TrimPrefix(opts.BorderColor, "#"), opts.BorderWidth))
	}

	if opts.Start != nil || opts.End != nil {
		var window []string
		if opts.Start != nil {
			window = append(window, fmt.Sprintf("gte(t,%s)", formatFloat(*opts.Start)))
		}
		if opts.End != nil {
			window = append(window, fmt.Sprintf("lte(t,%s)", formatFloat(*opts.End)))
		}
		parts = append(parts, fmt.Sprintf("enable='%s'", strings.Join(window, "*")))
	}

	return "drawtext=" + strings.Join(parts, ":")
}

// audioFilter builds the volume/fade filter chain for an audio track. The
// fade-out start is clamped at zero so it never precedes the track.
func audioFilter(opts AudioMixOptions) string {
	filters := []string{fmt.Sprintf("volume=%s", formatFloat(opts.Volume))}

	if opts.FadeIn > 0 {
		filters = append(filters, fmt.Sprintf("afade=t=in:st=0:d=%s", formatFloat(opts.FadeIn)))
	}
	if opts.FadeOut > 0 && opts.TotalDuration > 0 {
		start := math.Max(0, opts.TotalDuration-opts.FadeOut)
		filters = append(filters, fmt.Sprintf("afade=t=out:st=%s:d=%s",
			formatFloat(start), formatFloat(opts.FadeOut)))
	}

	return strings.Join(filters, ",")
}

// narrationFilter builds the adelay/amix graph placing each narration track
// at its timeline offset. Input 0 is the video; narration files follow in
// declaration order, so segments sharing a scene keep their relative order
// and are summed by amix.
func narrationFilter(tracks []NarrationTrack, videoHasAudio bool) string {
	var sb strings.Builder
	labels := make([]string, 0, len(tracks)+1)

	if videoHasAudio {
		labels = append(labels, "[0:a]")
	}

	for i, track := range tracks {
		ms := int(math.Round(track.Offset * 1000))
		label := fmt.Sprintf("[n%d]", i)
		fmt.Fprintf(&sb, "[%d:a]adelay=%d|%d%s;", i+1, ms, ms, label)
		labels = append(labels, label)
	}

	if len(labels) == 1 {
		// single narration track over a silent video: no mix needed
		fmt.Fprintf(&sb, "%sanull[aout]", labels[0])
		return sb.String()
	}

	// duration=first pins the mix to the video's own audio; without one the
	// longest narration wins and -shortest trims to the video
	duration := "longest"
	if videoHasAudio {
		duration = "first"
	}
	fmt.Fprintf(&sb, "%samix=inputs=%d:duration=%s[aout]",
		strings.Join(labels, ""), len(labels), duration)
	return sb.String()
}
