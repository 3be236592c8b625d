// Package render implements the timeline assembly pipeline: scene
// composition, transition scheduling, audio mixing, and orchestration of the
// external media backend.
package render

import (
	"context"

	"github.com/videoforge/videoforge/internal/export"
	"github.com/videoforge/videoforge/pkg/models"
)

// TextOptions holds parameters for a single text overlay draw
type TextOptions struct {
	Text        string
	Font        string
	FontFile    string // explicit font file; resolved by family name when empty
	FontSize    int
	Color       string
	Position    models.Position
	BgColor     string
	BorderColor string
	BorderWidth int
	Start       *float64 // seconds from clip start; nil = from the beginning
	End         *float64 // nil = until the end
}

// AudioMixOptions holds parameters for mixing an audio track under a video
type AudioMixOptions struct {
	Volume        float64
	FadeIn        float64
	FadeOut       float64
	TotalDuration float64 // used to place the fade-out start
}

// NarrationTrack is one synthesized speech file aligned at a timeline offset
type NarrationTrack struct {
	Path   string
	Offset float64 // seconds from the start of the assembled timeline
}

// Backend is the external media encoding collaborator. Every operation is
// synchronous and returns *models.BackendError on failure.
type Backend interface {
	// CreateColorClip encodes a solid color clip
	CreateColorClip(ctx context.Context, out, hexColor string, duration float64, width, height, fps int) error
	// CreateImageClip encodes a still image held for a duration, fitted to the frame
	CreateImageClip(ctx context.Context, out, image string, duration float64, width, height, fps int, fit models.FitMode) error
	// CreateVideoClip trims a source video to a duration, rescales it, and drops its audio
	CreateVideoClip(ctx context.Context, out, src string, duration float64, width, height int) error
	// DrawText composites a text overlay onto a clip
	DrawText(ctx context.Context, in, out string, opts TextOptions) error
	// BlendTransition merges two clips with a timed blend starting at offset within the first
	BlendTransition(ctx context.Context, a, b, out string, kind models.TransitionType, duration, offset float64) error
	// Concat joins clips in order without blending
	Concat(ctx context.Context, out string, clips []string) error
	// AddAudioTrack attaches an audio track to a video that has no audio stream
	AddAudioTrack(ctx context.Context, video, audio, out string, opts AudioMixOptions) error
	// MixAudioTrack mixes an audio track with a video's existing audio stream
	MixAudioTrack(ctx context.Context, video, audio, out string, opts AudioMixOptions) error
	// MixNarration mixes delayed narration tracks over a video's timeline
	MixNarration(ctx context.Context, video, out string, tracks []NarrationTrack) error
	// ProbeDuration returns a media file's duration in seconds
	ProbeDuration(ctx context.Context, path string) (float64, error)
	// HasAudioStream reports whether a media file carries an audio stream
	HasAudioStream(ctx context.Context, path string) (bool, error)
	// Finalize re-encodes a clip with a platform preset
	Finalize(ctx context.Context, in, out string, preset export.Preset) error
}
