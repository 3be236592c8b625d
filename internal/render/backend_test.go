package render

import (
	"context"
	"os"

	"github.com/videoforge/videoforge/internal/export"
	"github.com/videoforge/videoforge/pkg/models"
)

type blendCall struct {
	a, b, out string
	kind      models.TransitionType
	duration  float64
	offset    float64
}

// fakeBackend records every operation and writes placeholder output files so
// downstream stages that stat or copy them keep working
type fakeBackend struct {
	ops    []string
	blends []blendCall
	texts  []TextOptions
	mixes  []AudioMixOptions
	tracks []NarrationTrack
	concat [][]string

	blendErr error
	hasAudio bool
	duration float64
}

func (f *fakeBackend) touch(path string) error {
	return os.WriteFile(path, []byte("clip"), 0644)
}

func (f *fakeBackend) CreateColorClip(ctx context.Context, out, hexColor string, duration float64, width, height, fps int) error {
	f.ops = append(f.ops, "color")
	return f.touch(out)
}

func (f *fakeBackend) CreateImageClip(ctx context.Context, out, image string, duration float64, width, height, fps int, fit models.FitMode) error {
	f.ops = append(f.ops, "image")
	return f.touch(out)
}

func (f *fakeBackend) CreateVideoClip(ctx context.Context, out, src string, duration float64, width, height int) error {
	f.ops = append(f.ops, "video")
	return f.touch(out)
}

func (f *fakeBackend) DrawText(ctx context.Context, in, out string, opts TextOptions) error {
	f.ops = append(f.ops, "drawtext")
	f.texts = append(f.texts, opts)
	return f.touch(out)
}

func (f *fakeBackend) BlendTransition(ctx context.Context, a, b, out string, kind models.TransitionType, duration, offset float64) error {
	f.ops = append(f.ops, "blend")
	f.blends = append(f.blends, blendCall{a: a, b: b, out: out, kind: kind, duration: duration, offset: offset})
	if f.blendErr != nil {
		return f.blendErr
	}
	return f.touch(out)
}

func (f *fakeBackend) Concat(ctx context.Context, out string, clips []string) error {
	f.ops = append(f.ops, "concat")
	f.concat = append(f.concat, append([]string(nil), clips...))
	return f.touch(out)
}

func (f *fakeBackend) AddAudioTrack(ctx context.Context, video, audio, out string, opts AudioMixOptions) error {
	f.ops = append(f.ops, "add_audio")
	f.mixes = append(f.mixes, opts)
	return f.touch(out)
}

func (f *fakeBackend) MixAudioTrack(ctx context.Context, video, audio, out string, opts AudioMixOptions) error {
	f.ops = append(f.ops, "mix_audio")
	f.mixes = append(f.mixes, opts)
	return f.touch(out)
}

func (f *fakeBackend) MixNarration(ctx context.Context, video, out string, tracks []NarrationTrack) error {
	f.ops = append(f.ops, "mix_narration")
	f.tracks = append(f.tracks, tracks...)
	return f.touch(out)
}

func (f *fakeBackend) ProbeDuration(ctx context.Context, path string) (float64, error) {
	return f.duration, nil
}

func (f *fakeBackend) HasAudioStream(ctx context.Context, path string) (bool, error) {
	return f.hasAudio, nil
}

func (f *fakeBackend) Finalize(ctx context.Context, in, out string, preset export.Preset) error {
	f.ops = append(f.ops, "finalize")
	return f.touch(out)
}
