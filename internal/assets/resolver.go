// Package assets resolves scene and audio references to local media paths
// and hosts the generation/TTS provider clients.
package assets

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/videoforge/videoforge/internal/logging"
	"github.com/videoforge/videoforge/pkg/models"
)

// Kind classifies the outcome of an asset resolution
type Kind int

// Resolution outcome kinds
const (
	// KindLocal means the reference resolved to a concrete local path.
	// Existence is not checked here; the consuming stage must verify it.
	KindLocal Kind = iota
	// KindUnavailable means a generation prompt was given but no provider
	// could serve it. The caller decides the fallback policy.
	KindUnavailable
	// KindNone means no asset was requested (valid for e.g. color scenes).
	KindNone
)

// Result is the outcome of resolving an asset reference
type Result struct {
	Kind   Kind
	Path   string
	Reason string
}

// Resolver maps source paths and generation prompts to local media files
type Resolver struct {
	baseDir string
	images  Generator
	music   Generator
	videos  Generator
	log     *logging.Logger
}

// NewResolver creates a resolver for assets relative to baseDir
func NewResolver(baseDir string, log *logging.Logger) *Resolver {
	if baseDir == "" {
		baseDir = "."
	}
	return &Resolver{
		baseDir: baseDir,
		images:  &ImageGenerator{},
		music:   &MusicGenerator{},
		videos:  &VideoGenerator{},
		log:     log,
	}
}

// ResolveImage resolves an image source or generation prompt
func (r *Resolver) ResolveImage(ctx context.Context, source, prompt string) Result {
	return r.resolve(ctx, source, prompt, r.images)
}

// ResolveAudio resolves an audio source or generation prompt
func (r *Resolver) ResolveAudio(ctx context.Context, source, prompt string) Result {
	return r.resolve(ctx, source, prompt, r.music)
}

// ResolveVideo resolves a video source or generation prompt
func (r *Resolver) ResolveVideo(ctx context.Context, source, prompt string) Result {
	return r.resolve(ctx, source, prompt, r.videos)
}

func (r *Resolver) resolve(ctx context.Context, source, prompt string, gen Generator) Result {
	if source != "" {
		return Result{Kind: KindLocal, Path: r.resolveLocal(source)}
	}
	if prompt != "" {
		path, err := gen.Generate(ctx, prompt)
		if err != nil {
			var unsupported *models.UnsupportedError
			if errors.As(err, &unsupported) {
				r.log.Warnf("%s (prompt: %q)", unsupported.Error(), prompt)
			} else {
				r.log.Warnf("asset generation failed: %v", err)
			}
			return Result{Kind: KindUnavailable, Reason: err.Error()}
		}
		return Result{Kind: KindLocal, Path: path}
	}
	return Result{Kind: KindNone}
}

// resolveLocal joins a relative source with the base directory; absolute
// paths pass through untouched
func (r *Resolver) resolveLocal(source string) string {
	if filepath.IsAbs(source) {
		return source
	}
	return filepath.Join(r.baseDir, source)
}
