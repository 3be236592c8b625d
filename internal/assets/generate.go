package assets

import (
	"context"

	"github.com/videoforge/videoforge/pkg/models"
)

// Generator produces a local media file from a text prompt. Unimplemented
// providers return *models.UnsupportedError so the fallback policy stays
// with the caller instead of failing deep inside a rendering step.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator is a placeholder for AI image generation providers
// (Stability, DALL-E)
type ImageGenerator struct {
	APIKey string
}

// Generate reports image generation as unsupported
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", &models.UnsupportedError{Feature: "ai image generation"}
}

// MusicGenerator is a placeholder for AI music generation providers (Suno)
type MusicGenerator struct {
	APIKey string
}

// Generate reports music generation as unsupported
func (g *MusicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", &models.UnsupportedError{Feature: "ai music generation"}
}

// VideoGenerator is a placeholder for AI video generation providers (Runway)
type VideoGenerator struct {
	APIKey string
}

// Generate reports video generation as unsupported
func (g *VideoGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", &models.UnsupportedError{Feature: "ai video generation"}
}
