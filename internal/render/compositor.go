package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/videoforge/videoforge/internal/assets"
	"github.com/videoforge/videoforge/internal/logging"
	"github.com/videoforge/videoforge/pkg/models"
)

// Compositor builds one finished clip per scene: the base visual plus the
// scene's text overlays applied in declaration order
type Compositor struct {
	backend         Backend
	resolver        *assets.Resolver
	log             *logging.Logger
	defaultFont     string
	defaultFontPath string
}

// NewCompositor creates a scene compositor
func NewCompositor(backend Backend, resolver *assets.Resolver, defaultFont, defaultFontPath string, log *logging.Logger) *Compositor {
	return &Compositor{
		backend:         backend,
		resolver:        resolver,
		log:             log,
		defaultFont:     defaultFont,
		defaultFontPath: defaultFontPath,
	}
}

// RenderScene produces the finished clip for one scene
func (c *Compositor) RenderScene(ctx context.Context, scene *models.Scene, meta *models.VideoMeta, scratchDir string) (string, error) {
	base := filepath.Join(scratchDir, scene.ID+"_base.mp4")
	width, height := meta.Resolution.Width, meta.Resolution.Height

	switch scene.Type {
	case models.SceneColor:
		if err := c.backend.CreateColorClip(ctx, base, scene.Color, scene.Duration, width, height, meta.FPS); err != nil {
			return "", err
		}

	case models.SceneImage:
		path, err := c.resolveSource(ctx, scene, c.resolver.ResolveImage)
		if err != nil {
			return "", err
		}
		if err := c.backend.CreateImageClip(ctx, base, path, scene.Duration, width, height, meta.FPS, scene.Fit); err != nil {
			return "", err
		}

	case models.SceneVideo:
		path, err := c.resolveSource(ctx, scene, c.resolver.ResolveVideo)
		if err != nil {
			return "", err
		}
		if err := c.backend.CreateVideoClip(ctx, base, path, scene.Duration, width, height); err != nil {
			return "", err
		}

	case models.SceneAIGenerate:
		res := c.resolver.ResolveImage(ctx, "", scene.SourcePrompt)
		if res.Kind == assets.KindLocal {
			if err := c.backend.CreateImageClip(ctx, base, res.Path, scene.Duration, width, height, meta.FPS, scene.Fit); err != nil {
				return "", err
			}
			break
		}
		// fallback must be observable, never a silent success
		c.log.Warnf("scene %q: generation unavailable, falling back to color clip", scene.ID)
		if err := c.backend.CreateColorClip(ctx, base, scene.Color, scene.Duration, width, height, meta.FPS); err != nil {
			return "", err
		}

	default:
		return "", fmt.Errorf("unknown scene type: %s", scene.Type)
	}

	// overlays form a strict sequential chain: each draws onto the previous
	// result
	current := base
	for i := range scene.TextOverlays {
		next := filepath.Join(scratchDir, fmt.Sprintf("%s_text%d.mp4", scene.ID, i))
		if err := c.applyOverlay(ctx, current, next, &scene.TextOverlays[i]); err != nil {
			return "", err
		}
		current = next
	}

	return current, nil
}

type resolveFunc func(ctx context.Context, source, prompt string) assets.Result

func (c *Compositor) resolveSource(ctx context.Context, scene *models.Scene, resolve resolveFunc) (string, error) {
	res := resolve(ctx, scene.Source, scene.SourcePrompt)
	if res.Kind != assets.KindLocal {
		return "", &models.AssetNotFoundError{Path: scene.Source}
	}
	if _, err := os.Stat(res.Path); err != nil {
		return "", &models.AssetNotFoundError{Path: res.Path}
	}
	return res.Path, nil
}

func (c *Compositor) applyOverlay(ctx context.Context, in, out string, overlay *models.TextOverlay) error {
	font := overlay.Font
	if font == "" {
		font = c.defaultFont
	}

	// the configured font file only applies to the default family; other
	// fonts are resolved by name by the backend
	fontFile := ""
	if font == c.defaultFont {
		fontFile = c.defaultFontPath
	}

	return c.backend.DrawText(ctx, in, out, TextOptions{
		Text:        overlay.Content,
		Font:        font,
		FontFile:    fontFile,
		FontSize:    overlay.FontSize,
		Color:       overlay.Color,
		Position:    overlay.Position,
		BgColor:     overlay.BgColor,
		BorderColor: overlay.BorderColor,
		BorderWidth: overlay.BorderWidth,
		Start:       overlay.Start,
		End:         overlay.End,
	})
}
