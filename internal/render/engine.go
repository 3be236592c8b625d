package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/videoforge/videoforge/internal/assets"
	"github.com/videoforge/videoforge/internal/config"
	"github.com/videoforge/videoforge/internal/export"
	"github.com/videoforge/videoforge/internal/logging"
	"github.com/videoforge/videoforge/internal/spec"
	"github.com/videoforge/videoforge/pkg/models"
)

// Stage identifies one step of the rendering pipeline
type Stage string

// Pipeline stages, in execution order
const (
	StageValidating            Stage = "validating"
	StageComposingScenes       Stage = "composing scenes"
	StageSchedulingTransitions Stage = "scheduling transitions"
	StageConcatenating         Stage = "concatenating"
	StageGeneratingNarration   Stage = "generating narration"
	StageMixingAudio           Stage = "mixing audio"
	StageFinalizing            Stage = "finalizing"
)

// Engine orchestrates the full rendering pipeline:
// spec → scene clips → transitions → concat → narration → audio mix → export
type Engine struct {
	cfg     *config.Config
	backend Backend
	tts     assets.TTS
	log     *logging.Logger

	// RequireNarration turns an unreachable TTS service into a hard failure
	// instead of a skipped-feature warning
	RequireNarration bool
}

// NewEngine creates a render engine
func NewEngine(cfg *config.Config, backend Backend, tts assets.TTS, log *logging.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		backend: backend,
		tts:     tts,
		log:     log,
	}
}

// Render produces the final video for a spec. outputPath may be empty, in
// which case a path is derived from the title under the configured output
// directory. baseDir anchors relative asset paths.
func (e *Engine) Render(ctx context.Context, s *models.VideoSpec, outputPath, baseDir string) (string, error) {
	e.log.Infof("rendering %q (%d scenes, %.1fs)", s.Video.Title, len(s.Scenes), s.TotalDuration())

	if err := spec.Validate(s); err != nil {
		return "", e.fail(StageValidating, err)
	}
	if len(s.Scenes) == 0 {
		return "", e.fail(StageValidating, fmt.Errorf("spec has no scenes"))
	}

	if outputPath == "" {
		if err := os.MkdirAll(e.cfg.Render.OutputDir, 0755); err != nil {
			return "", e.fail(StageFinalizing, err)
		}
		outputPath = filepath.Join(e.cfg.Render.OutputDir, sanitizeTitle(s.Video.Title)+".mp4")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", e.fail(StageFinalizing, err)
	}

	// scratch arena: exclusively owned by this render, released on every
	// exit path
	scratch := filepath.Join(os.TempDir(), "videoforge_"+uuid.New().String())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return "", e.fail(StageComposingScenes, err)
	}
	defer os.RemoveAll(scratch)

	resolver := assets.NewResolver(baseDir, e.log)
	compositor := NewCompositor(e.backend, resolver, e.cfg.Render.DefaultFont, e.cfg.Render.DefaultFontPath, e.log)
	scheduler := NewScheduler(e.backend, e.log)

	// Step 1: render individual scenes
	e.log.Infof("composing %d scene(s)", len(s.Scenes))
	clips := make([]string, 0, len(s.Scenes))
	for i := range s.Scenes {
		scene := &s.Scenes[i]
		e.log.Infof("  scene %d/%d: %s", i+1, len(s.Scenes), scene.ID)
		clip, err := compositor.RenderScene(ctx, scene, &s.Video, scratch)
		if err != nil {
			return "", e.fail(StageComposingScenes, err)
		}
		clips = append(clips, clip)
	}

	// Step 2: apply transitions between adjacent clips
	sched, err := scheduler.Run(ctx, s.Scenes, clips, scratch)
	if err != nil {
		return "", e.fail(StageSchedulingTransitions, err)
	}

	// Step 3: concatenate
	current := filepath.Join(scratch, "concat.mp4")
	if err := e.backend.Concat(ctx, current, sched.Clips); err != nil {
		return "", e.fail(StageConcatenating, err)
	}

	// Step 4: narration
	tracks, err := e.generateNarration(ctx, s, sched, scratch)
	if err != nil {
		return "", e.fail(StageGeneratingNarration, err)
	}
	if len(tracks) > 0 {
		e.log.Infof("mixing %d narration track(s)", len(tracks))
		withNarration := filepath.Join(scratch, "with_narration.mp4")
		if err := e.backend.MixNarration(ctx, current, withNarration, tracks); err != nil {
			return "", e.fail(StageGeneratingNarration, err)
		}
		current = withNarration
	}

	// Step 5: background music
	current, err = e.mixBGM(ctx, s, resolver, sched.Duration, current, scratch)
	if err != nil {
		return "", e.fail(StageMixingAudio, err)
	}

	// Step 6: platform export and delivery
	final, err := e.finalize(ctx, s, sched.Duration, current, scratch)
	if err != nil {
		return "", e.fail(StageFinalizing, err)
	}
	if err := copyFile(final, outputPath); err != nil {
		return "", e.fail(StageFinalizing, err)
	}

	e.log.Infof("video saved to %s", outputPath)
	return outputPath, nil
}

func (e *Engine) fail(stage Stage, err error) error {
	e.log.Errorf("render failed while %s: %v", stage, err)
	return fmt.Errorf("%s: %w", stage, err)
}

// generateNarration synthesizes each narration segment and aligns it at its
// scene's start offset within the transition-adjusted timeline
func (e *Engine) generateNarration(ctx context.Context, s *models.VideoSpec, sched *Schedule, scratch string) ([]NarrationTrack, error) {
	if len(s.Audio.Narration) == 0 {
		return nil, nil
	}

	if e.tts == nil || !e.tts.IsAvailable(ctx) {
		if e.RequireNarration {
			return nil, &models.ServiceUnavailableError{Service: "voicevox", Reason: "narration was requested but the engine is unreachable"}
		}
		e.log.Warnf("speech synthesis unavailable, skipping narration")
		return nil, nil
	}

	sceneIndex := make(map[string]int, len(s.Scenes))
	for i := range s.Scenes {
		sceneIndex[s.Scenes[i].ID] = i
	}

	var tracks []NarrationTrack
	for i := range s.Audio.Narration {
		seg := &s.Audio.Narration[i]

		if seg.Voice != models.VoiceVoicevox {
			e.log.Warnf("narration[%d]: tts provider %q not supported, skipping", i, seg.Voice)
			continue
		}

		audio, err := e.tts.Synthesize(ctx, seg.Text, seg.SpeakerID, seg.Speed)
		if err != nil {
			var unavailable *models.ServiceUnavailableError
			if errors.As(err, &unavailable) && !e.RequireNarration {
				e.log.Warnf("speech synthesis became unavailable, skipping remaining narration: %v", err)
				return tracks, nil
			}
			return nil, fmt.Errorf("narration[%d]: %w", i, err)
		}

		path := filepath.Join(scratch, fmt.Sprintf("narration_%d.wav", i))
		if err := os.WriteFile(path, audio, 0644); err != nil {
			return nil, fmt.Errorf("narration[%d]: %w", i, err)
		}

		tracks = append(tracks, NarrationTrack{
			Path:   path,
			Offset: sched.SceneStarts[sceneIndex[seg.Scene]],
		})
	}

	return tracks, nil
}

// mixBGM mixes the background music under the assembled timeline. A missing
// or unresolvable source skips the mix with a warning.
func (e *Engine) mixBGM(ctx context.Context, s *models.VideoSpec, resolver *assets.Resolver, totalDuration float64, current, scratch string) (string, error) {
	bgm := s.Audio.BGM
	if bgm == nil {
		return current, nil
	}

	res := resolver.ResolveAudio(ctx, bgm.Source, bgm.SourcePrompt)
	if res.Kind != assets.KindLocal {
		e.log.Warnf("bgm has no usable source, skipping")
		return current, nil
	}
	if _, err := os.Stat(res.Path); err != nil {
		e.log.Warnf("bgm file not found: %s", res.Path)
		return current, nil
	}

	e.log.Infof("mixing bgm: %s", res.Path)
	opts := AudioMixOptions{
		Volume:        bgm.Volume,
		FadeIn:        bgm.FadeIn,
		FadeOut:       bgm.FadeOut,
		TotalDuration: totalDuration,
	}

	hasAudio, err := e.backend.HasAudioStream(ctx, current)
	if err != nil {
		return "", err
	}

	out := filepath.Join(scratch, "with_bgm.mp4")
	if hasAudio {
		err = e.backend.MixAudioTrack(ctx, current, res.Path, out, opts)
	} else {
		err = e.backend.AddAudioTrack(ctx, current, res.Path, out, opts)
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

// finalize applies the platform export preset
func (e *Engine) finalize(ctx context.Context, s *models.VideoSpec, totalDuration float64, current, scratch string) (string, error) {
	preset, ok := export.Lookup(s.Export.Platform)
	if !ok {
		// validation guarantees a known platform; pass through untouched
		return current, nil
	}

	if preset.MaxDuration > 0 && totalDuration > float64(preset.MaxDuration) {
		e.log.Warnf("duration %.1fs exceeds the %s limit of %ds", totalDuration, preset.Name, preset.MaxDuration)
	}

	e.log.Infof("exporting for %s", preset.Name)
	out := filepath.Join(scratch, "final.mp4")
	if err := e.backend.Finalize(ctx, current, out, preset); err != nil {
		return "", err
	}
	return out, nil
}

// sanitizeTitle reduces a title to alphanumerics, spaces, hyphens, and
// underscores for use as a file name
func sanitizeTitle(title string) string {
	var sb strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	name := strings.TrimSpace(sb.String())
	if name == "" || strings.Trim(name, "_") == "" {
		return "output"
	}
	return name
}
