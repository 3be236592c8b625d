package spec

import (
	"fmt"
	"math"

	"github.com/videoforge/videoforge/pkg/models"
)

// Validate checks every semantic rule of a normalized spec and reports all
// violations at once. Returns nil when the spec is valid, otherwise a
// *models.ValidationError listing each offending field path.
func Validate(s *models.VideoSpec) error {
	var fields []models.FieldError

	add := func(path, format string, args ...interface{}) {
		fields = append(fields, models.FieldError{
			Path:    path,
			Message: fmt.Sprintf(format, args...),
		})
	}

	validateMeta(&s.Video, add)
	validateExport(&s.Export, add)

	seen := make(map[string]int, len(s.Scenes))
	for i := range s.Scenes {
		validateScene(i, &s.Scenes[i], add)

		id := s.Scenes[i].ID
		if prev, dup := seen[id]; dup {
			add(fmt.Sprintf("scenes[%d].id", i), "duplicate scene id %q (already used by scenes[%d])", id, prev)
		} else {
			seen[id] = i
		}
	}

	validateTransitionBounds(s.Scenes, add)
	validateAudio(&s.Audio, s, add)

	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return nil
}

type addFunc func(path, format string, args ...interface{})

func validateMeta(m *models.VideoMeta, add addFunc) {
	if m.Resolution.Width <= 0 || m.Resolution.Height <= 0 {
		add("video.resolution", "width and height must be positive, got %dx%d", m.Resolution.Width, m.Resolution.Height)
	}
	if m.FPS <= 0 {
		add("video.fps", "fps must be positive, got %d", m.FPS)
	}
}

func validateExport(e *models.ExportConfig, add addFunc) {
	if !e.Codec.Valid() {
		add("export.codec", "unknown codec %q", e.Codec)
	}
	if !e.Platform.Valid() {
		add("export.platform", "unknown platform %q", e.Platform)
	}
}

func validateScene(i int, sc *models.Scene, add addFunc) {
	path := func(field string) string { return fmt.Sprintf("scenes[%d].%s", i, field) }

	if !sc.Type.Valid() {
		add(path("type"), "unknown scene type %q", sc.Type)
	}
	if sc.Duration <= 0 {
		add(path("duration"), "duration must be positive, got %g", sc.Duration)
	}
	if !sc.Fit.Valid() {
		add(path("fit"), "unknown fit mode %q", sc.Fit)
	}
	if !sc.TransitionIn.Valid() {
		add(path("transition_in"), "unknown transition %q", sc.TransitionIn)
	}
	if !sc.TransitionOut.Valid() {
		add(path("transition_out"), "unknown transition %q", sc.TransitionOut)
	}
	if sc.TransitionDuration < 0 {
		add(path("transition_duration"), "must not be negative, got %g", sc.TransitionDuration)
	}

	switch sc.Type {
	case models.SceneImage, models.SceneVideo:
		if sc.Source == "" {
			add(path("source"), "required for type %q", sc.Type)
		}
	case models.SceneAIGenerate:
		if sc.SourcePrompt == "" {
			add(path("source_prompt"), "required for type %q", sc.Type)
		}
	}

	for j := range sc.TextOverlays {
		validateOverlay(i, j, &sc.TextOverlays[j], add)
	}
}

func validateOverlay(i, j int, o *models.TextOverlay, add addFunc) {
	path := func(field string) string { return fmt.Sprintf("scenes[%d].text_overlays[%d].%s", i, j, field) }

	if o.Content == "" {
		add(path("content"), "content must not be empty")
	}
	if !o.Position.Valid() {
		add(path("position"), "unknown position %q", o.Position)
	}
	if o.FontSize <= 0 {
		add(path("font_size"), "font size must be positive, got %d", o.FontSize)
	}
	if !o.Animation.Valid() {
		add(path("animation"), "unknown animation %q", o.Animation)
	}
	if o.Start != nil && *o.Start < 0 {
		add(path("start"), "must not be negative, got %g", *o.Start)
	}
	if o.End != nil && *o.End < 0 {
		add(path("end"), "must not be negative, got %g", *o.End)
	}
	if o.Start != nil && o.End != nil && *o.End <= *o.Start {
		add(path("end"), "must be after start (start=%g, end=%g)", *o.Start, *o.End)
	}
}

// validateTransitionBounds rejects transition durations that exceed either
// adjacent scene. The scheduler computes the blend offset as the cumulative
// timeline position minus the transition duration; a duration longer than the
// preceding scene would push that offset negative.
func validateTransitionBounds(scenes []models.Scene, add addFunc) {
	for i := 1; i < len(scenes); i++ {
		prev, curr := &scenes[i-1], &scenes[i]

		effective := prev.TransitionOut
		if effective == models.TransitionNone {
			effective = curr.TransitionIn
		}
		if effective == models.TransitionNone {
			continue
		}

		d := prev.TransitionDuration
		if limit := math.Min(prev.Duration, curr.Duration); d > limit {
			add(fmt.Sprintf("scenes[%d].transition_duration", i-1),
				"transition duration %g exceeds adjacent scene duration %g", d, limit)
		}
	}
}

func validateAudio(a *models.Audio, s *models.VideoSpec, add addFunc) {
	if a.BGM != nil {
		if a.BGM.Volume < 0 {
			add("audio.bgm.volume", "must not be negative, got %g", a.BGM.Volume)
		}
		if a.BGM.FadeIn < 0 {
			add("audio.bgm.fade_in", "must not be negative, got %g", a.BGM.FadeIn)
		}
		if a.BGM.FadeOut < 0 {
			add("audio.bgm.fade_out", "must not be negative, got %g", a.BGM.FadeOut)
		}
	}

	for i := range a.Narration {
		seg := &a.Narration[i]
		path := func(field string) string { return fmt.Sprintf("audio.narration[%d].%s", i, field) }

		if seg.Text == "" {
			add(path("text"), "text must not be empty")
		}
		if !seg.Voice.Valid() {
			add(path("voice"), "unknown voice provider %q", seg.Voice)
		}
		if seg.Speed <= 0 {
			add(path("speed"), "speed must be positive, got %g", seg.Speed)
		}
		if seg.Scene == "" {
			add(path("scene"), "scene reference must not be empty")
		} else if s.GetScene(seg.Scene) == nil {
			add(path("scene"), "references unknown scene %q", seg.Scene)
		}
	}
}
