package spec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videoforge/videoforge/pkg/models"
)

func validationErr(t *testing.T, doc string) *models.ValidationError {
	t.Helper()

	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr), "expected a ValidationError, got %v", err)
	return verr
}

func paths(verr *models.ValidationError) []string {
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Path)
	}
	return out
}

func TestValidateVideoSourceRequired(t *testing.T) {
	// Scene 2 (index 1) declares type video with an empty source; the error
	// must identify that scene's source field.
	doc := `
scenes:
  - type: color
    duration: 5.0
  - type: video
    duration: 3.0
    source: ""
`
	verr := validationErr(t, doc)
	assert.Contains(t, paths(verr), "scenes[1].source")
}

func TestValidateImageSourceRequired(t *testing.T) {
	verr := validationErr(t, "scenes:\n  - type: image\n    duration: 2.0\n")
	assert.Contains(t, paths(verr), "scenes[0].source")
}

func TestValidatePromptRequired(t *testing.T) {
	verr := validationErr(t, "scenes:\n  - type: ai_generate\n    duration: 2.0\n")
	assert.Contains(t, paths(verr), "scenes[0].source_prompt")
}

func TestValidateDurationPositive(t *testing.T) {
	verr := validationErr(t, "scenes:\n  - type: color\n    duration: 0\n")
	assert.Contains(t, paths(verr), "scenes[0].duration")
}

func TestValidateCollectsAllViolations(t *testing.T) {
	doc := `
scenes:
  - type: video
    duration: 0
  - type: nonsense
    duration: 2.0
audio:
  narration:
    - scene: ghost
      text: hello
`
	verr := validationErr(t, doc)
	got := paths(verr)

	assert.Contains(t, got, "scenes[0].source")
	assert.Contains(t, got, "scenes[0].duration")
	assert.Contains(t, got, "scenes[1].type")
	assert.Contains(t, got, "audio.narration[0].scene")
	assert.GreaterOrEqual(t, len(verr.Fields), 4)
}

func TestValidateUnknownEnumsFail(t *testing.T) {
	doc := `
scenes:
  - type: color
    duration: 2.0
    fit: zoom
    transition_out: swirl
    text_overlays:
      - content: hi
        position: middle_left
        animation: spin
export:
  codec: mpeg2
  platform: myspace
`
	verr := validationErr(t, doc)
	got := paths(verr)

	assert.Contains(t, got, "scenes[0].fit")
	assert.Contains(t, got, "scenes[0].transition_out")
	assert.Contains(t, got, "scenes[0].text_overlays[0].position")
	assert.Contains(t, got, "scenes[0].text_overlays[0].animation")
	assert.Contains(t, got, "export.codec")
	assert.Contains(t, got, "export.platform")
}

func TestValidateNarrationLinkageAfterDefaultIDs(t *testing.T) {
	// Narration may reference positional default ids assigned at parse time.
	doc := `
scenes:
  - duration: 2.0
audio:
  narration:
    - scene: scene_0
      text: ok
`
	_, err := Parse([]byte(doc))
	assert.NoError(t, err)
}

func TestValidateDuplicateSceneIDs(t *testing.T) {
	doc := `
scenes:
  - id: a
    duration: 2.0
  - id: a
    duration: 2.0
`
	verr := validationErr(t, doc)
	assert.Contains(t, paths(verr), "scenes[1].id")
}

func TestValidateTransitionDurationBounds(t *testing.T) {
	// A 3s transition out of a 5s scene into a 2s scene would produce a
	// negative blend offset; the spec must be rejected before scheduling.
	doc := `
scenes:
  - id: a
    duration: 5.0
    transition_out: fade
    transition_duration: 3.0
  - id: b
    duration: 2.0
`
	verr := validationErr(t, doc)
	assert.Contains(t, paths(verr), "scenes[0].transition_duration")
}

func TestValidateTransitionBoundsIgnoredWithoutTransition(t *testing.T) {
	// transition_duration is inert when no effective transition exists.
	doc := `
scenes:
  - id: a
    duration: 1.0
    transition_duration: 10.0
  - id: b
    duration: 1.0
`
	_, err := Parse([]byte(doc))
	assert.NoError(t, err)
}

func TestValidateIncomingTransitionTriggersBounds(t *testing.T) {
	// When the outgoing transition is none, the incoming one is effective
	// and the outgoing scene's transition_duration still applies.
	doc := `
scenes:
  - id: a
    duration: 1.0
    transition_duration: 2.0
  - id: b
    duration: 5.0
    transition_in: dissolve
`
	verr := validationErr(t, doc)
	assert.Contains(t, paths(verr), "scenes[0].transition_duration")
}

func TestValidateOverlayWindow(t *testing.T) {
	doc := `
scenes:
  - duration: 5.0
    text_overlays:
      - content: hi
        start: 3.0
        end: 1.0
`
	verr := validationErr(t, doc)
	assert.Contains(t, paths(verr), "scenes[0].text_overlays[0].end")
}

func TestValidateBGMRanges(t *testing.T) {
	doc := `
scenes:
  - duration: 5.0
audio:
  bgm:
    source: bgm.mp3
    volume: -0.1
    fade_out: -1.0
`
	verr := validationErr(t, doc)
	got := paths(verr)
	assert.Contains(t, got, "audio.bgm.volume")
	assert.Contains(t, got, "audio.bgm.fade_out")
}
