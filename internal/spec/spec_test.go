package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videoforge/videoforge/pkg/models"
)

const sampleSpec = `
version: "1.0"
video:
  title: "サンプル動画"
  resolution: [1280, 720]
  fps: 24
scenes:
  - id: intro
    type: color
    duration: 3.0
    color: "#112233"
    text_overlays:
      - content: "こんにちは、世界"
        position: center
        font_size: 64
  - id: main
    type: color
    duration: 5.0
    transition_in: dissolve
audio:
  bgm:
    source: assets/bgm.mp3
    volume: 0.2
    fade_out: 2.0
  narration:
    - scene: intro
      text: "はじめに"
      speaker_id: 3
export:
  platform: youtube_short
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sampleSpec))
	require.NoError(t, err)

	assert.Equal(t, "1.0", s.Version)
	assert.Equal(t, "サンプル動画", s.Video.Title)
	assert.Equal(t, models.Resolution{Width: 1280, Height: 720}, s.Video.Resolution)
	assert.Equal(t, 24, s.Video.FPS)
	require.Len(t, s.Scenes, 2)
	assert.Equal(t, 8.0, s.TotalDuration())
	assert.Equal(t, models.PlatformYouTubeShort, s.Export.Platform)
	require.NotNil(t, s.Audio.BGM)
	assert.Equal(t, 0.2, s.Audio.BGM.Volume)
}

func TestParseAssignsDefaultIDs(t *testing.T) {
	s, err := Parse([]byte("scenes:\n  - duration: 2.0\n  - duration: 3.0\n"))
	require.NoError(t, err)

	assert.Equal(t, "scene_0", s.Scenes[0].ID)
	assert.Equal(t, "scene_1", s.Scenes[1].ID)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("scenes: [\n"))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	// Validate, re-serialize, re-validate: the second model must match the
	// first field for field, including non-ASCII overlay content.
	s, err := Parse([]byte(sampleSpec))
	require.NoError(t, err)

	data, err := Dump(s)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, s, again)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSpec), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "サンプル動画", s.Video.Title)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	s, err := Parse([]byte(sampleSpec))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "out.yaml")
	require.NoError(t, Save(s, path))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}
