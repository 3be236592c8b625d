package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Resolution is a video frame size in pixels, serialized as [width, height]
type Resolution struct {
	Width  int
	Height int
}

// UnmarshalYAML decodes a two-element [width, height] sequence
func (r *Resolution) UnmarshalYAML(value *yaml.Node) error {
	var pair []int
	if err := value.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("resolution must be [width, height], got %d elements", len(pair))
	}
	r.Width = pair[0]
	r.Height = pair[1]
	return nil
}

// MarshalYAML encodes the resolution as a flow-style [width, height] sequence
func (r Resolution) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{}
	if err := node.Encode([]int{r.Width, r.Height}); err != nil {
		return nil, err
	}
	node.Style = yaml.FlowStyle
	return node, nil
}

// MarshalJSON encodes the resolution as [width, height]
func (r Resolution) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d]", r.Width, r.Height)), nil
}

// TextOverlay is a single text element composited onto a scene
type TextOverlay struct {
	Content     string    `yaml:"content" json:"content"`
	Position    Position  `yaml:"position" json:"position"`
	Font        string    `yaml:"font,omitempty" json:"font,omitempty"`
	FontSize    int       `yaml:"font_size" json:"font_size"`
	Color       string    `yaml:"color" json:"color"`
	BgColor     string    `yaml:"bg_color,omitempty" json:"bg_color,omitempty"`
	BorderColor string    `yaml:"border_color,omitempty" json:"border_color,omitempty"`
	BorderWidth int       `yaml:"border_width,omitempty" json:"border_width,omitempty"`
	Animation   Animation `yaml:"animation" json:"animation"`
	Start       *float64  `yaml:"start,omitempty" json:"start,omitempty"`
	End         *float64  `yaml:"end,omitempty" json:"end,omitempty"`
	Style       string    `yaml:"style,omitempty" json:"style,omitempty"`
}

// UnmarshalYAML applies overlay defaults before decoding
func (o *TextOverlay) UnmarshalYAML(value *yaml.Node) error {
	type rawOverlay TextOverlay
	raw := rawOverlay{
		Position:  PositionBottomCenter,
		FontSize:  48,
		Color:     "#FFFFFF",
		Animation: AnimationNone,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*o = TextOverlay(raw)
	return nil
}

// Scene is one timed visual segment of the video
type Scene struct {
	ID                 string         `yaml:"id,omitempty" json:"id,omitempty"`
	Type               SceneType      `yaml:"type" json:"type"`
	Duration           float64        `yaml:"duration" json:"duration"`
	Source             string         `yaml:"source,omitempty" json:"source,omitempty"`
	SourcePrompt       string         `yaml:"source_prompt,omitempty" json:"source_prompt,omitempty"`
	Color              string         `yaml:"color" json:"color"`
	Fit                FitMode        `yaml:"fit" json:"fit"`
	TextOverlays       []TextOverlay  `yaml:"text_overlays,omitempty" json:"text_overlays,omitempty"`
	TransitionIn       TransitionType `yaml:"transition_in" json:"transition_in"`
	TransitionOut      TransitionType `yaml:"transition_out" json:"transition_out"`
	TransitionDuration float64        `yaml:"transition_duration" json:"transition_duration"`
}

// UnmarshalYAML applies scene defaults before decoding
func (s *Scene) UnmarshalYAML(value *yaml.Node) error {
	type rawScene Scene
	raw := rawScene{
		Type:               SceneColor,
		Duration:           5.0,
		Color:              "#000000",
		Fit:                FitCover,
		TransitionIn:       TransitionNone,
		TransitionOut:      TransitionNone,
		TransitionDuration: 0.5,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = Scene(raw)
	return nil
}

// BGM is the background music track mixed under the full timeline
type BGM struct {
	Source       string  `yaml:"source,omitempty" json:"source,omitempty"`
	SourcePrompt string  `yaml:"source_prompt,omitempty" json:"source_prompt,omitempty"`
	Volume       float64 `yaml:"volume" json:"volume"`
	FadeIn       float64 `yaml:"fade_in" json:"fade_in"`
	FadeOut      float64 `yaml:"fade_out" json:"fade_out"`
	Loop         bool    `yaml:"loop" json:"loop"`
}

// UnmarshalYAML applies BGM defaults before decoding
func (b *BGM) UnmarshalYAML(value *yaml.Node) error {
	type rawBGM BGM
	raw := rawBGM{
		Volume: 0.3,
		Loop:   true,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*b = BGM(raw)
	return nil
}

// NarrationSegment ties one synthesized speech segment to a scene
type NarrationSegment struct {
	Scene     string        `yaml:"scene" json:"scene"`
	Text      string        `yaml:"text" json:"text"`
	Voice     VoiceProvider `yaml:"voice" json:"voice"`
	SpeakerID int           `yaml:"speaker_id" json:"speaker_id"`
	Speed     float64       `yaml:"speed" json:"speed"`
}

// UnmarshalYAML applies narration defaults before decoding
func (n *NarrationSegment) UnmarshalYAML(value *yaml.Node) error {
	type rawSegment NarrationSegment
	raw := rawSegment{
		Voice:     VoiceVoicevox,
		SpeakerID: 1,
		Speed:     1.0,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*n = NarrationSegment(raw)
	return nil
}

// Audio holds the audio configuration for the video
type Audio struct {
	BGM       *BGM               `yaml:"bgm,omitempty" json:"bgm,omitempty"`
	Narration []NarrationSegment `yaml:"narration,omitempty" json:"narration,omitempty"`
}

// VideoMeta holds video metadata and global settings
type VideoMeta struct {
	Title           string     `yaml:"title" json:"title"`
	Resolution      Resolution `yaml:"resolution" json:"resolution"`
	FPS             int        `yaml:"fps" json:"fps"`
	BackgroundColor string     `yaml:"background_color" json:"background_color"`
}

// UnmarshalYAML applies metadata defaults before decoding
func (m *VideoMeta) UnmarshalYAML(value *yaml.Node) error {
	type rawMeta VideoMeta
	raw := rawMeta{
		Title:           "Untitled",
		Resolution:      Resolution{Width: 1920, Height: 1080},
		FPS:             30,
		BackgroundColor: "#000000",
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*m = VideoMeta(raw)
	return nil
}

// ExportConfig holds output encoding configuration
type ExportConfig struct {
	Format     string   `yaml:"format" json:"format"`
	Codec      Codec    `yaml:"codec" json:"codec"`
	Platform   Platform `yaml:"platform" json:"platform"`
	Quality    string   `yaml:"quality" json:"quality"`
	OutputPath string   `yaml:"output_path,omitempty" json:"output_path,omitempty"`
}

// UnmarshalYAML applies export defaults before decoding
func (e *ExportConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawExport ExportConfig
	raw := rawExport{
		Format:   "mp4",
		Codec:    CodecH264,
		Platform: PlatformYouTube,
		Quality:  "high",
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*e = ExportConfig(raw)
	return nil
}

// VideoSpec is the root of a complete video specification
type VideoSpec struct {
	Version string       `yaml:"version" json:"version"`
	Video   VideoMeta    `yaml:"video" json:"video"`
	Scenes  []Scene      `yaml:"scenes" json:"scenes"`
	Audio   Audio        `yaml:"audio" json:"audio"`
	Export  ExportConfig `yaml:"export" json:"export"`
}

// UnmarshalYAML applies root defaults before decoding
func (s *VideoSpec) UnmarshalYAML(value *yaml.Node) error {
	type rawSpec VideoSpec
	raw := rawSpec{
		Version: "1.0",
		Video: VideoMeta{
			Title:           "Untitled",
			Resolution:      Resolution{Width: 1920, Height: 1080},
			FPS:             30,
			BackgroundColor: "#000000",
		},
		Export: ExportConfig{
			Format:   "mp4",
			Codec:    CodecH264,
			Platform: PlatformYouTube,
			Quality:  "high",
		},
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = VideoSpec(raw)
	return nil
}

// TotalDuration is the sum of all scene durations in seconds.
// Transition overlap is accounted for at scheduling time, not here.
func (s *VideoSpec) TotalDuration() float64 {
	var total float64
	for _, scene := range s.Scenes {
		total += scene.Duration
	}
	return total
}

// GetScene returns the scene with the given id, or nil if no scene matches
func (s *VideoSpec) GetScene(id string) *Scene {
	for i := range s.Scenes {
		if s.Scenes[i].ID == id {
			return &s.Scenes[i]
		}
	}
	return nil
}
