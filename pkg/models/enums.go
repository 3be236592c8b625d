package models

// SceneType identifies how a scene's base visual is produced
type SceneType string

// SceneType constants
const (
	SceneImage      SceneType = "image"
	SceneVideo      SceneType = "video"
	SceneColor      SceneType = "color"
	SceneAIGenerate SceneType = "ai_generate"
)

// Valid reports whether the scene type is one of the declared values
func (t SceneType) Valid() bool {
	switch t {
	case SceneImage, SceneVideo, SceneColor, SceneAIGenerate:
		return true
	}
	return false
}

// FitMode controls how a source image or video is fitted to the frame
type FitMode string

// FitMode constants
const (
	FitCover   FitMode = "cover"
	FitContain FitMode = "contain"
	FitStretch FitMode = "stretch"
)

// Valid reports whether the fit mode is one of the declared values
func (m FitMode) Valid() bool {
	switch m {
	case FitCover, FitContain, FitStretch:
		return true
	}
	return false
}

// Position is a named anchor for text overlay placement
type Position string

// Position constants
const (
	PositionCenter       Position = "center"
	PositionTopCenter    Position = "top_center"
	PositionBottomCenter Position = "bottom_center"
	PositionTopLeft      Position = "top_left"
	PositionTopRight     Position = "top_right"
	PositionBottomLeft   Position = "bottom_left"
	PositionBottomRight  Position = "bottom_right"
)

// Valid reports whether the position is one of the seven anchors
func (p Position) Valid() bool {
	switch p {
	case PositionCenter, PositionTopCenter, PositionBottomCenter,
		PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight:
		return true
	}
	return false
}

// Animation is cosmetic overlay animation metadata
type Animation string

// Animation constants
const (
	AnimationNone       Animation = "none"
	AnimationFadeIn     Animation = "fade_in"
	AnimationFadeOut    Animation = "fade_out"
	AnimationSlideUp    Animation = "slide_up"
	AnimationSlideDown  Animation = "slide_down"
	AnimationTypewriter Animation = "typewriter"
)

// Valid reports whether the animation is one of the declared values
func (a Animation) Valid() bool {
	switch a {
	case AnimationNone, AnimationFadeIn, AnimationFadeOut,
		AnimationSlideUp, AnimationSlideDown, AnimationTypewriter:
		return true
	}
	return false
}

// TransitionType names a visual blend between adjacent scenes
type TransitionType string

// TransitionType constants
const (
	TransitionNone      TransitionType = "none"
	TransitionFade      TransitionType = "fade"
	TransitionCrossfade TransitionType = "crossfade"
	TransitionWipeLeft  TransitionType = "wipe_left"
	TransitionWipeRight TransitionType = "wipe_right"
	TransitionDissolve  TransitionType = "dissolve"
)

// Valid reports whether the transition is one of the declared values
func (t TransitionType) Valid() bool {
	switch t {
	case TransitionNone, TransitionFade, TransitionCrossfade,
		TransitionWipeLeft, TransitionWipeRight, TransitionDissolve:
		return true
	}
	return false
}

// Platform names an export preset
type Platform string

// Platform constants
const (
	PlatformYouTube       Platform = "youtube"
	PlatformYouTubeShort  Platform = "youtube_short"
	PlatformTikTok        Platform = "tiktok"
	PlatformInstagramReel Platform = "instagram_reel"
	PlatformInstagramPost Platform = "instagram_post"
	PlatformTwitter       Platform = "twitter"
)

// Valid reports whether the platform has a known preset
func (p Platform) Valid() bool {
	switch p {
	case PlatformYouTube, PlatformYouTubeShort, PlatformTikTok,
		PlatformInstagramReel, PlatformInstagramPost, PlatformTwitter:
		return true
	}
	return false
}

// Codec names an output video codec
type Codec string

// Codec constants
const (
	CodecH264 Codec = "h264"
	CodecH265 Codec = "h265"
	CodecVP9  Codec = "vp9"
	CodecAV1  Codec = "av1"
)

// Valid reports whether the codec is one of the declared values
func (c Codec) Valid() bool {
	switch c {
	case CodecH264, CodecH265, CodecVP9, CodecAV1:
		return true
	}
	return false
}

// VoiceProvider selects a speech synthesis provider
type VoiceProvider string

// VoiceProvider constants
const (
	VoiceVoicevox   VoiceProvider = "voicevox"
	VoiceElevenLabs VoiceProvider = "elevenlabs"
	VoiceGoogle     VoiceProvider = "google"
	VoiceAzure      VoiceProvider = "azure"
)

// Valid reports whether the provider is one of the declared values
func (v VoiceProvider) Valid() bool {
	switch v {
	case VoiceVoicevox, VoiceElevenLabs, VoiceGoogle, VoiceAzure:
		return true
	}
	return false
}
