package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Render    RenderConfig
	TTS       TTSConfig
	Providers ProviderConfig
	Log       LogConfig
}

// RenderConfig holds rendering configuration
type RenderConfig struct {
	FFmpegPath      string
	FFprobePath     string
	EncodeTimeout   time.Duration
	OutputDir       string
	DefaultFont     string
	DefaultFontPath string
	RemotionDir     string
	TemplatesDir    string
}

// TTSConfig holds speech synthesis configuration
type TTSConfig struct {
	VoicevoxURL string
}

// ProviderConfig holds API keys for asset generation providers
type ProviderConfig struct {
	StabilityAPIKey   string
	OpenAIAPIKey      string
	RunwayAPIKey      string
	SunoAPIKey        string
	ElevenLabsAPIKey  string
	GoogleCredentials string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from an optional file and environment variables.
// Environment variables use the VIDEOFORGE_ prefix with underscores for
// nesting (e.g. VIDEOFORGE_RENDER_FFMPEGPATH).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("videoforge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Render defaults
	v.SetDefault("render.ffmpegPath", "ffmpeg")
	v.SetDefault("render.ffprobePath", "ffprobe")
	v.SetDefault("render.encodeTimeout", "600s")
	v.SetDefault("render.outputDir", "./output")
	v.SetDefault("render.defaultFont", "Yu Gothic")
	v.SetDefault("render.defaultFontPath", "")
	v.SetDefault("render.remotionDir", "./remotion")
	v.SetDefault("render.templatesDir", "./templates")

	// TTS defaults
	v.SetDefault("tts.voicevoxURL", "http://localhost:50021")

	// Provider defaults
	v.SetDefault("providers.stabilityAPIKey", "")
	v.SetDefault("providers.openAIAPIKey", "")
	v.SetDefault("providers.runwayAPIKey", "")
	v.SetDefault("providers.sunoAPIKey", "")
	v.SetDefault("providers.elevenLabsAPIKey", "")
	v.SetDefault("providers.googleCredentials", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// EncodeTimeoutOrDefault returns the configured encode timeout, falling back
// to 10 minutes when unset
func (r RenderConfig) EncodeTimeoutOrDefault() time.Duration {
	if r.EncodeTimeout <= 0 {
		return 10 * time.Minute
	}
	return r.EncodeTimeout
}
