package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/videoforge/videoforge/internal/config"
	"github.com/videoforge/videoforge/pkg/models"
)

// TTS synthesizes speech from text
type TTS interface {
	IsAvailable(ctx context.Context) bool
	Synthesize(ctx context.Context, text string, speakerID int, speed float64) ([]byte, error)
}

// Per-phase timeouts for the VOICEVOX engine
const (
	voicevoxProbeTimeout = 3 * time.Second
	voicevoxQueryTimeout = 30 * time.Second
	voicevoxSynthTimeout = 60 * time.Second
)

// VoicevoxClient talks to a local VOICEVOX engine over HTTP
type VoicevoxClient struct {
	baseURL string
	client  *http.Client
}

// NewVoicevoxClient creates a client for a VOICEVOX engine endpoint
func NewVoicevoxClient(baseURL string) *VoicevoxClient {
	return &VoicevoxClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// IsAvailable probes the engine's version endpoint
func (v *VoicevoxClient) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, voicevoxProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/version", nil)
	if err != nil {
		return false
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Speaker describes one VOICEVOX speaker/character
type Speaker struct {
	Name string `json:"name"`
	UUID string `json:"speaker_uuid"`
}

// Speakers returns the available speakers
func (v *VoicevoxClient) Speakers(ctx context.Context) ([]Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, voicevoxQueryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/speakers", nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list speakers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speakers request returned status %d", resp.StatusCode)
	}

	var speakers []Speaker
	if err := json.NewDecoder(resp.Body).Decode(&speakers); err != nil {
		return nil, fmt.Errorf("failed to decode speakers: %w", err)
	}
	return speakers, nil
}

// Synthesize generates WAV audio for text via the two-step VOICEVOX flow:
// an audio query followed by synthesis with the (possibly speed-adjusted)
// query as payload
func (v *VoicevoxClient) Synthesize(ctx context.Context, text string, speakerID int, speed float64) ([]byte, error) {
	query, err := v.audioQuery(ctx, text, speakerID)
	if err != nil {
		return nil, err
	}

	if speed != 1.0 {
		query["speedScale"] = speed
	}

	return v.synthesis(ctx, query, speakerID)
}

// SynthesizeToFile synthesizes speech and writes it to a WAV file
func (v *VoicevoxClient) SynthesizeToFile(ctx context.Context, text string, speakerID int, speed float64, outputPath string) error {
	audio, err := v.Synthesize(ctx, text, speakerID, speed)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := os.WriteFile(outputPath, audio, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

func (v *VoicevoxClient) audioQuery(ctx context.Context, text string, speakerID int) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, voicevoxQueryTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("text", text)
	params.Set("speaker", strconv.Itoa(speakerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.baseURL+"/audio_query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, &models.ServiceUnavailableError{Service: "voicevox", Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audio query returned status %d", resp.StatusCode)
	}

	var query map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&query); err != nil {
		return nil, fmt.Errorf("failed to decode audio query: %w", err)
	}
	return query, nil
}

func (v *VoicevoxClient) synthesis(ctx context.Context, query map[string]interface{}, speakerID int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, voicevoxSynthTimeout)
	defer cancel()

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audio query: %w", err)
	}

	params := url.Values{}
	params.Set("speaker", strconv.Itoa(speakerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.baseURL+"/synthesis?"+params.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, &models.ServiceUnavailableError{Service: "voicevox", Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("synthesis returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// NewTTS creates the TTS client for a voice provider. Providers without an
// implementation return *models.UnsupportedError.
func NewTTS(provider models.VoiceProvider, cfg config.TTSConfig) (TTS, error) {
	switch provider {
	case models.VoiceVoicevox:
		return NewVoicevoxClient(cfg.VoicevoxURL), nil
	default:
		return nil, &models.UnsupportedError{Feature: fmt.Sprintf("tts provider %q", provider)}
	}
}
