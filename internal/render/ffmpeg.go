package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/videoforge/videoforge/internal/export"
	"github.com/videoforge/videoforge/internal/logging"
	"github.com/videoforge/videoforge/pkg/models"
)

const stderrExcerptLimit = 500

// FFmpeg drives the ffmpeg and ffprobe binaries
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
	log         *logging.Logger
}

// NewFFmpeg creates an FFmpeg backend. Encode operations are bounded by the
// given timeout.
func NewFFmpeg(ffmpegPath, ffprobePath string, timeout time.Duration, log *logging.Logger) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
		log:         log,
	}
}

// run executes one ffmpeg invocation with the encode timeout applied
func (f *FFmpeg) run(ctx context.Context, op string, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	full := append([]string{"-y"}, args...)
	f.log.Debugf("ffmpeg %s", strings.Join(full, " "))

	cmd := exec.CommandContext(ctx, f.ffmpegPath, full...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		backendErr := &models.BackendError{
			Op:     op,
			Stderr: excerpt(stderr.Bytes()),
		}
		if ctx.Err() == context.DeadlineExceeded {
			backendErr.Timeout = true
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			backendErr.ExitCode = exitErr.ExitCode()
		}
		return backendErr
	}
	return nil
}

// excerpt bounds a diagnostic blob to its last stderrExcerptLimit bytes
func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > stderrExcerptLimit {
		s = s[len(s)-stderrExcerptLimit:]
	}
	return s
}

// CreateColorClip encodes a solid color clip via the lavfi color source
func (f *FFmpeg) CreateColorClip(ctx context.Context, out, hexColor string, duration float64, width, height, fps int) error {
	color := strings.TrimPrefix(hexColor, "#")
	return f.run(ctx, "create color clip", []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=0x%s:s=%dx%d:d=%s:r=%d", color, width, height, formatFloat(duration), fps),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-t", formatFloat(duration),
		out,
	})
}

// CreateImageClip encodes a still image held for duration, fitted per mode
func (f *FFmpeg) CreateImageClip(ctx context.Context, out, image string, duration float64, width, height, fps int, fit models.FitMode) error {
	return f.run(ctx, "create image clip", []string{
		"-loop", "1",
		"-i", image,
		"-vf", fitFilter(fit, width, height),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-t", formatFloat(duration),
		"-r", strconv.Itoa(fps),
		out,
	})
}

// CreateVideoClip trims a source video to duration, rescales it to the
// target frame with padding, and drops the audio stream
func (f *FFmpeg) CreateVideoClip(ctx context.Context, out, src string, duration float64, width, height int) error {
	return f.run(ctx, "create video clip", []string{
		"-i", src,
		"-t", formatFloat(duration),
		"-vf", fitFilter(models.FitContain, width, height),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-an",
		out,
	})
}

// DrawText composites a text overlay using the drawtext filter
func (f *FFmpeg) DrawText(ctx context.Context, in, out string, opts TextOptions) error {
	return f.run(ctx, "draw text overlay", []string{
		"-i", in,
		"-vf", drawtextFilter(opts),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "copy",
		out,
	})
}

// BlendTransition merges two clips with an xfade starting at offset within
// the first clip's timeline
func (f *FFmpeg) BlendTransition(ctx context.Context, a, b, out string, kind models.TransitionType, duration, offset float64) error {
	return f.run(ctx, "blend transition", []string{
		"-i", a,
		"-i", b,
		"-filter_complex",
		fmt.Sprintf("xfade=transition=%s:duration=%s:offset=%s",
			xfadeName(kind), formatFloat(duration), formatFloat(offset)),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		out,
	})
}

// Concat joins clips with the concat demuxer; a single clip is copied through
func (f *FFmpeg) Concat(ctx context.Context, out string, clips []string) error {
	if len(clips) == 0 {
		return &models.BackendError{Op: "concatenate", Stderr: "no clips to concatenate"}
	}
	if len(clips) == 1 {
		if err := copyFile(clips[0], out); err != nil {
			return &models.BackendError{Op: "concatenate", Stderr: err.Error()}
		}
		return nil
	}

	listFile, err := writeConcatList(filepath.Dir(out), clips)
	if err != nil {
		return &models.BackendError{Op: "concatenate", Stderr: err.Error()}
	}
	defer os.Remove(listFile)

	return f.run(ctx, "concatenate", []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		out,
	})
}

// writeConcatList writes the demuxer file list next to the output
func writeConcatList(dir string, clips []string) (string, error) {
	var sb strings.Builder
	for _, clip := range clips {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "file '%s'\n", filepath.ToSlash(abs))
	}

	listFile := filepath.Join(dir, "concat_list.txt")
	if err := os.WriteFile(listFile, []byte(sb.String()), 0644); err != nil {
		return "", err
	}
	return listFile, nil
}

// AddAudioTrack attaches an audio track to a video without an audio stream.
// The output is trimmed to the shorter of the two inputs.
func (f *FFmpeg) AddAudioTrack(ctx context.Context, video, audio, out string, opts AudioMixOptions) error {
	return f.run(ctx, "add audio track", []string{
		"-i", video,
		"-i", audio,
		"-af", audioFilter(opts),
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		out,
	})
}

// MixAudioTrack mixes an audio track with the video's existing audio,
// normalized to the primary stream's duration
func (f *FFmpeg) MixAudioTrack(ctx context.Context, video, audio, out string, opts AudioMixOptions) error {
	return f.run(ctx, "mix audio track", []string{
		"-i", video,
		"-i", audio,
		"-filter_complex",
		fmt.Sprintf("[1:a]%s[bgm];[0:a][bgm]amix=inputs=2:duration=first[aout]", audioFilter(opts)),
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		out,
	})
}

// MixNarration mixes delayed narration tracks over the video's timeline.
// Each track is delayed to its offset; tracks are summed together with the
// video's audio stream when one exists.
func (f *FFmpeg) MixNarration(ctx context.Context, video, out string, tracks []NarrationTrack) error {
	if len(tracks) == 0 {
		if err := copyFile(video, out); err != nil {
			return &models.BackendError{Op: "mix narration", Stderr: err.Error()}
		}
		return nil
	}

	hasAudio, err := f.HasAudioStream(ctx, video)
	if err != nil {
		return err
	}

	args := []string{"-i", video}
	for _, track := range tracks {
		args = append(args, "-i", track.Path)
	}

	args = append(args,
		"-filter_complex", narrationFilter(tracks, hasAudio),
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		out,
	)

	return f.run(ctx, "mix narration", args)
}

// Finalize re-encodes a clip with a platform preset
func (f *FFmpeg) Finalize(ctx context.Context, in, out string, preset export.Preset) error {
	args := append([]string{"-i", in}, preset.FFmpegArgs()...)
	args = append(args, out)
	return f.run(ctx, "finalize", args)
}

// ffprobe output structures
type probeData struct {
	Format  probeFormat  `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeStream struct {
	CodecType string `json:"codec_type"`
}

func (f *FFmpeg) probe(ctx context.Context, path string) (*probeData, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		backendErr := &models.BackendError{
			Op:     "probe",
			Stderr: excerpt(stderr.Bytes()),
		}
		if ctx.Err() == context.DeadlineExceeded {
			backendErr.Timeout = true
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			backendErr.ExitCode = exitErr.ExitCode()
		}
		return nil, backendErr
	}

	var data probeData
	if err := json.Unmarshal(stdout.Bytes(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &data, nil
}

// ProbeDuration returns a media file's duration in seconds
func (f *FFmpeg) ProbeDuration(ctx context.Context, path string) (float64, error) {
	data, err := f.probe(ctx, path)
	if err != nil {
		return 0, err
	}
	duration, err := strconv.ParseFloat(data.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", data.Format.Duration, err)
	}
	return duration, nil
}

// HasAudioStream reports whether a media file carries an audio stream
func (f *FFmpeg) HasAudioStream(ctx context.Context, path string) (bool, error) {
	data, err := f.probe(ctx, path)
	if err != nil {
		return false, err
	}
	for _, stream := range data.Streams {
		if stream.CodecType == "audio" {
			return true, nil
		}
	}
	return false, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// formatFloat renders a duration argument without exponent notation
func formatFloat(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
