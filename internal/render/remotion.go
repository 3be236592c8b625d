package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/videoforge/videoforge/internal/logging"
	"github.com/videoforge/videoforge/pkg/models"
)

// Remotion renders a spec through a Remotion (React) project instead of the
// ffmpeg pipeline. The project dir must hold an installed node_modules tree.
type Remotion struct {
	projectDir string
	log        *logging.Logger
}

// NewRemotion creates a Remotion renderer rooted at projectDir
func NewRemotion(projectDir string, log *logging.Logger) *Remotion {
	return &Remotion{projectDir: projectDir, log: log}
}

// Available reports whether the Remotion project is present and installed
func (r *Remotion) Available() bool {
	if r.projectDir == "" {
		return false
	}
	if _, err := os.Stat(filepath.Join(r.projectDir, "node_modules")); err != nil {
		return false
	}
	return true
}

// Render invokes `npx remotion render` with the spec marshaled as composition
// props and returns the output path
func (r *Remotion) Render(ctx context.Context, s *models.VideoSpec, outputPath string) (string, error) {
	if !r.Available() {
		return "", fmt.Errorf("remotion project not found at %q (run npm install?)", r.projectDir)
	}

	props, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal spec props: %w", err)
	}

	propsFile := filepath.Join(os.TempDir(), fmt.Sprintf("videoforge_props_%d.json", os.Getpid()))
	if err := os.WriteFile(propsFile, props, 0644); err != nil {
		return "", fmt.Errorf("failed to write props file: %w", err)
	}
	defer os.Remove(propsFile)

	frames := totalFrames(s)
	r.log.Infof("remotion render: %d frames at %d fps", frames, s.Video.FPS)

	args := []string{
		"remotion", "render", "VideoForge",
		"--props=" + propsFile,
		"--output=" + outputPath,
		"--width=" + strconv.Itoa(s.Video.Resolution.Width),
		"--height=" + strconv.Itoa(s.Video.Resolution.Height),
		"--fps=" + strconv.Itoa(s.Video.FPS),
	}

	cmd := exec.CommandContext(ctx, "npx", args...)
	cmd.Dir = r.projectDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &models.BackendError{
			Op:     "remotion render",
			Stderr: excerpt(stderr.Bytes()),
		}
	}
	return outputPath, nil
}

// totalFrames sums each scene's frame count; per-scene rounding keeps scene
// boundaries on frame boundaries
func totalFrames(s *models.VideoSpec) int {
	frames := 0
	for i := range s.Scenes {
		frames += int(math.Round(s.Scenes[i].Duration * float64(s.Video.FPS)))
	}
	return frames
}
