package render

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/videoforge/videoforge/internal/logging"
	"github.com/videoforge/videoforge/pkg/models"
)

// Schedule is the result of transition scheduling: the ordered clips to
// concatenate, each scene's start offset within the assembled timeline, and
// the final cumulative duration.
type Schedule struct {
	Clips       []string
	SceneStarts []float64
	Duration    float64
}

// Scheduler merges adjacent scene clips according to their transition
// declarations, falling back to hard cuts when a blend fails
type Scheduler struct {
	backend Backend
	log     *logging.Logger
}

// NewScheduler creates a transition scheduler
func NewScheduler(backend Backend, log *logging.Logger) *Scheduler {
	return &Scheduler{backend: backend, log: log}
}

// effectiveTransition resolves the transition between two adjacent scenes.
// The outgoing transition wins; the incoming one applies only when the
// outgoing is none.
func effectiveTransition(prev, curr *models.Scene) models.TransitionType {
	if prev.TransitionOut != models.TransitionNone {
		return prev.TransitionOut
	}
	return curr.TransitionIn
}

// Run walks the scenes left to right and produces the clip sequence to
// concatenate. Each successful blend replaces the tail clip with the merged
// clip and shortens the cumulative duration by the overlap; a failed blend
// degrades to a hard cut and never aborts the render.
func (s *Scheduler) Run(ctx context.Context, scenes []models.Scene, clips []string, scratchDir string) (*Schedule, error) {
	if len(scenes) == 0 || len(scenes) != len(clips) {
		return nil, fmt.Errorf("scene/clip count mismatch: %d scenes, %d clips", len(scenes), len(clips))
	}

	sched := &Schedule{
		Clips:       []string{clips[0]},
		SceneStarts: make([]float64, len(scenes)),
		Duration:    scenes[0].Duration,
	}

	for i := 1; i < len(clips); i++ {
		prev, curr := &scenes[i-1], &scenes[i]

		transition := effectiveTransition(prev, curr)
		if transition == models.TransitionNone {
			sched.SceneStarts[i] = sched.Duration
			sched.Clips = append(sched.Clips, clips[i])
			sched.Duration += curr.Duration
			continue
		}

		d := prev.TransitionDuration
		offset := sched.Duration - d
		if offset < 0 {
			// validation rejects these up front; guard anyway rather than
			// hand ffmpeg a negative offset
			s.log.Warnf("transition into scene %q would start at %.2fs, using hard cut", curr.ID, offset)
			sched.SceneStarts[i] = sched.Duration
			sched.Clips = append(sched.Clips, clips[i])
			sched.Duration += curr.Duration
			continue
		}

		merged := filepath.Join(scratchDir, fmt.Sprintf("transition_%d.mp4", i))
		err := s.backend.BlendTransition(ctx, sched.Clips[len(sched.Clips)-1], clips[i], merged, transition, d, offset)
		if err != nil {
			var backendErr *models.BackendError
			if !errors.As(err, &backendErr) {
				return nil, err
			}
			s.log.Warnf("transition into scene %q failed, using hard cut: %v", curr.ID, err)
			sched.SceneStarts[i] = sched.Duration
			sched.Clips = append(sched.Clips, clips[i])
			sched.Duration += curr.Duration
			continue
		}

		sched.SceneStarts[i] = offset
		sched.Clips[len(sched.Clips)-1] = merged
		sched.Duration += curr.Duration - d
	}

	return sched, nil
}
