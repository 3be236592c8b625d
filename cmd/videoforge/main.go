// Command videoforge renders videos from declarative YAML specifications.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/videoforge/videoforge/internal/assets"
	"github.com/videoforge/videoforge/internal/config"
	"github.com/videoforge/videoforge/internal/logging"
	"github.com/videoforge/videoforge/internal/render"
	"github.com/videoforge/videoforge/internal/spec"
	"github.com/videoforge/videoforge/pkg/models"
)

const usage = `videoforge - declarative video assembly

Usage:
  videoforge render <spec.yaml> [-o output.mp4] [--engine ffmpeg|remotion]
  videoforge validate <spec.yaml>
  videoforge template list
  videoforge template use <name> [--title TITLE] [-o output.mp4]
  videoforge check

Flags:
  --config PATH   configuration file (default: none, env + defaults)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "render":
		err = cmdRender(ctx, os.Args[2:])
	case "validate":
		err = cmdValidate(os.Args[2:])
	case "template":
		err = cmdTemplate(ctx, os.Args[2:])
	case "check":
		err = cmdCheck(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setup(configPath string) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, log, nil
}

func newEngine(cfg *config.Config, log *logging.Logger) (*render.Engine, error) {
	backend := render.NewFFmpeg(
		cfg.Render.FFmpegPath,
		cfg.Render.FFprobePath,
		cfg.Render.EncodeTimeoutOrDefault(),
		log,
	)
	tts, err := assets.NewTTS(models.VoiceVoicevox, cfg.TTS)
	if err != nil {
		return nil, err
	}
	return render.NewEngine(cfg, backend, tts, log), nil
}

func cmdRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	output := fs.String("o", "", "output file path")
	engine := fs.String("engine", "ffmpeg", "render engine (ffmpeg or remotion)")
	configPath := fs.String("config", "", "configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: videoforge render <spec.yaml>")
	}
	specPath := fs.Arg(0)

	cfg, log, err := setup(*configPath)
	if err != nil {
		return err
	}

	s, err := spec.Load(specPath)
	if err != nil {
		return describeSpecError(specPath, err)
	}

	fmt.Printf("Rendering %q\n", s.Video.Title)
	fmt.Printf("  scenes:     %d\n", len(s.Scenes))
	fmt.Printf("  duration:   %.1fs\n", s.TotalDuration())
	fmt.Printf("  resolution: %dx%d @ %d fps\n",
		s.Video.Resolution.Width, s.Video.Resolution.Height, s.Video.FPS)

	baseDir := filepath.Dir(specPath)

	switch *engine {
	case "remotion":
		out := *output
		if out == "" {
			out = filepath.Join(cfg.Render.OutputDir, "output.mp4")
		}
		remotion := render.NewRemotion(cfg.Render.RemotionDir, log)
		out, err = remotion.Render(ctx, s, out)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", out)
		return nil

	case "ffmpeg":
		eng, err := newEngine(cfg, log)
		if err != nil {
			return err
		}
		out, err := eng.Render(ctx, s, *output, baseDir)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", out)
		return nil

	default:
		return fmt.Errorf("unknown engine %q (want ffmpeg or remotion)", *engine)
	}
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: videoforge validate <spec.yaml>")
	}
	specPath := fs.Arg(0)

	s, err := spec.Load(specPath)
	if err != nil {
		return describeSpecError(specPath, err)
	}

	fmt.Printf("%s is valid\n", specPath)
	fmt.Printf("  title:    %q\n", s.Video.Title)
	fmt.Printf("  scenes:   %d\n", len(s.Scenes))
	fmt.Printf("  duration: %.1fs\n", s.TotalDuration())
	return nil
}

// describeSpecError prints every field violation before returning a terse
// summary error
func describeSpecError(path string, err error) error {
	var validation *models.ValidationError
	if !errors.As(err, &validation) {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s has %d problem(s):\n", path, len(validation.Fields))
	for _, field := range validation.Fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field.Path, field.Message)
	}
	return fmt.Errorf("spec validation failed")
}

func cmdTemplate(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: videoforge template <list|use>")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("template list", flag.ExitOnError)
		configPath := fs.String("config", "", "configuration file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg, _, err := setup(*configPath)
		if err != nil {
			return err
		}
		return templateList(cfg.Render.TemplatesDir)

	case "use":
		fs := flag.NewFlagSet("template use", flag.ExitOnError)
		title := fs.String("title", "", "video title substituted into the template")
		output := fs.String("o", "", "output file path")
		configPath := fs.String("config", "", "configuration file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: videoforge template use <name>")
		}

		cfg, log, err := setup(*configPath)
		if err != nil {
			return err
		}
		return templateUse(ctx, cfg, log, fs.Arg(0), *title, *output)

	default:
		return fmt.Errorf("unknown template command: %s", args[0])
	}
}

func templateList(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read templates dir %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml"))
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		fmt.Println("no templates found")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func templateUse(ctx context.Context, cfg *config.Config, log *logging.Logger, name, title, output string) error {
	path := filepath.Join(cfg.Render.TemplatesDir, name+".yaml")
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(cfg.Render.TemplatesDir, name+".yml")
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("template %q not found in %s", name, cfg.Render.TemplatesDir)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if title != "" {
		data = []byte(strings.ReplaceAll(string(data), "{{title}}", title))
	}

	s, err := spec.Parse(data)
	if err != nil {
		return describeSpecError(path, err)
	}
	if title != "" {
		s.Video.Title = title
	}

	eng, err := newEngine(cfg, log)
	if err != nil {
		return err
	}
	out, err := eng.Render(ctx, s, output, cfg.Render.TemplatesDir)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", out)
	return nil
}

func cmdCheck(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, log, err := setup(*configPath)
	if err != nil {
		return err
	}

	ok := true
	report := func(name string, found bool, detail string) {
		mark := "ok"
		if !found {
			mark = "missing"
			ok = false
		}
		fmt.Printf("  %-10s %-8s %s\n", name, mark, detail)
	}

	fmt.Println("environment:")

	if path, err := exec.LookPath(cfg.Render.FFmpegPath); err == nil {
		report("ffmpeg", true, path)
	} else {
		report("ffmpeg", false, "required for rendering")
	}

	if path, err := exec.LookPath(cfg.Render.FFprobePath); err == nil {
		report("ffprobe", true, path)
	} else {
		report("ffprobe", false, "required for media inspection")
	}

	if assets.NewVoicevoxClient(cfg.TTS.VoicevoxURL).IsAvailable(ctx) {
		report("voicevox", true, cfg.TTS.VoicevoxURL)
	} else {
		fmt.Printf("  %-10s %-8s %s\n", "voicevox", "offline", "narration will be skipped")
	}

	if render.NewRemotion(cfg.Render.RemotionDir, log).Available() {
		report("remotion", true, cfg.Render.RemotionDir)
	} else {
		fmt.Printf("  %-10s %-8s %s\n", "remotion", "absent", "--engine remotion unavailable")
	}

	if !ok {
		return fmt.Errorf("environment check failed")
	}
	return nil
}
