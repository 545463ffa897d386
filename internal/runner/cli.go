package runner

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"orbitlight/internal/buildinfo"
	"orbitlight/internal/config"
	"orbitlight/internal/logx"
	"orbitlight/scene"
)

// Main parses args for the named variant, runs it and returns the process
// exit code.
func Main(args []string, variant string, stderr io.Writer) int {
	v, ok := scene.Variants()[variant]
	if !ok {
		fmt.Fprintf(stderr, "unknown scene %q\n", variant)
		return 1
	}

	fs := flag.NewFlagSet(variant, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath  = fs.String("config", "", "TOML config file.")
		headless = fs.Bool("headless", false, "Run without a window.")
		hz       = fs.Int("hz", 0, "Tick rate in headless mode.")
		ticks    = fs.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run until interrupted).")
		fixed    = fs.Bool("fixed-step", false, "Advance time by exactly 1/hz per headless tick.")
		snapshot = fs.String("snapshot", "", "Write the last frame to this PNG file.")
		scale    = fs.Int("scale", 0, "Window and snapshot scale.")
		export   = fs.String("export", "", "Write the scene after startup to a .toml or .yaml file.")
		mode     = fs.String("mode", "", "Render mode: wireframe, flat or vertex.")
		wire     = fs.Bool("wireframe", false, "Start with the global wireframe on.")
		vv       = fs.Bool("vv", false, "Debug logging.")
		verbose  = fs.Bool("v", false, "Info logging.")
		quiet    = fs.Bool("q", false, "Errors only.")
		version  = fs.Bool("version", false, "Print version and exit.")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *version {
		fmt.Fprintln(stderr, variant, buildinfo.String())
		return 0
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["hz"] {
		cfg.Headless.Hz = *hz
	}
	if set["ticks"] {
		cfg.Headless.Ticks = *ticks
	}
	if set["fixed-step"] {
		cfg.Headless.FixedStep = *fixed
	}
	if set["scale"] {
		cfg.Window.Scale = *scale
	}
	if set["mode"] {
		cfg.Render.Mode = *mode
	}
	if set["wireframe"] {
		cfg.Render.Wireframe = *wire
	}

	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *vv || *verbose || *quiet {
		level = logx.LevelFromFlags(*vv, *verbose, *quiet)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = Run(ctx, Options{
		Variant:   v,
		Config:    cfg,
		Level:     level,
		Headless:  *headless,
		Snapshot:  *snapshot,
		Export:    *export,
		LogOutput: stderr,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
