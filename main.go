package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soocke/multiplier-advisor/app"
	"github.com/soocke/multiplier-advisor/config"
	"github.com/soocke/multiplier-advisor/debug"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		cfgPath = flag.String("config", "advisor.yaml", "config file (.yaml, .yml or .json)")
		envFile = flag.String("env", ".env", "environment file with ADVISOR_* overrides")
		opts    app.Options
	)
	flag.BoolVar(&opts.Capture, "capture", false, "grab a screen frame")
	flag.StringVar(&opts.FramePath, "frame", "", "use an image file as the frame instead of the screen")
	flag.StringVar(&opts.Select, "select", "", "drag gesture x0,y0,x1,y1 over the frame; the region is submitted")
	flag.StringVar(&opts.ImagePath, "image", "", "upload an image file")
	flag.StringVar(&opts.EditText, "edit", "", "resubmit corrected multiplier text")
	flag.BoolVar(&opts.SaveSelection, "save-selection", false, "persist the selected region as the capture area")
	preview := flag.String("preview", "", "write the selection preview PNG here (overrides config)")
	verbose := flag.Bool("debug", false, "debug logging and runtime stats")
	flag.Parse()
	opts.ConfigPath = *cfgPath

	// Base config from file, then environment, then flags
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}
	if err := cfg.ApplyEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
	}
	if *preview != "" {
		cfg.PreviewPath = *preview
	}
	if *verbose {
		cfg.Debug = true
	}

	// Set up logger
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger, closer := NewLogger(level, cfg)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Debug {
		debug.StartRuntimeLogger(ctx, 2*time.Second, logger)
	}

	c := app.BuildContainer(cfg, logger, os.Stdout, nil)
	if opts.ImagePath != "" || opts.EditText != "" || opts.Select != "" {
		hctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := c.Client.Health(hctx); err != nil {
			logger.Warn("recognition service unreachable", "url", cfg.ServiceURL, "error", err)
		}
		cancel()
	}

	if err := app.New(c).Run(ctx, opts); err != nil {
		if errors.Is(err, app.ErrNothingToDo) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			return 2
		}
		logger.Error("run failed", "error", err)
		return 1
	}
	return 0
}
