package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"monster-globe/internal/app"
	"monster-globe/internal/config"
	"monster-globe/internal/graphics"
	"monster-globe/internal/logger"
	"monster-globe/internal/marker"
)

func init() {
	// raylib must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := logger.Options{File: cfg.Log.File, Level: cfg.Log.Level}
	if cfg.Log.Console {
		opts.Console = os.Stderr
	}
	log, err := logger.New(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Close()

	markers := marker.Builtin()
	if path := cfg.Assets.Markers; path != "" {
		markers, err = marker.Load(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("load markers")
			log.Close()
			os.Exit(1)
		}
	}
	log.Info().Int("markers", markers.Len()).Str("config", *configPath).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, markers, log.Logger, log.Lines)
	err = graphics.Run(ctx, graphics.Window{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		FPS:    cfg.Window.FPS,
		MSAA:   cfg.Window.MSAA,
	}, a)
	if err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("bye")
}
