// Command boids3d runs the 3-D boids flocking simulation: a preset or
// demo scene name is given on the command line, an optional JSON file
// narrows a preset's parameters, and an Ebiten window opens showing
// the live flock.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lao-tseu-is-alive/go-boids3d/internal/appconfig"
	"github.com/lao-tseu-is-alive/go-boids3d/internal/version"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/app"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/boids"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/demo"
)

var (
	appConfigFile   = flag.String("config", "", "path to an optional app config JSON file (logLevel, logFormat)")
	paramsOverrides = flag.String("params", "", "path to an optional params override JSON file")
	seed            = flag.Int64("seed", time.Now().UnixNano(), "random seed for flock generation")
	cpuprofile      = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile      = flag.String("memprofile", "", "write memory profile to file")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] <preset-or-scene-name>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "known presets: %s\n", strings.Join(boids.PresetNames(), ", "))
	fmt.Fprintf(os.Stderr, "known demo scenes: %s\n", strings.Join(demo.Names, ", "))
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	name := flag.Arg(0)

	cfg, err := appconfig.Load(*appConfigFile, "internal/appconfig/config_schema.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", version.APP, err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: failed to initialize logger: %v\n", version.APP, err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("app", version.APP), zap.String("version", version.VERSION),
		zap.String("buildStamp", version.BuildStamp), zap.String("repository", version.REPOSITORY),
		zap.String("scene", name))

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			logger.Fatal("could not create cpu profile", zap.Error(err))
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal("could not start cpu profile", zap.Error(err))
		}
		defer pprof.StopCPUProfile()
	}

	overrides, err := boids.LoadOverrides(*paramsOverrides, "pkg/boids/config_schema.json")
	if err != nil {
		logger.Fatal("invalid params override file", zap.Error(err))
	}

	game, err := app.NewGame(logger, name, overrides, *seed)
	if err != nil {
		logger.Fatal("could not start simulation", zap.Error(err))
	}

	ebiten.SetWindowSize(900, 700)
	ebiten.SetWindowTitle("boids3d")
	if err := ebiten.RunGame(game); err != nil && err != app.ErrTerminated {
		logger.Fatal("run loop exited with error", zap.Error(err))
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			logger.Fatal("could not create memory profile", zap.Error(err))
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Fatal("could not write memory profile", zap.Error(err))
		}
	}
}

// buildLogger builds a zap logger in production (JSON) encoding unless
// the config asks for "text", with the level taken from cfg.LogLevel.
func buildLogger(cfg appconfig.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if strings.ToLower(cfg.LogFormat) == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return zapCfg.Build()
}
