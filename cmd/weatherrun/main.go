package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/go-resty/resty/v2"

	"chosenoffset.com/weatherrun/internal/assets"
	"chosenoffset.com/weatherrun/internal/config"
	"chosenoffset.com/weatherrun/internal/game"
	"chosenoffset.com/weatherrun/internal/render"
	ebitenrender "chosenoffset.com/weatherrun/internal/render/ebiten"
	"chosenoffset.com/weatherrun/internal/telemetry"
	"chosenoffset.com/weatherrun/internal/weather"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	headless := flag.Bool("headless", false, "Run without a window")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for telemetry CSV and config snapshot")
	logJSON := flag.Bool("log-json", false, "Log as JSON instead of text")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if *logJSON {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	if err := run(cfg, runOptions{
		seed:      rngSeed,
		headless:  *headless,
		maxTicks:  *maxTicks,
		outputDir: *outputDir,
	}); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	seed      uint64
	headless  bool
	maxTicks  int64
	outputDir string
}

func run(cfg *config.Config, ro runOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := telemetry.NewOutput(ro.outputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	opts := game.Options{
		Config:   cfg,
		Rand:     rand.New(rand.NewPCG(ro.seed, ro.seed^0x9e3779b97f4a7c15)),
		Recorder: telemetry.NewRecorder(cfg.Telemetry.WindowTicks, out, nil),
	}

	if cfg.Weather.Enabled {
		opts.Weather = weather.NewProviderFromConfig(cfg.Weather, nil).Start(ctx)
	} else {
		slog.Info("weather lookup disabled")
	}

	if ro.headless {
		d := game.NewDriver(opts)

		slog.Info("starting headless run", "seed", ro.seed, "max_ticks", ro.maxTicks)
		if err := d.RunHeadless(ctx, ro.maxTicks); err != nil {
			return err
		}
		slog.Info("headless run finished", "tick", d.Ticks())
		return nil
	}

	sprites := assets.NewManager(cfg.Assets, resty.New().SetTimeout(cfg.Weather.Timeout), nil)
	sprites.Start(ctx)

	opts.Renderer = ebitenrender.NewRenderer()
	opts.Input = ebitenrender.NewInputManager()
	opts.Sprites = sprites
	d := game.NewDriver(opts)

	engine := ebitenrender.NewEngine()
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetTPS(cfg.Window.TPS)
	engine.SetRunnableOnUnfocused(cfg.Window.RunUnfocused)

	slog.Info("starting game", "seed", ro.seed)
	return engine.RunGame(&bounded{Driver: d, ctx: ctx, maxTicks: ro.maxTicks})
}

// bounded ends a windowed run on interrupt or after maxTicks ticks.
type bounded struct {
	*game.Driver
	ctx      context.Context
	maxTicks int64
}

func (b *bounded) Update() error {
	if b.ctx.Err() != nil {
		b.Close()
		return render.ErrQuit
	}
	if b.maxTicks > 0 && b.Ticks() >= b.maxTicks {
		slog.Info("max ticks reached", "tick", b.Ticks())
		b.Close()
		return render.ErrQuit
	}
	return b.Driver.Update()
}
