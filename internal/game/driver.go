// Package game runs the frame loop: it merges weather updates, applies input,
// spawns and steps the world, and draws it.
package game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"chosenoffset.com/weatherrun/internal/render"
	"chosenoffset.com/weatherrun/internal/telemetry"
	"chosenoffset.com/weatherrun/internal/weather"
	"chosenoffset.com/weatherrun/internal/world"
)

// Driver is the render.Game for one run.
type Driver struct {
	World   *world.World
	Spawner *world.Spawner
	Scene   *Scene

	input    render.InputManager
	weather  <-chan weather.Report
	recorder *telemetry.Recorder
	logger   *slog.Logger

	tick  time.Duration
	ticks int64
}

// NewDriver creates a driver with a world sized to the configured window.
func NewDriver(opts Options) *Driver {
	cfg := opts.Config

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Driver{
		World:   world.New(world.ParamsFromConfig(cfg), cfg.Window.Width, cfg.Window.Height),
		Spawner: world.NewSpawner(world.SpawnRulesFromConfig(cfg), rng),
		Scene: &Scene{
			Renderer:  opts.Renderer,
			Sprites:   opts.Sprites,
			ShowPlace: cfg.Render.ShowPlace,
			Debug:     cfg.Render.DebugOverlay,
		},
		input:    opts.Input,
		weather:  opts.Weather,
		recorder: opts.Recorder,
		logger:   logger,
		tick:     cfg.Derived.TickDuration,
	}
}

// Ticks returns the number of completed Update calls.
func (d *Driver) Ticks() int64 {
	return d.ticks
}

// Update advances the game by one tick.
func (d *Driver) Update() error {
	start := time.Now()

	d.mergeWeather()

	if d.input != nil {
		if ApplyInput(d.input, &d.World.Character) {
			d.logger.Info("quit requested", "tick", d.ticks)
			d.Close()
			return render.ErrQuit
		}
		if d.input.IsKeyJustPressed(render.KeyF3) {
			d.Scene.Debug = !d.Scene.Debug
		}
	}

	d.Spawner.Advance(d.World, d.tick)
	d.World.Step()

	d.ticks++
	d.recorder.Observe(d.ticks, d.World, time.Since(start))
	return nil
}

// Close releases the uploaded sprite images. It runs on the game loop's
// goroutine when the run ends; a later Draw uploads them again.
func (d *Driver) Close() {
	if d.Scene.Sprites != nil {
		d.Scene.Sprites.Dispose()
	}
}

// mergeWeather applies a pending weather report without blocking.
func (d *Driver) mergeWeather() {
	if d.weather == nil {
		return
	}
	select {
	case r, ok := <-d.weather:
		if !ok {
			d.weather = nil
			return
		}
		d.World.Weather.Apply(r)
		d.logger.Info("weather applied",
			"condition", string(d.World.Weather.Condition),
			"place", d.World.Weather.Place,
		)
	default:
	}
}

// Draw renders the current world.
func (d *Driver) Draw(screen render.Image) {
	d.Scene.Draw(screen, d.World)
}

// Layout handles window resize.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	if float64(outsideWidth) != d.World.Width || float64(outsideHeight) != d.World.Height {
		d.World.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// RunHeadless calls Update in a loop without a window until maxTicks ticks
// have run (0 means no limit), ctx is cancelled, or Update fails.
// It does not pace ticks to wall time.
func (d *Driver) RunHeadless(ctx context.Context, maxTicks int64) error {
	for maxTicks <= 0 || d.ticks < maxTicks {
		if ctx.Err() != nil {
			return nil
		}
		if err := d.Update(); err != nil {
			if errors.Is(err, render.ErrQuit) {
				return nil
			}
			return err
		}
	}
	return nil
}
