package game

import (
	"log/slog"
	"math/rand/v2"

	"chosenoffset.com/weatherrun/internal/assets"
	"chosenoffset.com/weatherrun/internal/config"
	"chosenoffset.com/weatherrun/internal/render"
	"chosenoffset.com/weatherrun/internal/telemetry"
	"chosenoffset.com/weatherrun/internal/weather"
)

// Options wires a Driver to its collaborators. Only Config is required;
// Renderer and Input may be nil for headless runs, which never Draw.
type Options struct {
	Config   *config.Config
	Renderer render.Renderer
	Input    render.InputManager // Nil means no keys are ever pressed

	Sprites  *assets.Manager       // Nil draws placeholders
	Weather  <-chan weather.Report // Nil keeps the default condition
	Rand     *rand.Rand            // Nil seeds from the runtime
	Recorder *telemetry.Recorder   // Nil disables telemetry
	Logger   *slog.Logger          // Nil uses slog.Default()
}
