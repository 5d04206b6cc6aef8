// Package telemetry samples the running game into fixed windows of ticks,
// logging each window and optionally writing it to CSV.
package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"chosenoffset.com/weatherrun/internal/world"
)

// WindowStats is one sample of the world, taken at the end of a window.
type WindowStats struct {
	Tick      int64  `csv:"tick"`
	Condition string `csv:"condition"`

	LiveEnemies   int `csv:"live_enemies"`
	LiveObstacles int `csv:"live_obstacles"`

	// Totals since start
	SpawnedEnemies      int `csv:"spawned_enemies"`
	SpawnedObstacles    int `csv:"spawned_obstacles"`
	CulledEnemies       int `csv:"culled_enemies"`
	CulledObstacles     int `csv:"culled_obstacles"`
	SuppressedEnemies   int `csv:"suppressed_enemies"`
	SuppressedObstacles int `csv:"suppressed_obstacles"`

	Offset float64 `csv:"offset"`

	// Update cost over the window, microseconds
	UpdateMeanUS float64 `csv:"update_mean_us"`
	UpdateStdUS  float64 `csv:"update_std_us"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("tick", s.Tick),
		slog.String("condition", s.Condition),
		slog.Int("enemies", s.LiveEnemies),
		slog.Int("obstacles", s.LiveObstacles),
		slog.Int("spawned", s.SpawnedEnemies+s.SpawnedObstacles),
		slog.Int("culled", s.CulledEnemies+s.CulledObstacles),
		slog.Int("suppressed", s.SuppressedEnemies+s.SuppressedObstacles),
		slog.Float64("update_mean_us", s.UpdateMeanUS),
	)
}

// Recorder aggregates per-tick update durations and emits a WindowStats
// every window ticks. A nil Recorder ignores everything.
type Recorder struct {
	window  int
	samples []float64
	out     *Output
	logger  *slog.Logger
	failed  bool

	Last WindowStats // Most recent emitted window
}

// NewRecorder creates a recorder. out may be nil to only log.
// A nil logger uses slog.Default().
func NewRecorder(window int, out *Output, logger *slog.Logger) *Recorder {
	if window < 1 {
		window = 60
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		window:  window,
		samples: make([]float64, 0, window),
		out:     out,
		logger:  logger,
	}
}

// Observe records one tick. tick counts from 1.
// It reports whether a window was emitted.
func (r *Recorder) Observe(tick int64, w *world.World, updateCost time.Duration) bool {
	if r == nil {
		return false
	}

	r.samples = append(r.samples, float64(updateCost.Microseconds()))
	if tick%int64(r.window) != 0 {
		return false
	}

	mean, std := stat.MeanStdDev(r.samples, nil)
	if len(r.samples) < 2 {
		std = 0
	}
	r.samples = r.samples[:0]

	r.Last = WindowStats{
		Tick:                tick,
		Condition:           string(w.Weather.Condition),
		LiveEnemies:         w.Live(world.KindEnemy),
		LiveObstacles:       w.Live(world.KindObstacle),
		SpawnedEnemies:      w.Stats.Spawned[world.KindEnemy],
		SpawnedObstacles:    w.Stats.Spawned[world.KindObstacle],
		CulledEnemies:       w.Stats.Culled[world.KindEnemy],
		CulledObstacles:     w.Stats.Culled[world.KindObstacle],
		SuppressedEnemies:   w.Stats.Suppressed[world.KindEnemy],
		SuppressedObstacles: w.Stats.Suppressed[world.KindObstacle],
		Offset:              w.Offset,
		UpdateMeanUS:        mean,
		UpdateStdUS:         std,
	}

	r.logger.Debug("window", "stats", r.Last)

	if !r.failed {
		if err := r.out.WriteWindow(r.Last); err != nil {
			// Keep running without CSV output
			r.logger.Error("telemetry output disabled", "error", err)
			r.failed = true
		}
	}
	return true
}
