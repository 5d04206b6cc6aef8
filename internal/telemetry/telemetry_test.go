package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/weatherrun/internal/config"
	"chosenoffset.com/weatherrun/internal/weather"
	"chosenoffset.com/weatherrun/internal/world"
)

func testWorld(t *testing.T) *world.World {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return world.New(world.ParamsFromConfig(cfg), 800, 600)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.False(t, r.Observe(60, testWorld(t), time.Millisecond))
}

func TestNilOutputIsNoop(t *testing.T) {
	out, err := NewOutput("")
	require.NoError(t, err)
	assert.Nil(t, out)

	assert.NoError(t, out.WriteWindow(WindowStats{}))
	assert.NoError(t, out.WriteConfig(&config.Config{}))
	assert.NoError(t, out.Close())
	assert.Equal(t, "", out.Dir())
}

func TestRecorderEmitsEveryWindow(t *testing.T) {
	w := testWorld(t)
	w.Spawn(world.KindEnemy, 3)
	w.Spawn(world.KindObstacle, 4)
	w.Weather.Apply(weather.Report{Condition: weather.Rain, Place: "Hanoi"})

	r := NewRecorder(4, nil, nil)
	costs := []time.Duration{100 * time.Microsecond, 200 * time.Microsecond, 300 * time.Microsecond, 400 * time.Microsecond}

	var emitted []int64
	for i, c := range costs {
		tick := int64(i + 1)
		w.Step()
		if r.Observe(tick, w, c) {
			emitted = append(emitted, tick)
		}
	}

	assert.Equal(t, []int64{4}, emitted)
	assert.Equal(t, int64(4), r.Last.Tick)
	assert.Equal(t, "Rain", r.Last.Condition)
	assert.Equal(t, 1, r.Last.LiveEnemies)
	assert.Equal(t, 1, r.Last.LiveObstacles)
	assert.Equal(t, 1, r.Last.SpawnedEnemies)
	assert.Equal(t, -8.0, r.Last.Offset)
	assert.InDelta(t, 250.0, r.Last.UpdateMeanUS, 1e-9)
	assert.Greater(t, r.Last.UpdateStdUS, 0.0)
}

func TestOutputWritesCSVAndConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	out, err := NewOutput(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, out.Dir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Weather.APIKey = "secret-key"
	require.NoError(t, out.WriteConfig(cfg))
	assert.Equal(t, "secret-key", cfg.Weather.APIKey, "caller's config is untouched")

	r := NewRecorder(2, out, nil)
	w := testWorld(t)
	for tick := int64(1); tick <= 6; tick++ {
		w.Step()
		r.Observe(tick, w, time.Millisecond)
	}
	require.NoError(t, out.Close())

	f, err := os.Open(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	defer f.Close()

	var rows []WindowStats
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, int64(2), rows[0].Tick)
	assert.Equal(t, int64(6), rows[2].Tick)
	assert.Equal(t, "Clear", rows[2].Condition)

	snapshot, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(snapshot), "secret-key")
	assert.True(t, strings.Contains(string(snapshot), redacted))

	reloaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, cfg.Enemy.Interval, reloaded.Enemy.Interval)
}
