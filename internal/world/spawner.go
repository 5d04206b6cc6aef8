package world

import (
	"math/rand/v2"
	"time"

	"chosenoffset.com/weatherrun/internal/config"
)

// SpawnRule is the cadence and speed of one entity kind.
type SpawnRule struct {
	Interval    time.Duration
	BaseSpeed   float64
	SpeedJitter float64 // Uniform addend in [0, SpeedJitter)
}

// SpawnRulesFromConfig extracts spawn rules for every kind.
func SpawnRulesFromConfig(cfg *config.Config) [kindCount]SpawnRule {
	var rules [kindCount]SpawnRule
	rules[KindEnemy] = SpawnRule{Interval: cfg.Enemy.Interval, BaseSpeed: cfg.Enemy.BaseSpeed, SpeedJitter: cfg.Enemy.SpeedJitter}
	rules[KindObstacle] = SpawnRule{Interval: cfg.Obstacle.Interval, BaseSpeed: cfg.Obstacle.BaseSpeed, SpeedJitter: cfg.Obstacle.SpeedJitter}
	return rules
}

// Spawner emits entities on fixed intervals of simulation time. Time only
// advances when the game loop ticks, so a paused loop builds no backlog.
type Spawner struct {
	rules   [kindCount]SpawnRule
	rng     *rand.Rand
	elapsed time.Duration
	next    [kindCount]time.Duration
	started bool
}

// NewSpawner creates a spawner. rng drives speed jitter and must not be nil.
func NewSpawner(rules [kindCount]SpawnRule, rng *rand.Rand) *Spawner {
	return &Spawner{rules: rules, rng: rng}
}

// Elapsed returns the simulation time seen so far.
func (s *Spawner) Elapsed() time.Duration {
	return s.elapsed
}

// Advance moves the simulation clock forward by dt and spawns every entity
// that came due. The first call spawns one of each kind before advancing.
// It returns the number of spawn ticks processed, including suppressed ones.
func (s *Spawner) Advance(w *World, dt time.Duration) int {
	ticks := 0
	if !s.started {
		for _, k := range Kinds {
			s.spawn(w, k)
			s.next[k] = s.rules[k].Interval
			ticks++
		}
		s.started = true
	}

	s.elapsed += dt
	for _, k := range Kinds {
		if s.rules[k].Interval <= 0 {
			continue
		}
		for s.elapsed >= s.next[k] {
			s.spawn(w, k)
			s.next[k] += s.rules[k].Interval
			ticks++
		}
	}
	return ticks
}

func (s *Spawner) spawn(w *World, k Kind) {
	rule := s.rules[k]
	speed := rule.BaseSpeed
	if rule.SpeedJitter > 0 {
		speed += s.rng.Float64() * rule.SpeedJitter
	}
	w.Spawn(k, speed)
}
