// Package world holds the game state and advances it one tick at a time.
// Nothing here touches the display; drawing reads the state from outside.
package world

import (
	"slices"

	"chosenoffset.com/weatherrun/internal/config"
	"chosenoffset.com/weatherrun/internal/weather"
)

// Kind identifies a transient entity collection.
type Kind int

const (
	KindEnemy Kind = iota
	KindObstacle

	kindCount
)

// Kinds lists every entity kind in spawn and draw order.
var Kinds = [kindCount]Kind{KindEnemy, KindObstacle}

func (k Kind) String() string {
	switch k {
	case KindEnemy:
		return "enemy"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Entity is an enemy or obstacle moving right to left.
type Entity struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Pixels per tick
}

// Right returns the x-coordinate of the entity's right edge.
func (e Entity) Right() float64 {
	return e.X + e.Width
}

// Character is the player-controlled figure.
type Character struct {
	X, Y          float64
	Width, Height float64
	VX            float64
	Speed         float64
}

// MoveLeft sets the velocity to the left at full speed.
func (c *Character) MoveLeft() { c.VX = -c.Speed }

// MoveRight sets the velocity to the right at full speed.
func (c *Character) MoveRight() { c.VX = c.Speed }

// Stop zeroes the velocity.
func (c *Character) Stop() { c.VX = 0 }

// KindParams describes how entities of one kind are sized and placed.
type KindParams struct {
	Width, Height float64
	Lift          float64
}

// Params are the fixed rules of the world.
type Params struct {
	GroundHeight float64
	ScrollSpeed  float64
	Character    config.CharacterConfig
	Kinds        [kindCount]KindParams
	MaxLive      int // Per kind; 0 means unbounded
}

// ParamsFromConfig extracts the world rules from the loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	p := Params{
		GroundHeight: cfg.World.GroundHeight,
		ScrollSpeed:  cfg.World.ScrollSpeed,
		Character:    cfg.Character,
		MaxLive:      cfg.Spawn.MaxLive,
	}
	p.Kinds[KindEnemy] = KindParams{Width: cfg.Enemy.Width, Height: cfg.Enemy.Height, Lift: cfg.Enemy.Lift}
	p.Kinds[KindObstacle] = KindParams{Width: cfg.Obstacle.Width, Height: cfg.Obstacle.Height, Lift: cfg.Obstacle.Lift}
	return p
}

// Stats counts lifecycle events per kind since the world was created.
type Stats struct {
	Spawned    [kindCount]int
	Culled     [kindCount]int
	Suppressed [kindCount]int
}

// World is the complete mutable game state.
type World struct {
	Width, Height float64
	Character     Character
	Offset        float64 // Ground scroll offset, always in (-Width, 0]
	Weather       weather.State
	Stats         Stats

	params   Params
	entities [kindCount][]Entity
}

// New creates a world for a viewport of the given size.
func New(p Params, width, height int) *World {
	w := &World{
		Width:  float64(width),
		Height: float64(height),
		Character: Character{
			X:      p.Character.StartX,
			Width:  p.Character.Width,
			Height: p.Character.Height,
			Speed:  p.Character.Speed,
		},
		Weather: weather.NewState(),
		params:  p,
	}
	w.Character.Y = w.restingY()
	return w
}

// Params returns the rules the world was created with.
func (w *World) Params() Params {
	return w.params
}

// GroundTop returns the y-coordinate of the top of the ground band.
func (w *World) GroundTop() float64 {
	return w.Height - w.params.GroundHeight
}

func (w *World) restingY() float64 {
	return w.Height - w.params.Character.RestOffset
}

// Resize adapts the world to a new viewport size. Live entities keep their
// height above the ground line and the character stays inside the viewport.
func (w *World) Resize(width, height int) {
	oldGround := w.GroundTop()
	w.Width = float64(width)
	w.Height = float64(height)

	shift := w.GroundTop() - oldGround
	for _, k := range Kinds {
		for i := range w.entities[k] {
			w.entities[k][i].Y += shift
		}
	}

	w.Character.Y = w.restingY()
	w.clampCharacter()
	if w.Offset <= -w.Width {
		w.Offset = 0
	}
}

// Entities returns the live entities of a kind, oldest first.
// The slice is owned by the world and valid until the next Spawn or Step.
func (w *World) Entities(k Kind) []Entity {
	return w.entities[k]
}

// Live returns the number of live entities of a kind.
func (w *World) Live(k Kind) int {
	return len(w.entities[k])
}

// Spawn appends an entity of kind k at the right edge of the viewport, resting
// on the ground line. It reports false when the kind is at its live cap.
func (w *World) Spawn(k Kind, speed float64) bool {
	if w.params.MaxLive > 0 && len(w.entities[k]) >= w.params.MaxLive {
		w.Stats.Suppressed[k]++
		return false
	}

	kp := w.params.Kinds[k]
	w.entities[k] = append(w.entities[k], Entity{
		X:      w.Width,
		Y:      w.GroundTop() - kp.Height - kp.Lift,
		Width:  kp.Width,
		Height: kp.Height,
		Speed:  speed,
	})
	w.Stats.Spawned[k]++
	return true
}

// Step advances everything by one tick: entities move left and those fully
// past the left edge are dropped, the character moves and is clamped to the
// viewport, and the ground scrolls.
func (w *World) Step() {
	for _, k := range Kinds {
		live := w.entities[k]
		for i := range live {
			live[i].X -= live[i].Speed
		}
		before := len(live)
		w.entities[k] = slices.DeleteFunc(live, func(e Entity) bool {
			return e.Right() < 0
		})
		w.Stats.Culled[k] += before - len(w.entities[k])
	}

	w.Character.X += w.Character.VX
	w.clampCharacter()

	w.Offset -= w.params.ScrollSpeed
	if w.Offset <= -w.Width {
		w.Offset = 0
	}
}

func (w *World) clampCharacter() {
	c := &w.Character
	if c.X+c.Width > w.Width {
		c.X = w.Width - c.Width
	}
	if c.X < 0 {
		c.X = 0
	}
}
