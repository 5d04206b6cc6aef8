package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/weatherrun/internal/assets"
	"chosenoffset.com/weatherrun/internal/render"
	"chosenoffset.com/weatherrun/internal/weather"
	"chosenoffset.com/weatherrun/internal/world"
)

// Scene colours.
var (
	SkyRain  = color.RGBA{0x5F, 0x9E, 0xA0, 0xFF}
	SkySnow  = color.RGBA{0xFF, 0xFA, 0xFA, 0xFF}
	SkyClear = color.RGBA{0x87, 0xCE, 0xEB, 0xFF}

	GroundColor   = color.RGBA{0x65, 0x43, 0x21, 0xFF}
	HumanColor    = color.RGBA{0xFF, 0x00, 0xFF, 0xFF}
	EnemyColor    = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	ObstacleColor = color.RGBA{0x00, 0x00, 0x00, 0xFF}

	overlayColor = color.RGBA{255, 255, 255, 255}
)

// SkyColor returns the sky fill for a weather condition. Only Rain and Snow
// are distinguished.
func SkyColor(c weather.Condition) color.RGBA {
	switch c {
	case weather.Rain:
		return SkyRain
	case weather.Snow:
		return SkySnow
	default:
		return SkyClear
	}
}

// Scene draws a world. It never mutates the world.
type Scene struct {
	Renderer render.Renderer
	Sprites  *assets.Manager // May be nil: everything draws as placeholders

	ShowPlace bool
	Debug     bool
}

// Draw renders the world back to front: sky, ground, character, entities,
// overlays.
func (s *Scene) Draw(screen render.Image, w *world.World) {
	screen.Clear()
	screen.Fill(SkyColor(w.Weather.Condition))

	s.drawGround(screen, w)

	human, enemy, obstacle := s.sprites()

	c := w.Character
	s.drawBox(screen, human, c.X, c.Y, c.Width, c.Height, HumanColor)

	for _, e := range w.Entities(world.KindEnemy) {
		s.drawBox(screen, enemy, e.X, e.Y, e.Width, e.Height, EnemyColor)
	}
	for _, e := range w.Entities(world.KindObstacle) {
		s.drawBox(screen, obstacle, e.X, e.Y, e.Width, e.Height, ObstacleColor)
	}

	s.drawOverlay(screen, w)
}

// The band is drawn twice, one viewport apart, so the wrap is seamless.
func (s *Scene) drawGround(screen render.Image, w *world.World) {
	top := float32(w.GroundTop())
	width := float32(w.Width)
	height := float32(w.Params().GroundHeight)
	x := float32(w.Offset)

	s.Renderer.FillRect(screen, x, top, width, height, GroundColor)
	s.Renderer.FillRect(screen, x+width, top, width, height, GroundColor)
}

func (s *Scene) sprites() (human, enemy, obstacle *assets.Sprite) {
	if s.Sprites == nil {
		return nil, nil, nil
	}
	return s.Sprites.Human, s.Sprites.Enemy, s.Sprites.Obstacle
}

// drawBox draws the sprite stretched to the box, or a solid rectangle while
// the sprite is unavailable.
func (s *Scene) drawBox(screen render.Image, sprite *assets.Sprite, x, y, width, height float64, fallback color.Color) {
	var img render.Image
	if sprite != nil {
		img = sprite.Image(s.Renderer)
	}
	if img == nil {
		s.Renderer.FillRect(screen, float32(x), float32(y), float32(width), float32(height), fallback)
		return
	}

	iw, ih := img.Size()
	geoM := s.Renderer.NewGeoM()
	if iw > 0 && ih > 0 {
		geoM.Scale(width/float64(iw), height/float64(ih))
	}
	geoM.Translate(x, y)
	screen.DrawImage(img, &render.DrawImageOptions{GeoM: geoM})
}

func (s *Scene) drawOverlay(screen render.Image, w *world.World) {
	y := 8
	if s.ShowPlace {
		text := fmt.Sprintf("%s: %s", w.Weather.Place, w.Weather.Condition)
		s.Renderer.DrawText(screen, text, 8, y, overlayColor)
		_, h := s.Renderer.MeasureText(text)
		y += h
	}
	if s.Debug {
		text := fmt.Sprintf("enemies %d  obstacles %d  suppressed %d/%d  offset %.0f",
			w.Live(world.KindEnemy), w.Live(world.KindObstacle),
			w.Stats.Suppressed[world.KindEnemy], w.Stats.Suppressed[world.KindObstacle],
			w.Offset)
		s.Renderer.DrawText(screen, text, 8, y, overlayColor)
	}
}
