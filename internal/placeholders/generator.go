// Package placeholders generates the stand-in sprites used until real art
// exists.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// ColorPalette defines the placeholder colours. They match the rectangles
// drawn while a sprite is still loading.
var ColorPalette = struct {
	Human    color.RGBA
	Enemy    color.RGBA
	Obstacle color.RGBA
}{
	Human:    color.RGBA{255, 0, 255, 255}, // Magenta
	Enemy:    color.RGBA{255, 0, 0, 255},   // Red
	Obstacle: color.RGBA{0, 0, 0, 255},     // Black
}

// Sprite describes one generated sprite.
type Sprite struct {
	File          string
	Width, Height int
	Fill          color.RGBA
	Border        color.RGBA
}

// Sprites lists the sprites Generate writes.
var Sprites = []Sprite{
	{File: "human.png", Width: 50, Height: 50, Fill: ColorPalette.Human, Border: Darken(ColorPalette.Human, 0.6)},
	{File: "enemy.png", Width: 40, Height: 40, Fill: ColorPalette.Enemy, Border: Darken(ColorPalette.Enemy, 0.6)},
	{File: "obstacle.png", Width: 30, Height: 50, Fill: ColorPalette.Obstacle, Border: color.RGBA{90, 90, 90, 255}},
}

// CreateSolid creates a solid-coloured image.
func CreateSolid(width, height int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBordered creates a solid image with a border of the given width.
func CreateBordered(width, height int, fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolid(width, height, fillColor)

	for i := 0; i < borderWidth; i++ {
		for x := 0; x < width; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, height-1-i, borderColor)
		}
		for y := 0; y < height; y++ {
			img.Set(i, y, borderColor)
			img.Set(width-1-i, y, borderColor)
		}
	}

	return img
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Generate writes every placeholder sprite into dir, creating it if needed.
// It returns the paths written.
func Generate(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(Sprites))
	for _, s := range Sprites {
		path := filepath.Join(dir, s.File)
		if err := SavePNG(CreateBordered(s.Width, s.Height, s.Fill, s.Border, 2), path); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
