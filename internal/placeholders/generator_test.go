package placeholders

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBordered(t *testing.T) {
	fill := color.RGBA{255, 0, 255, 255}
	border := color.RGBA{10, 10, 10, 255}

	img := CreateBordered(30, 50, fill, border, 2)

	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
	assert.Equal(t, border, img.RGBAAt(0, 0))
	assert.Equal(t, border, img.RGBAAt(1, 25))
	assert.Equal(t, border, img.RGBAAt(29, 49))
	assert.Equal(t, fill, img.RGBAAt(15, 25))
	assert.Equal(t, fill, img.RGBAAt(2, 2))
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")

	paths, err := Generate(dir)
	require.NoError(t, err)
	require.Len(t, paths, len(Sprites))

	for i, s := range Sprites {
		assert.Equal(t, filepath.Join(dir, s.File), paths[i])

		f, err := os.Open(paths[i])
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err, s.File)

		assert.Equal(t, s.Width, img.Bounds().Dx(), s.File)
		assert.Equal(t, s.Height, img.Bounds().Dy(), s.File)
		r, g, b, a := img.At(s.Width/2, s.Height/2).RGBA()
		assert.Equal(t, s.Fill, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}, s.File)
	}
}

func TestDarken(t *testing.T) {
	assert.Equal(t, color.RGBA{50, 0, 100, 255}, Darken(color.RGBA{100, 0, 200, 255}, 0.5))
}
