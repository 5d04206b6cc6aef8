package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/weatherrun/internal/config"
	"chosenoffset.com/weatherrun/internal/render/rendertest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 255, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, pngBytes(t, w, h), 0o644))
	return path
}

func TestSpriteLoadFromFile(t *testing.T) {
	path := writePNG(t, t.TempDir(), "human.png", 50, 50)
	s := NewSprite("human", path)
	r := rendertest.NewRenderer()

	assert.False(t, s.Loaded())
	assert.Nil(t, s.Image(r), "no image before load")

	require.NoError(t, s.Load(context.Background(), nil))
	assert.True(t, s.Loaded())

	img := s.Image(r)
	require.NotNil(t, img)
	w, h := img.Size()
	assert.Equal(t, 50, w)
	assert.Equal(t, 50, h)

	assert.Same(t, img, s.Image(r), "upload happens once")
	assert.Equal(t, 1, r.Uploads)

	s.Dispose()
	assert.True(t, img.(*rendertest.Image).Disposed)
	assert.True(t, s.Loaded(), "decoded data survives dispose")

	again := s.Image(r)
	assert.NotSame(t, img, again)
	assert.Equal(t, 2, r.Uploads)
}

func TestManagerDispose(t *testing.T) {
	dir := t.TempDir()
	cfg := config.AssetsConfig{
		Human:    writePNG(t, dir, "human.png", 50, 50),
		Enemy:    writePNG(t, dir, "enemy.png", 40, 40),
		Obstacle: filepath.Join(dir, "missing.png"),
	}
	m := NewManager(cfg, nil, nil)
	require.Error(t, m.LoadAll(context.Background()))

	r := rendertest.NewRenderer()
	human := m.Human.Image(r).(*rendertest.Image)
	assert.Nil(t, m.Obstacle.Image(r))

	m.Dispose()
	assert.True(t, human.Disposed)
	assert.Nil(t, m.Enemy.img, "never uploaded, nothing to release")
}

func TestSpriteLoadFailures(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not a png"), 0o644))

	tests := []struct {
		name   string
		source string
	}{
		{"missing file", filepath.Join(dir, "missing.png")},
		{"undecodable", garbage},
		{"remote without client", "http://example.invalid/human.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSprite("human", tt.source)
			err := s.Load(context.Background(), nil)
			require.Error(t, err)
			assert.False(t, s.Loaded())
		})
	}
}

func TestSpriteLoadFromURL(t *testing.T) {
	body := pngBytes(t, 40, 40)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/enemy.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client := resty.New()

	ok := NewSprite("enemy", srv.URL+"/enemy.png")
	require.NoError(t, ok.Load(context.Background(), client))
	assert.True(t, ok.Loaded())

	missing := NewSprite("obstacle", srv.URL+"/obstacle.png")
	err := missing.Load(context.Background(), client)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.False(t, missing.Loaded())
}

func TestManagerLoadAllToleratesFailures(t *testing.T) {
	dir := t.TempDir()
	cfg := config.AssetsConfig{
		Human:    writePNG(t, dir, "human.png", 50, 50),
		Enemy:    filepath.Join(dir, "enemy.png"), // Never written
		Obstacle: writePNG(t, dir, "obstacle.png", 30, 50),
	}
	m := NewManager(cfg, nil, nil)

	err := m.LoadAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.True(t, m.Human.Loaded())
	assert.False(t, m.Enemy.Loaded())
	assert.True(t, m.Obstacle.Loaded())
}

func TestManagerStart(t *testing.T) {
	dir := t.TempDir()
	cfg := config.AssetsConfig{
		Human:    writePNG(t, dir, "human.png", 50, 50),
		Enemy:    writePNG(t, dir, "enemy.png", 40, 40),
		Obstacle: writePNG(t, dir, "obstacle.png", 30, 50),
	}
	m := NewManager(cfg, nil, nil)

	done := m.Start(context.Background())
	require.NoError(t, <-done)
	_, open := <-done
	assert.False(t, open)

	for _, s := range m.Sprites() {
		assert.True(t, s.Loaded(), s.Name)
	}
}
