// Package assets loads the game's sprites in the background.
//
// A sprite is decoded off the game loop and published through an atomic
// flag; the first Image call after that uploads it to the render backend on
// the calling goroutine.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // PNG decoder
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/weatherrun/internal/config"
	"chosenoffset.com/weatherrun/internal/render"
)

// ErrFetch is returned when a remote sprite responds with a non-2xx status.
var ErrFetch = errors.New("sprite fetch failed")

// Sprite is one image that may or may not have finished loading.
type Sprite struct {
	Name   string
	Source string // File path or http(s) URL

	loaded  atomic.Bool
	decoded image.Image  // Set before loaded is stored
	img     render.Image // Uploaded copy, owned by the game loop
}

// NewSprite creates an unloaded sprite.
func NewSprite(name, source string) *Sprite {
	return &Sprite{Name: name, Source: source}
}

// Loaded reports whether the sprite finished decoding.
func (s *Sprite) Loaded() bool {
	return s.loaded.Load()
}

// Image returns the backend image, uploading it on first use.
// It returns nil until the sprite is loaded.
func (s *Sprite) Image(r render.Renderer) render.Image {
	if !s.loaded.Load() {
		return nil
	}
	if s.img == nil {
		s.img = r.NewImageFromImage(s.decoded)
	}
	return s.img
}

// Dispose releases the uploaded image, if any. A later Image call uploads
// again.
func (s *Sprite) Dispose() {
	if s.img != nil {
		s.img.Dispose()
		s.img = nil
	}
}

// Load reads and decodes the sprite. http may be nil for file sources.
func (s *Sprite) Load(ctx context.Context, http *resty.Client) error {
	data, err := s.read(ctx, http)
	if err != nil {
		return fmt.Errorf("read sprite %s: %w", s.Name, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode sprite %s: %w", s.Name, err)
	}

	s.decoded = img
	s.loaded.Store(true)
	return nil
}

func (s *Sprite) read(ctx context.Context, http *resty.Client) ([]byte, error) {
	if !isRemote(s.Source) {
		return os.ReadFile(s.Source)
	}
	if http == nil {
		return nil, fmt.Errorf("no http client for %s", s.Source)
	}

	resp, err := http.R().SetContext(ctx).Get(s.Source)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode())
	}
	return resp.Body(), nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Manager owns the character, enemy and obstacle sprites.
type Manager struct {
	Human    *Sprite
	Enemy    *Sprite
	Obstacle *Sprite

	http   *resty.Client
	logger *slog.Logger
}

// NewManager creates the sprites named in cfg. A nil logger uses slog.Default().
func NewManager(cfg config.AssetsConfig, http *resty.Client, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		Human:    NewSprite("human", cfg.Human),
		Enemy:    NewSprite("enemy", cfg.Enemy),
		Obstacle: NewSprite("obstacle", cfg.Obstacle),
		http:     http,
		logger:   logger,
	}
}

// Sprites returns every managed sprite.
func (m *Manager) Sprites() []*Sprite {
	return []*Sprite{m.Human, m.Enemy, m.Obstacle}
}

// Dispose releases every uploaded sprite image. Call it from the game loop's
// goroutine once drawing has stopped.
func (m *Manager) Dispose() {
	for _, s := range m.Sprites() {
		s.Dispose()
	}
}

// LoadAll loads every sprite concurrently. A failed sprite is logged and
// stays unloaded without stopping the others; the first failure is returned.
func (m *Manager) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	for _, s := range m.Sprites() {
		g.Go(func() error {
			if err := s.Load(ctx, m.http); err != nil {
				m.logger.Warn("sprite unavailable, drawing placeholder", "sprite", s.Name, "error", err)
				return err
			}
			m.logger.Debug("sprite loaded", "sprite", s.Name, "source", s.Source)
			return nil
		})
	}
	return g.Wait()
}

// Start runs LoadAll in the background. The returned channel receives its
// result and is then closed.
func (m *Manager) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- m.LoadAll(ctx)
	}()
	return done
}
