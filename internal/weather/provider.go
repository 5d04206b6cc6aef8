package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"chosenoffset.com/weatherrun/internal/config"
)

// Provider chains a Locator and a Client into a single lookup that never fails:
// every error is logged and reported as Clear.
type Provider struct {
	locator  Locator
	client   *Client
	fallback Coordinates
	logger   *slog.Logger
}

// NewProvider creates a provider. A nil logger uses slog.Default().
func NewProvider(locator Locator, client *Client, fallback Coordinates, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		locator:  locator,
		client:   client,
		fallback: fallback,
		logger:   logger,
	}
}

// NewProviderFromConfig wires the locator and client described by cfg.
func NewProviderFromConfig(cfg config.WeatherConfig, logger *slog.Logger) *Provider {
	http := NewHTTPClient(cfg.Timeout)
	fallback := Coordinates{Lat: cfg.DefaultLat, Lon: cfg.DefaultLon}

	var locator Locator
	switch cfg.Locate {
	case config.LocateIP:
		locator = NewIPLocator(http, cfg.IPEndpoint)
	default:
		locator = StaticLocator{At: &fallback}
	}

	return NewProvider(locator, NewClient(http, cfg.Endpoint, cfg.APIKey, cfg.Units), fallback, logger)
}

// NewHTTPClient returns the resty client shared by the weather lookups.
func NewHTTPClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
}

// Resolve locates the player, falling back to the default coordinates, then
// fetches the current weather there.
func (p *Provider) Resolve(ctx context.Context) Report {
	at, err := p.locator.Locate(ctx)
	if err != nil {
		p.logger.Warn("location lookup failed, using default coordinates",
			"error", err,
			"fallback", p.fallback.String(),
		)
		at = p.fallback
	} else {
		p.logger.Info("player located", "coords", at.String())
	}

	report, err := p.client.Current(ctx, at)
	if err != nil {
		p.logger.Warn("weather lookup failed", "error", err, "coords", at.String())
		return Report{Condition: Clear, Err: err}
	}

	if report.Place == "" {
		report.Place = at.Place
	}
	p.logger.Info("weather resolved", "condition", string(report.Condition), "place", report.Place)
	return report
}

// Start resolves in the background. The returned channel yields exactly one
// report and is then closed.
func (p *Provider) Start(ctx context.Context) <-chan Report {
	ch := make(chan Report, 1)
	go func() {
		defer close(ch)
		ch <- p.Resolve(ctx)
	}()
	return ch
}
