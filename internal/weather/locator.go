package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ErrNoLocation is returned by a Locator that cannot determine a position.
var ErrNoLocation = errors.New("location unavailable")

// Locator supplies the player's coordinates.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// StaticLocator returns a fixed position, or ErrNoLocation when unset.
type StaticLocator struct {
	At *Coordinates
}

// Locate implements Locator.
func (l StaticLocator) Locate(ctx context.Context) (Coordinates, error) {
	if l.At == nil {
		return Coordinates{}, ErrNoLocation
	}
	return *l.At, nil
}

// ipPayload matches the ip-api.com JSON shape.
type ipPayload struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

// IPLocator estimates coordinates from the caller's public IP address.
type IPLocator struct {
	http     *resty.Client
	endpoint string
}

// NewIPLocator creates a locator querying an ip-api.com compatible endpoint.
func NewIPLocator(http *resty.Client, endpoint string) *IPLocator {
	return &IPLocator{http: http, endpoint: endpoint}
}

// Locate implements Locator.
func (l *IPLocator) Locate(ctx context.Context) (Coordinates, error) {
	resp, err := l.http.R().SetContext(ctx).Get(l.endpoint)
	if err != nil {
		return Coordinates{}, fmt.Errorf("locating by ip: %w", err)
	}
	if resp.IsError() {
		return Coordinates{}, fmt.Errorf("locating by ip: %w: %d", ErrBadStatus, resp.StatusCode())
	}

	var payload ipPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return Coordinates{}, fmt.Errorf("decoding location: %w: %v", ErrMalformed, err)
	}
	if payload.Status != "success" {
		return Coordinates{}, fmt.Errorf("locating by ip: %w: %s", ErrNoLocation, payload.Message)
	}

	return Coordinates{Lat: payload.Lat, Lon: payload.Lon, Place: payload.City}, nil
}
