package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrBadStatus is returned when a remote service answers with a non-2xx status.
	ErrBadStatus = errors.New("unexpected response status")

	// ErrMalformed is returned when a response body lacks the expected fields.
	ErrMalformed = errors.New("malformed response")
)

// Coordinates is a geographic position.
type Coordinates struct {
	Lat   float64
	Lon   float64
	Place string // City name when the locator knows it
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', 4, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 4, 64)
}

// currentPayload is the subset of the current-weather response we read.
type currentPayload struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Name string `json:"name"`
}

// Client queries an OpenWeatherMap-compatible current weather endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
	apiKey   string
	units    string
}

// NewClient creates a weather client. The resty client carries timeouts and
// transport settings shared with the other lookups.
func NewClient(http *resty.Client, endpoint, apiKey, units string) *Client {
	return &Client{
		http:     http,
		endpoint: endpoint,
		apiKey:   apiKey,
		units:    units,
	}
}

// Current fetches the current condition and place name at the given coordinates.
func (c *Client) Current(ctx context.Context, at Coordinates) (Report, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(at.Lat, 'f', -1, 64),
			"lon":   strconv.FormatFloat(at.Lon, 'f', -1, 64),
			"appid": c.apiKey,
			"units": c.units,
		}).
		Get(c.endpoint)
	if err != nil {
		return Report{}, fmt.Errorf("requesting weather: %w", err)
	}
	if resp.IsError() {
		return Report{}, fmt.Errorf("requesting weather: %w: %d", ErrBadStatus, resp.StatusCode())
	}

	var payload currentPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return Report{}, fmt.Errorf("decoding weather: %w: %v", ErrMalformed, err)
	}
	if len(payload.Weather) == 0 || payload.Weather[0].Main == "" {
		return Report{}, fmt.Errorf("decoding weather: %w: no weather category", ErrMalformed)
	}

	return Report{
		Condition: Condition(payload.Weather[0].Main),
		Place:     payload.Name,
	}, nil
}
