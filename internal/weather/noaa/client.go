package noaa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"fogcast/internal/weather"
)

// BaseURL is the production National Weather Service API endpoint.
const BaseURL = "https://api.weather.gov"

const userAgent = "(fogcast, weather-report-bot)"

// Error kinds surfaced by Fetch. Callers distinguish them with errors.Is;
// all of them abort the whole fetch.
var (
	// ErrTransport covers network-level failures before a response arrived.
	ErrTransport = errors.New("noaa: transport failure")
	// ErrStatus covers non-2xx responses from the upstream API.
	ErrStatus = errors.New("noaa: unexpected status")
	// ErrMalformed covers structurally broken responses: non-JSON bodies,
	// missing chain URLs, an empty station list.
	ErrMalformed = errors.New("noaa: malformed response")
)

// Client fetches weather data from the NWS API. The chain is three hops:
// the points resource for a coordinate pair links to a forecast resource
// and a station list, and the first listed station provides the latest
// observation.
type Client struct {
	logger  *zap.Logger
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client using the given HTTP client for all outbound
// calls. The NWS asks unauthenticated clients to keep request rates modest,
// so all four calls of a fetch share one limiter.
func NewClient(logger *zap.Logger, baseURL string, client *http.Client) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(2), 2),
	}
}

type quantity struct {
	Value *float64 `json:"value"`
}

type pointsPayload struct {
	Properties struct {
		Forecast            string `json:"forecast"`
		ObservationStations string `json:"observationStations"`
		RelativeLocation    struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

type forecastPayload struct {
	Properties struct {
		Periods []weather.ForecastPeriod `json:"periods"`
	} `json:"properties"`
}

type stationsPayload struct {
	Features []struct {
		ID string `json:"id"`
	} `json:"features"`
}

type observationPayload struct {
	Properties struct {
		Timestamp        string   `json:"timestamp"`
		TextDescription  string   `json:"textDescription"`
		Temperature      quantity `json:"temperature"`
		RelativeHumidity quantity `json:"relativeHumidity"`
		WindSpeed        quantity `json:"windSpeed"`
		WindDirection    quantity `json:"windDirection"`
	} `json:"properties"`
}

// Fetch resolves the coordinate pair to a grid point and assembles a
// Snapshot from the forecast and the nearest station's latest observation.
// Structural problems abort the whole fetch; missing leaf values in the
// observation itself are carried through as nil instead.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
	pointURL := fmt.Sprintf("%s/points/%g,%g", c.baseURL, lat, lon)

	var points pointsPayload
	if err := c.getJSON(ctx, pointURL, &points); err != nil {
		return weather.Snapshot{}, err
	}

	forecastURL := points.Properties.Forecast
	stationsURL := points.Properties.ObservationStations
	if forecastURL == "" || stationsURL == "" {
		return weather.Snapshot{}, fmt.Errorf("%w: points response missing forecast or station URLs", ErrMalformed)
	}

	var forecast forecastPayload
	if err := c.getJSON(ctx, forecastURL, &forecast); err != nil {
		return weather.Snapshot{}, err
	}

	periods := forecast.Properties.Periods
	if len(periods) == 0 {
		return weather.Snapshot{}, fmt.Errorf("%w: forecast response missing periods", ErrMalformed)
	}
	// Only today and tonight are kept.
	if len(periods) > 2 {
		periods = periods[:2]
	}

	var stations stationsPayload
	if err := c.getJSON(ctx, stationsURL, &stations); err != nil {
		return weather.Snapshot{}, err
	}
	if len(stations.Features) == 0 {
		return weather.Snapshot{}, fmt.Errorf("%w: empty observation station list", ErrMalformed)
	}

	observationURL := stations.Features[0].ID + "/observations/latest"
	var obs observationPayload
	if err := c.getJSON(ctx, observationURL, &obs); err != nil {
		return weather.Snapshot{}, err
	}

	c.logger.Debug("assembled weather snapshot",
		zap.String("station", stations.Features[0].ID),
		zap.Int("forecast_periods", len(periods)),
	)

	return weather.Snapshot{
		Location: weather.Location{
			Name:      points.Properties.RelativeLocation.Properties.City,
			State:     points.Properties.RelativeLocation.Properties.State,
			Latitude:  lat,
			Longitude: lon,
		},
		CurrentConditions: weather.CurrentConditions{
			Timestamp:     obs.Properties.Timestamp,
			TemperatureF:  weather.CToF(obs.Properties.Temperature.Value),
			TemperatureC:  obs.Properties.Temperature.Value,
			Humidity:      obs.Properties.RelativeHumidity.Value,
			WindSpeedMPH:  weather.MSToMPH(obs.Properties.WindSpeed.Value),
			WindDirection: obs.Properties.WindDirection.Value,
			Description:   obs.Properties.TextDescription,
		},
		Forecast: periods,
	}, nil
}

// getJSON performs one rate-limited GET against the API and decodes the
// body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching", zap.String("url", url))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d from %s", ErrStatus, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
