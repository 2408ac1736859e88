package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-card/internal/weather"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

var validate = validator.New()

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: openWeatherURL,
		client:  client,
		circuit: newBreaker("openweather"),
		now:     time.Now,
	}
}

// WithBaseURL points the provider at a different endpoint (tests, proxies).
func (p *OpenWeatherProvider) WithBaseURL(u string) *OpenWeatherProvider {
	p.baseURL = u
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// owmPayload mirrors the subset of /data/2.5/weather the card renders.
// Pointers let the validator tell a missing field from a zero value.
type owmPayload struct {
	Name *string `json:"name" validate:"required"`
	Main *struct {
		Temp     *float64 `json:"temp" validate:"required"`
		TempMin  *float64 `json:"temp_min" validate:"required"`
		TempMax  *float64 `json:"temp_max" validate:"required"`
		Pressure *int     `json:"pressure" validate:"required"`
	} `json:"main" validate:"required"`
	Wind *struct {
		Speed *float64 `json:"speed" validate:"required"`
	} `json:"wind" validate:"required"`
	Weather []struct {
		Icon        *string `json:"icon" validate:"required"`
		Main        *string `json:"main" validate:"required"`
		Description *string `json:"description" validate:"required"`
	} `json:"weather" validate:"required,min=1,dive"`
	Sys *struct {
		Sunrise *int64 `json:"sunrise" validate:"required"`
		Sunset  *int64 `json:"sunset" validate:"required"`
	} `json:"sys" validate:"required"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, city string) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, fmt.Errorf("openweather api key is not configured")
	}
	if city == "" {
		return weather.Snapshot{}, fmt.Errorf("city is required")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		if errors.Is(err, errRateLimited) {
			return weather.Snapshot{}, fmt.Errorf("%w: %v", weather.ErrQuotaExceeded, err)
		}
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return weather.Snapshot{}, fmt.Errorf("%w: %q", weather.ErrCityNotFound, city)
	case resp.StatusCode == http.StatusUnauthorized:
		return weather.Snapshot{}, weather.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return weather.Snapshot{}, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}

	var payload owmPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decode openweather response: %w", err)
	}
	if err := validate.Struct(payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("%w: %v", weather.ErrIncompletePayload, err)
	}

	cond := payload.Weather[0]
	return weather.Snapshot{
		City:        *payload.Name,
		Temperature: *payload.Main.Temp,
		TempMin:     *payload.Main.TempMin,
		TempMax:     *payload.Main.TempMax,
		Pressure:    *payload.Main.Pressure,
		WindSpeed:   *payload.Wind.Speed,
		Icon:        *cond.Icon,
		Summary:     *cond.Main,
		Description: *cond.Description,
		Sunrise:     *payload.Sys.Sunrise,
		Sunset:      *payload.Sys.Sunset,
		FetchedAt:   p.now().UTC(),
	}, nil
}
