package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-card/internal/weather"
)

const puneBody = `{
  "name": "Pune",
  "main": {"temp": 27.3, "temp_min": 25.1, "temp_max": 29.8, "pressure": 1009, "humidity": 40},
  "wind": {"speed": 0},
  "weather": [{"id": 801, "icon": "02d", "main": "Clouds", "description": "few clouds"}],
  "sys": {"sunrise": 1700000000, "sunset": 1700030000}
}`

func newOpenWeatherTestServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		assert.Equal(t, "Pune", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenWeatherFetch(t *testing.T) {
	srv := newOpenWeatherTestServer(t, http.StatusOK, puneBody, nil)
	p := NewOpenWeatherProvider(srv.Client(), "secret").WithBaseURL(srv.URL)

	snap, err := p.Fetch(context.Background(), "Pune")
	require.NoError(t, err)

	assert.Equal(t, "Pune", snap.City)
	assert.Equal(t, 27.3, snap.Temperature)
	assert.Equal(t, 25.1, snap.TempMin)
	assert.Equal(t, 29.8, snap.TempMax)
	assert.Equal(t, 1009, snap.Pressure)
	assert.Equal(t, 0.0, snap.WindSpeed)
	assert.Equal(t, "02d", snap.Icon)
	assert.Equal(t, "Clouds", snap.Summary)
	assert.Equal(t, "few clouds", snap.Description)
	assert.Equal(t, int64(1700000000), snap.Sunrise)
	assert.Equal(t, int64(1700030000), snap.Sunset)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestOpenWeatherFetchMissingFields(t *testing.T) {
	bodies := map[string]string{
		"no sys":      `{"name":"Pune","main":{"temp":1,"temp_min":1,"temp_max":1,"pressure":1},"wind":{"speed":1},"weather":[{"icon":"01d","main":"Clear","description":"clear"}]}`,
		"no sunset":   `{"name":"Pune","main":{"temp":1,"temp_min":1,"temp_max":1,"pressure":1},"wind":{"speed":1},"weather":[{"icon":"01d","main":"Clear","description":"clear"}],"sys":{"sunrise":1}}`,
		"no weather":  `{"name":"Pune","main":{"temp":1,"temp_min":1,"temp_max":1,"pressure":1},"wind":{"speed":1},"weather":[],"sys":{"sunrise":1,"sunset":2}}`,
		"no icon":     `{"name":"Pune","main":{"temp":1,"temp_min":1,"temp_max":1,"pressure":1},"wind":{"speed":1},"weather":[{"main":"Clear","description":"clear"}],"sys":{"sunrise":1,"sunset":2}}`,
		"no pressure": `{"name":"Pune","main":{"temp":1,"temp_min":1,"temp_max":1},"wind":{"speed":1},"weather":[{"icon":"01d","main":"Clear","description":"clear"}],"sys":{"sunrise":1,"sunset":2}}`,
		"no wind":     `{"name":"Pune","main":{"temp":1,"temp_min":1,"temp_max":1,"pressure":1},"weather":[{"icon":"01d","main":"Clear","description":"clear"}],"sys":{"sunrise":1,"sunset":2}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := newOpenWeatherTestServer(t, http.StatusOK, body, nil)
			p := NewOpenWeatherProvider(srv.Client(), "secret").WithBaseURL(srv.URL)

			_, err := p.Fetch(context.Background(), "Pune")
			assert.ErrorIs(t, err, weather.ErrIncompletePayload)
		})
	}
}

func TestOpenWeatherFetchStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, weather.ErrCityNotFound},
		{http.StatusUnauthorized, weather.ErrUnauthorized},
		{http.StatusTooManyRequests, weather.ErrQuotaExceeded},
		{http.StatusInternalServerError, errServerError},
		{http.StatusTeapot, errUnexpected},
	}

	for _, tc := range cases {
		srv := newOpenWeatherTestServer(t, tc.status, `{"cod":"x","message":"nope"}`, nil)
		p := NewOpenWeatherProvider(srv.Client(), "secret").WithBaseURL(srv.URL)

		_, err := p.Fetch(context.Background(), "Pune")
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestOpenWeatherFetchWithoutKey(t *testing.T) {
	var calls int32
	srv := newOpenWeatherTestServer(t, http.StatusOK, puneBody, &calls)
	p := NewOpenWeatherProvider(srv.Client(), "").WithBaseURL(srv.URL)

	_, err := p.Fetch(context.Background(), "Pune")
	require.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestOpenWeatherNoRetryAndBreakerOpens(t *testing.T) {
	var calls int32
	srv := newOpenWeatherTestServer(t, http.StatusBadGateway, "", &calls)
	p := NewOpenWeatherProvider(srv.Client(), "secret").WithBaseURL(srv.URL)

	_, err := p.Fetch(context.Background(), "Pune")
	require.ErrorIs(t, err, errServerError)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// gobreaker's default policy trips after more than five consecutive failures.
	for i := 0; i < 5; i++ {
		_, _ = p.Fetch(context.Background(), "Pune")
	}
	_, err = p.Fetch(context.Background(), "Pune")
	assert.ErrorIs(t, err, errCircuitOpen)
	assert.EqualValues(t, 6, atomic.LoadInt32(&calls))
}

func TestOpenWeatherUnknownCityDoesNotTripBreaker(t *testing.T) {
	var calls int32
	srv := newOpenWeatherTestServer(t, http.StatusNotFound, `{"cod":"404"}`, &calls)
	p := NewOpenWeatherProvider(srv.Client(), "secret").WithBaseURL(srv.URL)

	for i := 0; i < 10; i++ {
		_, err := p.Fetch(context.Background(), "Pune")
		assert.ErrorIs(t, err, weather.ErrCityNotFound)
	}
	assert.EqualValues(t, 10, atomic.LoadInt32(&calls))
}
