package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripwatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWeatherGetWeather(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"lat":   r.URL.Query().Get("lat"),
			"lon":   r.URL.Query().Get("lon"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Write([]byte(`{"weather":[{"main":"Rain","description":"light rain"}],"main":{"temp":17.4}}`))
	}))
	defer server.Close()

	p := NewOpenWeatherProvider(server.URL, "key123", logger.Nop())
	report, err := p.GetWeather(context.Background(), 48.2082, 16.3738)

	require.NoError(t, err)
	assert.Equal(t, "48.2082", gotQuery["lat"])
	assert.Equal(t, "16.3738", gotQuery["lon"])
	assert.Equal(t, "key123", gotQuery["appid"])
	assert.Equal(t, "metric", gotQuery["units"])

	require.NotNil(t, report)
	assert.Equal(t, "Rain", report.Condition)
	assert.Equal(t, "light rain", report.Description)
	assert.InDelta(t, 17.4, report.TemperatureC, 0.001)
	assert.True(t, report.Concerning())
}

func TestOpenWeatherGetWeatherEmptyPayloadIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather":[],"main":{"temp":20}}`))
	}))
	defer server.Close()

	p := NewOpenWeatherProvider(server.URL, "key", logger.Nop())
	report, err := p.GetWeather(context.Background(), 48.2, 16.4)

	assert.NoError(t, err)
	assert.Nil(t, report)
}

func TestOpenWeatherGetWeatherServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewOpenWeatherProvider(server.URL, "key", logger.Nop())
	report, err := p.GetWeather(context.Background(), 48.2, 16.4)

	assert.Error(t, err)
	assert.Nil(t, report)
}
