package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLufthansaFetchNormalizesFlight(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"FlightStatusResource":{"Flights":{"Flight":[{
			"Departure":{
				"AirportCode":"FRA",
				"ScheduledTimeUTC":{"DateTime":"2026-08-25T11:30Z"},
				"EstimatedTimeUTC":{"DateTime":"2026-08-25T11:50Z"},
				"Terminal":{"Name":1,"Gate":"A52"},
				"TimeStatus":{"Code":"DL"}
			},
			"Arrival":{"AirportCode":"VIE","Terminal":{"Name":"3"}},
			"FlightStatus":{"Code":"NA"}
		}]}}}`))
	}))
	defer server.Close()

	p := NewLufthansaProvider(server.URL, server.Client(), logger.Nop())
	snapshot, err := p.Fetch(context.Background(), "LH454", "2026-08-25")

	require.NoError(t, err)
	assert.Equal(t, "/operations/flightstatus/LH454/2026-08-25", gotPath)
	assert.Equal(t, "lufthansa", snapshot.Provider)

	// NA plus a departure TimeStatus of DL is a late scheduled flight.
	assert.Equal(t, entity.FlightDelayed, snapshot.Status)
	assert.Equal(t, 20, snapshot.DelayMinutes)

	// Terminal names arrive as strings or numbers.
	assert.Equal(t, "1", snapshot.Departure.Terminal)
	assert.Equal(t, "3", snapshot.Arrival.Terminal)
	assert.Equal(t, "A52", snapshot.Departure.Gate)
}

func TestLufthansaFetchCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"FlightStatusResource":{"Flights":{"Flight":[{
			"Departure":{"AirportCode":"FRA"},
			"Arrival":{"AirportCode":"VIE"},
			"FlightStatus":{"Code":"CD"}
		}]}}}`))
	}))
	defer server.Close()

	p := NewLufthansaProvider(server.URL, server.Client(), logger.Nop())
	snapshot, err := p.Fetch(context.Background(), "LH454", "2026-08-25")

	require.NoError(t, err)
	assert.Equal(t, entity.FlightCancelled, snapshot.Status)
}

func TestLufthansaFetchTranslatesMisses(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"no flights": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"FlightStatusResource":{"Flights":{"Flight":[]}}}`))
		},
		"unknown code": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"FlightStatusResource":{"Flights":{"Flight":[{"FlightStatus":{"Code":"ZZ"}}]}}}`))
		},
		"http 404": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()

			p := NewLufthansaProvider(server.URL, server.Client(), logger.Nop())
			_, err := p.Fetch(context.Background(), "LH454", "2026-08-25")
			assert.ErrorIs(t, err, repository.ErrStatusNotFound)
		})
	}
}
