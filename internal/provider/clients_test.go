package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yatralabs/yatra-server/internal/domain"
)

func TestWeatherClientCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Jaipur" {
			t.Errorf("Expected city query Jaipur, got %q", got)
		}
		w.Write([]byte(`{
			"name": "Jaipur",
			"sys": {"country": "IN"},
			"coord": {"lat": 26.9, "lon": 75.8},
			"main": {"temp": 31.5, "humidity": 40},
			"wind": {"speed": 3.2},
			"weather": [{"main": "Drizzle"}],
			"dt": 1700000000
		}`))
	}))
	defer srv.Close()

	client := NewWeatherClient(WeatherClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
	obs, err := client.Current(context.Background(), WeatherQuery{City: "Jaipur"})
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}

	if obs.Snapshot.TemperatureC != 31.5 {
		t.Errorf("Expected 31.5C, got %v", obs.Snapshot.TemperatureC)
	}
	if obs.Snapshot.Condition != domain.ConditionRain {
		t.Errorf("Expected drizzle to normalize to Rain, got %v", obs.Snapshot.Condition)
	}
	if obs.Coord.Lat != 26.9 || obs.City != "Jaipur" {
		t.Errorf("Expected resolved location, got %+v", obs)
	}
}

func TestWeatherClientRequiresLocation(t *testing.T) {
	client := NewWeatherClient(WeatherClientConfig{APIKey: "k", Timeout: time.Second})
	_, err := client.Current(context.Background(), WeatherQuery{})
	if !IsRejected(err) {
		t.Fatalf("Expected rejected error, got %v", err)
	}
}

func TestWeatherClientRequiresKey(t *testing.T) {
	client := NewWeatherClient(WeatherClientConfig{Timeout: time.Second})
	_, err := client.Current(context.Background(), WeatherQuery{City: "Goa"})
	if !IsRejected(err) {
		t.Fatalf("Expected rejected error without api key, got %v", err)
	}
}

func TestRoutingClientPathCost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wp := r.URL.Query().Get("waypoints"); wp == "" {
			t.Error("Expected optimizable waypoints for a 4-point path")
		}
		w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"waypoint_order": [1, 0],
				"legs": [
					{"distance": {"value": 1000}, "duration": {"value": 120}},
					{"distance": {"value": 2000}, "duration": {"value": 240}},
					{"distance": {"value": 1500}, "duration": {"value": 180}}
				]
			}]
		}`))
	}))
	defer srv.Close()

	client := NewRoutingClient(RoutingClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
	coords := []domain.Coordinate{{}, {Lat: 1}, {Lat: 2}, {Lat: 3}}
	path, err := client.PathCost(context.Background(), coords)
	if err != nil {
		t.Fatalf("PathCost failed: %v", err)
	}

	if path.TotalDistanceMeters() != 4500 {
		t.Errorf("Expected total 4500m, got %d", path.TotalDistanceMeters())
	}
	if len(path.LegDurationSeconds) != 3 || path.LegDurationSeconds[1] != 240 {
		t.Errorf("Unexpected leg durations: %v", path.LegDurationSeconds)
	}
	if len(path.WaypointOrder) != 2 || path.WaypointOrder[0] != 1 {
		t.Errorf("Unexpected waypoint order: %v", path.WaypointOrder)
	}
}

func TestRoutingClientNonOKStatusIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	}))
	defer srv.Close()

	client := NewRoutingClient(RoutingClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
	_, err := client.PathCost(context.Background(), []domain.Coordinate{{}, {Lat: 1}})
	if !IsRejected(err) {
		t.Fatalf("Expected rejected error, got %v", err)
	}
}

func TestTranslateClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		w.Write([]byte(`{"data": {"translations": [{"translatedText": "नमस्ते"}]}}`))
	}))
	defer srv.Close()

	client := NewTranslateClient(TranslateClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
	got, err := client.Translate(context.Background(), "Hello", "en", "hi")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "नमस्ते" {
		t.Errorf("Unexpected translation: %q", got)
	}
}

func TestChatClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer k" {
			t.Errorf("Expected bearer auth, got %q", auth)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "Visit Hampi in winter."}}]}`))
	}))
	defer srv.Close()

	client := NewChatClient(ChatClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})
	got, err := client.Complete(context.Background(), "system", "when should I visit Hampi?")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "Visit Hampi in winter." {
		t.Errorf("Unexpected completion: %q", got)
	}
}
