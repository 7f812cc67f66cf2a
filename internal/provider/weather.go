package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/yatralabs/yatra-server/internal/domain"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// WeatherQuery selects the location to observe: a coordinate, or a city
// name when no coordinate is available.
type WeatherQuery struct {
	Coord *domain.Coordinate
	City  string
}

// Observation is a current-weather result together with the location the
// provider resolved it to (useful when the query was by city name).
type Observation struct {
	Snapshot domain.WeatherSnapshot
	Coord    domain.Coordinate
	City     string
	Country  string
}

// ForecastPoint is one slot of a multi-day forecast.
type ForecastPoint struct {
	At           time.Time        `json:"at"`
	TemperatureC float64          `json:"temperature_c"`
	Condition    domain.Condition `json:"condition"`
}

// WeatherClientConfig holds configuration for the weather client.
type WeatherClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// WeatherClient calls the OpenWeather current-weather and forecast APIs.
type WeatherClient struct {
	gateway
	apiKey  string
	baseURL string
}

// NewWeatherClient creates a weather client.
func NewWeatherClient(cfg WeatherClientConfig) *WeatherClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultWeatherBaseURL
	}
	return &WeatherClient{
		gateway: newGateway("weather", cfg.Timeout),
		apiKey:  cfg.APIKey,
		baseURL: base,
	}
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Dt int64 `json:"dt"`
}

// Current fetches the current weather for the queried location.
func (c *WeatherClient) Current(ctx context.Context, q WeatherQuery) (*Observation, error) {
	endpoint, err := c.buildURL("/weather", q)
	if err != nil {
		return nil, err
	}

	var resp openWeatherResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	condition := domain.ConditionOther
	if len(resp.Weather) > 0 {
		condition = domain.ParseCondition(resp.Weather[0].Main)
	}
	capturedAt := time.Now().UTC()
	if resp.Dt > 0 {
		capturedAt = time.Unix(resp.Dt, 0).UTC()
	}

	return &Observation{
		Snapshot: domain.WeatherSnapshot{
			TemperatureC: resp.Main.Temp,
			HumidityPct:  resp.Main.Humidity,
			WindSpeed:    resp.Wind.Speed,
			Condition:    condition,
			CapturedAt:   capturedAt,
		},
		Coord:   domain.Coordinate{Lat: resp.Coord.Lat, Lon: resp.Coord.Lon},
		City:    resp.Name,
		Country: resp.Sys.Country,
	}, nil
}

type openWeatherForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast fetches the 5-day forecast for the queried location.
func (c *WeatherClient) Forecast(ctx context.Context, q WeatherQuery) ([]ForecastPoint, error) {
	endpoint, err := c.buildURL("/forecast", q)
	if err != nil {
		return nil, err
	}

	var resp openWeatherForecastResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	points := make([]ForecastPoint, 0, len(resp.List))
	for _, item := range resp.List {
		condition := domain.ConditionOther
		if len(item.Weather) > 0 {
			condition = domain.ParseCondition(item.Weather[0].Main)
		}
		points = append(points, ForecastPoint{
			At:           time.Unix(item.Dt, 0).UTC(),
			TemperatureC: item.Main.Temp,
			Condition:    condition,
		})
	}
	return points, nil
}

func (c *WeatherClient) buildURL(path string, q WeatherQuery) (string, error) {
	if err := c.requireKey(c.apiKey); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	switch {
	case q.Coord != nil:
		params.Set("lat", fmt.Sprintf("%f", q.Coord.Lat))
		params.Set("lon", fmt.Sprintf("%f", q.Coord.Lon))
	case q.City != "":
		params.Set("q", q.City)
	default:
		return "", newError(KindRejected, c.name, fmt.Errorf("either coordinates or city name is required"))
	}

	return c.baseURL + path + "?" + params.Encode(), nil
}
