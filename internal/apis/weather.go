package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"nodetours/internal/models/agent_models"
)

const openWeatherEndpoint = "https://api.openweathermap.org/data/2.5/forecast"

// WeatherAPI retrieves a five-day forecast for a location.
type WeatherAPI interface {
	Forecast(ctx context.Context, location string) (agent_models.WeatherInfo, error)
	Configured() bool
}

type weatherAPI struct {
	provider   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWeatherAPI wraps OpenWeatherMap. Without an API key it runs in mock
// mode, serving a fixed forecast.
func NewWeatherAPI(provider, apiKey string, logger *slog.Logger) WeatherAPI {
	if provider == "openweathermap" && apiKey == "" {
		logger.Warn("WEATHER_API_KEY not found, falling back to mock mode")
		provider = "mock"
	}
	return &weatherAPI{
		provider:   provider,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type openWeatherResponse struct {
	List []struct {
		Main struct {
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			FeelsLike float64 `json:"feels_like"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// Configured reports whether a real provider backs this wrapper.
func (w *weatherAPI) Configured() bool {
	return w.provider == "openweathermap"
}

func (w *weatherAPI) Forecast(ctx context.Context, location string) (agent_models.WeatherInfo, error) {
	if w.provider != "openweathermap" {
		return mockForecast(location), nil
	}

	forecast, err := w.fetchForecast(ctx, location)
	if err != nil {
		w.logger.Error("weather lookup failed, using mock forecast", "location", location, "error", err)
		return mockForecast(location), nil
	}
	return forecast, nil
}

func (w *weatherAPI) fetchForecast(ctx context.Context, location string) (agent_models.WeatherInfo, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", w.apiKey)
	params.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openWeatherEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return agent_models.WeatherInfo{}, err
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return agent_models.WeatherInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return agent_models.WeatherInfo{}, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var decoded openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return agent_models.WeatherInfo{}, err
	}

	// The API provides 3-hour intervals; every 8th entry is one day.
	var daily []agent_models.DailyForecast
	for i := 0; i < len(decoded.List); i += 8 {
		entry := decoded.List[i]
		description := ""
		if len(entry.Weather) > 0 {
			description = entry.Weather[0].Description
		}
		daily = append(daily, agent_models.DailyForecast{
			Day:         len(daily) + 1,
			MinTemp:     fmt.Sprintf("%.2f°F", entry.Main.TempMin),
			MaxTemp:     fmt.Sprintf("%.2f°F", entry.Main.TempMax),
			FeelsLike:   fmt.Sprintf("%.2f°F", entry.Main.FeelsLike),
			Description: description,
			WindSpeed:   fmt.Sprintf("%.2f mph", entry.Wind.Speed),
		})
	}

	return agent_models.WeatherInfo{
		Location:        location,
		FiveDayForecast: daily,
	}, nil
}

func mockForecast(location string) agent_models.WeatherInfo {
	return agent_models.WeatherInfo{
		Location: location,
		FiveDayForecast: []agent_models.DailyForecast{
			{Day: 1, MinTemp: "59.04°F", MaxTemp: "61.83°F", FeelsLike: "59.83°F", Description: "few clouds", WindSpeed: "3.11 mph"},
			{Day: 2, MinTemp: "62.56°F", MaxTemp: "62.56°F", FeelsLike: "61.34°F", Description: "clear sky", WindSpeed: "4.03 mph"},
			{Day: 3, MinTemp: "60.73°F", MaxTemp: "60.73°F", FeelsLike: "59.32°F", Description: "few clouds", WindSpeed: "3.6 mph"},
			{Day: 4, MinTemp: "66.00°F", MaxTemp: "66.00°F", FeelsLike: "65.08°F", Description: "scattered clouds", WindSpeed: "4.79 mph"},
			{Day: 5, MinTemp: "58.48°F", MaxTemp: "58.48°F", FeelsLike: "57.31°F", Description: "overcast clouds", WindSpeed: "6.78 mph"},
		},
	}
}
