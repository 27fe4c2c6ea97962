package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

const DefaultWeatherBaseURL = "https://api.open-meteo.com/v1/forecast"

type coordinates struct {
	name     string
	lat, lon float64
}

// Matched in order by case-insensitive containment in the requested city.
var knownCoordinates = []coordinates{
	{name: "Delhi", lat: 28.6139, lon: 77.2090},
	{name: "Goa", lat: 15.2993, lon: 74.1240},
	{name: "Mumbai", lat: 19.0760, lon: 72.8777},
	{name: "Kolkata", lat: 22.5726, lon: 88.3639},
	{name: "Bangalore", lat: 12.9716, lon: 77.5946},
}

var weatherCodes = map[int]string{
	0:  "Clear Sky",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	45: "Fog",
	61: "Rain",
}

type openMeteoResponse struct {
	Daily struct {
		Time           []string  `json:"time"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		WeatherCode    []int     `json:"weather_code"`
	} `json:"daily"`
}

// WeatherProvider looks up a short daily forecast from Open-Meteo.
type WeatherProvider struct {
	baseURL    string
	days       int
	httpClient *http.Client
}

func NewWeatherProvider(baseURL string, timeout time.Duration, days int) *WeatherProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherBaseURL
	}
	if days <= 0 {
		days = 3
	}
	return &WeatherProvider{
		baseURL: baseURL,
		days:    days,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Forecast never fails: lookup problems are reported in the record's Error field.
func (p *WeatherProvider) Forecast(ctx context.Context, city string) types.WeatherRecord {
	rec := types.WeatherRecord{City: city, Forecast: []string{}}

	coords, ok := lookupCoordinates(city)
	if !ok {
		rec.Error = fmt.Sprintf("Coordinates not found for %s. Using mock data.", city)
		return rec
	}

	forecast, err := p.fetch(ctx, coords)
	if err != nil {
		rec.Error = "API Error: " + err.Error()
		return rec
	}
	rec.Forecast = forecast
	return rec
}

func (p *WeatherProvider) fetch(ctx context.Context, c coordinates) ([]string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(c.lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(c.lon, 'f', -1, 64))
	q.Set("daily", "temperature_2m_max,weather_code")
	q.Set("timezone", "auto")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("forecast service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	n := min(p.days, len(payload.Daily.TemperatureMax), len(payload.Daily.WeatherCode))
	forecast := make([]string, 0, n)
	for i := 0; i < n; i++ {
		forecast = append(forecast, fmt.Sprintf("Day %d: %s (%.1f°C)",
			i+1, describeWeatherCode(payload.Daily.WeatherCode[i]), payload.Daily.TemperatureMax[i]))
	}
	return forecast, nil
}

func lookupCoordinates(city string) (coordinates, bool) {
	needle := strings.ToLower(city)
	for _, c := range knownCoordinates {
		if strings.Contains(needle, strings.ToLower(c.name)) {
			return c, true
		}
	}
	return coordinates{}, false
}

func describeWeatherCode(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return "Variable"
}
