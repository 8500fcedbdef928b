// Package weather resolves place names and fetches short-term forecasts
// through the Open-Meteo web APIs.
package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// ErrCityNotFound is returned when geocoding yields no result for the
// requested place name.
var ErrCityNotFound = errors.New("city not found")

// Client calls the Open-Meteo geocoding and forecast services.
type Client struct {
	geocodingURL string
	forecastURL  string
}

// New creates a client against the public Open-Meteo endpoints.
func New() *Client {
	return &Client{
		geocodingURL: defaultGeocodingURL,
		forecastURL:  defaultForecastURL,
	}
}

// NewWithBaseURLs creates a client against custom endpoints.
func NewWithBaseURLs(geocodingURL, forecastURL string) *Client {
	return &Client{geocodingURL: geocodingURL, forecastURL: forecastURL}
}

// Location is a geocoded place.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geocodingResponse struct {
	Results []Location `json:"results"`
}

// Geocode resolves a city name to coordinates, taking the best match.
func (c *Client) Geocode(city string) (*Location, error) {
	query := url.Values{}
	query.Set("name", city)
	query.Set("count", "1")
	query.Set("language", "es")
	query.Set("format", "json")

	client := &http.Client{}
	resp, err := client.Get(c.geocodingURL + "?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to request geocoding: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var decoded geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %v", err)
	}

	if len(decoded.Results) == 0 {
		return nil, ErrCityNotFound
	}

	return &decoded.Results[0], nil
}

// Day is the forecast for one calendar day.
type Day struct {
	Date                     string
	TempMax                  float64
	TempMin                  float64
	WeatherCode              int
	PrecipitationProbability int
}

// Forecast holds the two-day outlook used by the /weather reply.
type Forecast struct {
	Today    Day
	Tomorrow Day
}

type forecastResponse struct {
	Daily struct {
		Time                        []string  `json:"time"`
		TemperatureMax              []float64 `json:"temperature_2m_max"`
		TemperatureMin              []float64 `json:"temperature_2m_min"`
		WeatherCode                 []int     `json:"weathercode"`
		PrecipitationProbabilityMax []int     `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// Forecast fetches the daily outlook for a location.
func (c *Client) Forecast(loc *Location, timezone string) (*Forecast, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%g", loc.Latitude))
	query.Set("longitude", fmt.Sprintf("%g", loc.Longitude))
	query.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode,precipitation_probability_max")
	query.Set("timezone", timezone)

	client := &http.Client{}
	resp, err := client.Get(c.forecastURL + "?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to request forecast: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast service returned status %d", resp.StatusCode)
	}

	var decoded forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %v", err)
	}

	daily := decoded.Daily
	if len(daily.Time) < 2 || len(daily.TemperatureMax) < 2 || len(daily.TemperatureMin) < 2 ||
		len(daily.WeatherCode) < 2 || len(daily.PrecipitationProbabilityMax) < 2 {
		return nil, fmt.Errorf("forecast response is missing daily data")
	}

	day := func(i int) Day {
		return Day{
			Date:                     daily.Time[i],
			TempMax:                  daily.TemperatureMax[i],
			TempMin:                  daily.TemperatureMin[i],
			WeatherCode:              daily.WeatherCode[i],
			PrecipitationProbability: daily.PrecipitationProbabilityMax[i],
		}
	}

	return &Forecast{Today: day(0), Tomorrow: day(1)}, nil
}

// weatherCodes maps WMO weather codes to Spanish descriptions.
var weatherCodes = map[int]string{
	0:  "Cielo despejado",
	1:  "Mayormente despejado",
	2:  "Parcialmente nublado",
	3:  "Nublado",
	45: "Niebla ligera",
	48: "Niebla densa",
	51: "Llovizna ligera",
	53: "Llovizna moderada",
	55: "Llovizna densa",
	61: "Lluvia ligera",
	63: "Lluvia moderada",
	65: "Lluvia densa",
	66: "Llovizna helada ligera",
	67: "Llovizna helada densa",
	71: "Nevada ligera",
	73: "Nevada moderada",
	75: "Nevada densa",
	77: "Granos de nieve",
	80: "Lluvias puntuales",
	81: "Lluvias moderadas",
	82: "Lluvias fuertes",
	85: "Nevadas ligeras",
	86: "Nevadas fuertes",
	95: "Tormenta",
	96: "Tormenta con granizo pequeño",
	99: "Tormenta con granizo",
}

// Description maps a weather code to its human description.
func Description(code int) string {
	if description, ok := weatherCodes[code]; ok {
		return description
	}
	return "Descripción no disponible"
}
