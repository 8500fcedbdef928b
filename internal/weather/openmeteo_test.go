package weather

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "Jaén" {
			t.Errorf("name query = %q, want Jaén", got)
		}
		if got := r.URL.Query().Get("language"); got != "es" {
			t.Errorf("language query = %q, want es", got)
		}
		fmt.Fprint(w, `{"results":[{"name":"Jaén","country":"España","latitude":37.77,"longitude":-3.79}]}`)
	}))
	defer srv.Close()

	c := NewWithBaseURLs(srv.URL, "")
	loc, err := c.Geocode("Jaén")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}

	want := &Location{Name: "Jaén", Country: "España", Latitude: 37.77, Longitude: -3.79}
	if diff := cmp.Diff(want, loc); diff != "" {
		t.Errorf("location mismatch (-want +got):\n%s", diff)
	}
}

func TestGeocodeCityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := NewWithBaseURLs(srv.URL, "")
	if _, err := c.Geocode("Nowhere"); !errors.Is(err, ErrCityNotFound) {
		t.Errorf("Geocode error = %v, want ErrCityNotFound", err)
	}
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("timezone"); got != "Europe/Madrid" {
			t.Errorf("timezone query = %q, want Europe/Madrid", got)
		}
		fmt.Fprint(w, `{"daily":{
			"time":["2025-05-06","2025-05-07"],
			"temperature_2m_max":[24.5,26],
			"temperature_2m_min":[12,13.5],
			"weathercode":[0,61],
			"precipitation_probability_max":[5,80]}}`)
	}))
	defer srv.Close()

	c := NewWithBaseURLs("", srv.URL)
	got, err := c.Forecast(&Location{Latitude: 37.77, Longitude: -3.79}, "Europe/Madrid")
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	want := &Forecast{
		Today:    Day{Date: "2025-05-06", TempMax: 24.5, TempMin: 12, WeatherCode: 0, PrecipitationProbability: 5},
		Tomorrow: Day{Date: "2025-05-07", TempMax: 26, TempMin: 13.5, WeatherCode: 61, PrecipitationProbability: 80},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("forecast mismatch (-want +got):\n%s", diff)
	}
}

func TestForecastMissingDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"daily":{"time":["2025-05-06"]}}`)
	}))
	defer srv.Close()

	c := NewWithBaseURLs("", srv.URL)
	if _, err := c.Forecast(&Location{}, "UTC"); err == nil {
		t.Error("Forecast with one day of data did not fail")
	}
}

func TestDescription(t *testing.T) {
	if got := Description(0); got != "Cielo despejado" {
		t.Errorf("Description(0) = %q", got)
	}
	if got := Description(95); got != "Tormenta" {
		t.Errorf("Description(95) = %q", got)
	}
	if got := Description(42); got != "Descripción no disponible" {
		t.Errorf("Description(42) = %q", got)
	}
}
