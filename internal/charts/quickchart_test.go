package charts

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func barConfig() Config {
	return Config{
		Type: "bar",
		Data: Data{
			Labels: []string{"lunes", "martes"},
			Datasets: []Dataset{{
				Label: "Puntos",
				Data:  Values([]int{3, 5}),
			}},
		},
	}
}

func TestURL(t *testing.T) {
	c := New()
	got, err := c.URL(barConfig())
	if err != nil {
		t.Fatalf("URL failed: %v", err)
	}

	if !strings.HasPrefix(got, "https://quickchart.io/chart?c=") {
		t.Errorf("URL = %q, want quickchart.io prefix", got)
	}

	// The chart config must survive the query escaping intact
	raw := strings.TrimPrefix(got, "https://quickchart.io/chart?c=")
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		t.Fatalf("failed to unescape URL payload: %v", err)
	}
	for _, fragment := range []string{`"type":"bar"`, `"labels":["lunes","martes"]`, `"data":[3,5]`} {
		if !strings.Contains(decoded, fragment) {
			t.Errorf("decoded payload missing %q:\n%s", fragment, decoded)
		}
	}
}

func TestRender(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("c") == "" {
			t.Error("request is missing the c query parameter")
		}
		w.Write(image)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	got, err := c.Render(barConfig())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(got, image) {
		t.Errorf("Render = %v, want %v", got, image)
	}
}

func TestRenderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad chart", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	if _, err := c.Render(barConfig()); err == nil {
		t.Error("Render with a 400 response did not fail")
	}
}

func TestValues(t *testing.T) {
	vals := Values([]int{1, 2})
	if len(vals) != 2 || *vals[0] != 1 || *vals[1] != 2 {
		t.Errorf("Values([1 2]) = %v", vals)
	}
}
