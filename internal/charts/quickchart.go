// Package charts builds chart.js configurations and asks the QuickChart
// web service to rasterize them into PNG images.
package charts

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://quickchart.io/chart"

// Dataset is one data series of a chart.
type Dataset struct {
	Type            string `json:"type,omitempty"`
	Label           string `json:"label"`
	Data            []*int `json:"data"`
	Fill            *bool  `json:"fill,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
	BorderWidth     int    `json:"borderWidth,omitempty"`
}

// Data holds the labels and series of a chart.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Title is the chart title plugin configuration.
type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// Plugins carries the chart.js plugin options in use.
type Plugins struct {
	Title *Title `json:"title,omitempty"`
}

// Scale configures one chart axis.
type Scale struct {
	BeginAtZero bool `json:"beginAtZero,omitempty"`
}

// Options are the chart.js top-level options.
type Options struct {
	Responsive bool             `json:"responsive,omitempty"`
	Plugins    *Plugins         `json:"plugins,omitempty"`
	Scales     map[string]Scale `json:"scales,omitempty"`
}

// Config is a chart.js chart description.
type Config struct {
	Type    string   `json:"type"`
	Data    Data     `json:"data"`
	Options *Options `json:"options,omitempty"`
}

// Values wraps plain counts as a dataset series.
func Values(counts []int) []*int {
	data := make([]*int, len(counts))
	for i := range counts {
		v := counts[i]
		data[i] = &v
	}
	return data
}

// Bool returns a pointer for optional boolean fields.
func Bool(v bool) *bool {
	return &v
}

// Client renders chart configurations through the QuickChart service.
type Client struct {
	baseURL string
}

// New creates a client against the public QuickChart endpoint.
func New() *Client {
	return &Client{baseURL: defaultBaseURL}
}

// NewWithBaseURL creates a client against a custom endpoint.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

// URL returns the rendering URL for a chart configuration.
func (c *Client) URL(cfg Config) (string, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chart config: %v", err)
	}
	return c.baseURL + "?c=" + url.QueryEscape(string(payload)), nil
}

// Render asks the service to rasterize the chart and returns the image
// bytes.
func (c *Client) Render(cfg Config) ([]byte, error) {
	chartURL, err := c.URL(cfg)
	if err != nil {
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Get(chartURL)
	if err != nil {
		return nil, fmt.Errorf("failed to request chart: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart service returned status %d", resp.StatusCode)
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart image: %v", err)
	}

	return image, nil
}
