// Package render builds the static HTML pages. Each page is self-contained:
// Leaflet assets come from a CDN, the data payload is embedded as JSON in a
// non-executing script block, and a small client-side script places markers
// and popups in the browser.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/lewallen4/flightplight/pkg/models"
)

// MaxErrorLines caps how much of a failed upstream response is echoed into
// the degraded page.
const MaxErrorLines = 200

const timestampLayout = "2006-01-02 15:04:05 MST"

// Renderer renders the flight, fare, and error pages.
type Renderer struct {
	flights *template.Template
	fares   *template.Template
	errPage *template.Template
}

// New creates a renderer with all templates parsed.
func New() *Renderer {
	return &Renderer{
		flights: template.Must(template.New("flights").Parse(flightsTemplate)),
		fares:   template.Must(template.New("fares").Parse(faresTemplate)),
		errPage: template.Must(template.New("error").Parse(errorTemplate)),
	}
}

type payloadPage struct {
	GeneratedAt string
	Count       int
	Payload     template.JS
}

type errorPage struct {
	GeneratedAt string
	StatusCode  int
	Lines       []string
}

// FlightsPage renders the live flight map with the given states embedded.
func (r *Renderer) FlightsPage(states []models.FlightState, generatedAt time.Time) ([]byte, error) {
	payload, err := marshalPayload(states)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = r.flights.Execute(&buf, payloadPage{
		GeneratedAt: generatedAt.UTC().Format(timestampLayout),
		Count:       len(states),
		Payload:     payload,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering flights page: %w", err)
	}
	return buf.Bytes(), nil
}

// FaresPage renders the airfare map with the given fare sheets embedded.
func (r *Renderer) FaresPage(sheets []models.FareSheet, generatedAt time.Time) ([]byte, error) {
	payload, err := marshalPayload(sheets)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = r.fares.Execute(&buf, payloadPage{
		GeneratedAt: generatedAt.UTC().Format(timestampLayout),
		Count:       len(sheets),
		Payload:     payload,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering fares page: %w", err)
	}
	return buf.Bytes(), nil
}

// ErrorPage renders the degraded page for a failed upstream fetch. The body
// is HTML-escaped by the template and truncated to MaxErrorLines lines. A
// status code of 0 means the request never produced a response.
func (r *Renderer) ErrorPage(statusCode int, body []byte, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := r.errPage.Execute(&buf, errorPage{
		GeneratedAt: generatedAt.UTC().Format(timestampLayout),
		StatusCode:  statusCode,
		Lines:       BodyExcerpt(body, MaxErrorLines),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering error page: %w", err)
	}
	return buf.Bytes(), nil
}

// BodyExcerpt splits a raw response body into at most maxLines lines.
func BodyExcerpt(body []byte, maxLines int) []string {
	if len(body) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// marshalPayload encodes the page payload. encoding/json escapes angle
// brackets inside strings, so a literal close-tag sequence from upstream
// content can never terminate the embedding script block early.
func marshalPayload(v interface{}) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	return template.JS(data), nil
}
