// Package enrich overlays catalog airports with values fetched from two
// public APIs: a keyed airport-metadata service and the Wikipedia summary
// endpoint for photos. Enrichment is best-effort; any failure leaves the
// catalog values in place.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lewallen4/flightplight/internal/ingestion"
	"github.com/lewallen4/flightplight/pkg/models"
)

const (
	defaultMetadataURL = "https://api.api-ninjas.com/v1/airports"
	defaultWikiURL     = "https://en.wikipedia.org/api/rest_v1"

	// Keep a polite gap between lookups; the metadata API is keyed and
	// the Wikipedia endpoint is shared public infrastructure.
	defaultLookupInterval = 200 * time.Millisecond
)

// Option configures the Enricher.
type Option func(*Enricher)

// WithMetadataURL overrides the metadata API base URL (useful for testing).
func WithMetadataURL(u string) Option {
	return func(e *Enricher) { e.metadataURL = u }
}

// WithWikiURL overrides the Wikipedia API base URL (useful for testing).
func WithWikiURL(u string) Option {
	return func(e *Enricher) { e.wikiURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(e *Enricher) { e.httpClient = hc }
}

// WithLookupInterval sets the gap between per-airport lookups.
func WithLookupInterval(d time.Duration) Option {
	return func(e *Enricher) { e.limiter = ingestion.NewRateLimiter(d) }
}

// Enricher fetches airport metadata and images.
type Enricher struct {
	apiKey      string
	metadataURL string
	wikiURL     string
	httpClient  *http.Client
	limiter     *ingestion.RateLimiter
	log         *zap.Logger
}

// New creates an enricher. An empty API key disables metadata lookups but
// image lookups still run.
func New(apiKey string, log *zap.Logger, opts ...Option) *Enricher {
	e := &Enricher{
		apiKey:      apiKey,
		metadataURL: defaultMetadataURL,
		wikiURL:     defaultWikiURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		limiter:     ingestion.NewRateLimiter(defaultLookupInterval),
		log:         log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// airportMetadata mirrors one record from the metadata API.
type airportMetadata struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// wikiSummary mirrors the fields we use from the Wikipedia summary endpoint.
type wikiSummary struct {
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage struct {
		Source string `json:"source"`
	} `json:"originalimage"`
}

// Enrich returns a copy of the airports with metadata and image fields
// overlaid where lookups succeed. The loop is sequential and rate limited;
// per-airport failures are logged and skipped.
func (e *Enricher) Enrich(ctx context.Context, airports []models.Airport) []models.Airport {
	out := make([]models.Airport, len(airports))
	copy(out, airports)

	for i := range out {
		if err := e.limiter.Wait(ctx); err != nil {
			return out
		}

		if e.apiKey != "" {
			if meta, err := e.fetchMetadata(ctx, out[i].Code); err != nil {
				e.log.Debug("metadata lookup failed",
					zap.String("airport", out[i].Code), zap.Error(err))
			} else {
				applyMetadata(&out[i], meta)
			}
		}

		if img, err := e.fetchImage(ctx, out[i].Name); err != nil {
			e.log.Debug("image lookup failed",
				zap.String("airport", out[i].Code), zap.Error(err))
		} else if img != "" {
			out[i].Image = img
		}
	}
	return out
}

// fetchMetadata queries the keyed metadata API for one IATA code.
func (e *Enricher) fetchMetadata(ctx context.Context, iata string) (airportMetadata, error) {
	u := fmt.Sprintf("%s?iata=%s", e.metadataURL, url.QueryEscape(iata))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return airportMetadata{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Api-Key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return airportMetadata{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return airportMetadata{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return airportMetadata{}, fmt.Errorf("reading body: %w", err)
	}

	var records []airportMetadata
	if err := json.Unmarshal(body, &records); err != nil {
		return airportMetadata{}, fmt.Errorf("parsing response: %w", err)
	}
	if len(records) == 0 {
		return airportMetadata{}, fmt.Errorf("no metadata for %s", iata)
	}
	return records[0], nil
}

// fetchImage queries the Wikipedia summary endpoint by page title and
// returns the best available image URL, or "" when the page has none.
func (e *Enricher) fetchImage(ctx context.Context, title string) (string, error) {
	u := fmt.Sprintf("%s/page/summary/%s", e.wikiURL, url.PathEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var summary wikiSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	if summary.OriginalImage.Source != "" {
		return summary.OriginalImage.Source, nil
	}
	return summary.Thumbnail.Source, nil
}

// applyMetadata overlays non-empty metadata fields onto the airport.
func applyMetadata(a *models.Airport, meta airportMetadata) {
	if meta.Name != "" {
		a.Name = meta.Name
	}
	if meta.Region != "" {
		a.Region = meta.Region
	}
	if lat, err := strconv.ParseFloat(meta.Latitude, 64); err == nil && lat != 0 {
		a.Lat = lat
	}
	if lon, err := strconv.ParseFloat(meta.Longitude, 64); err == nil && lon != 0 {
		a.Lon = lon
	}
}
