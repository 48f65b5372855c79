// Package fares synthesizes demo airfare data. Every run regenerates all
// prices from scratch; there is no seed persistence and no relation to real
// pricing.
package fares

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lewallen4/flightplight/pkg/models"
)

// MonthsPerSheet is the number of fare entries generated per airport.
const MonthsPerSheet = 12

// Config bounds the generated prices (inclusive on both ends).
type Config struct {
	MinPrice int
	MaxPrice int
}

// DefaultConfig returns the bound used by the quick fares page.
func DefaultConfig() Config {
	return Config{MinPrice: 150, MaxPrice: 600}
}

// FullConfig returns the bound used by the enriched fares page.
func FullConfig() Config {
	return Config{MinPrice: 200, MaxPrice: 500}
}

// Option configures the Generator.
type Option func(*Generator)

// WithNow overrides the clock (useful for testing).
func WithNow(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIntN overrides the random source (useful for testing).
func WithIntN(intn func(n int) int) Option {
	return func(g *Generator) { g.intn = intn }
}

// Generator produces fare sheets for airports.
type Generator struct {
	cfg  Config
	now  func() time.Time
	intn func(n int) int
}

// New creates a generator with the given price bound.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:  cfg,
		now:  time.Now,
		intn: rand.Intn,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Sheet generates twelve sequential monthly fares for one airport, starting
// at the current month and wrapping across the year boundary.
func (g *Generator) Sheet(airport models.Airport) models.FareSheet {
	start := g.now()
	entries := make([]models.FareEntry, 0, MonthsPerSheet)
	for i := 0; i < MonthsPerSheet; i++ {
		// time.Date normalizes out-of-range months, handling the wrap.
		m := time.Date(start.Year(), start.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		entries = append(entries, models.FareEntry{
			Month: MonthLabel(m),
			Price: g.price(),
		})
	}
	return models.FareSheet{Airport: airport, Fares: entries}
}

// Sheets generates a fare sheet for every airport in order.
func (g *Generator) Sheets(airports []models.Airport) []models.FareSheet {
	sheets := make([]models.FareSheet, 0, len(airports))
	for _, a := range airports {
		sheets = append(sheets, g.Sheet(a))
	}
	return sheets
}

// price returns a uniform integer in [MinPrice, MaxPrice].
func (g *Generator) price() int {
	span := g.cfg.MaxPrice - g.cfg.MinPrice + 1
	if span <= 1 {
		return g.cfg.MinPrice
	}
	return g.cfg.MinPrice + g.intn(span)
}

// MonthLabel formats a month as zero-padded MM/YYYY.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%02d/%d", int(t.Month()), t.Year())
}
