package services

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"proptoken/internal/analytics"
)

const (
	historyProperties = 20
	historyStartYear  = 2020
	historyEndYear    = 2024
)

// marketDataService generates the synthetic monthly return series the
// analytics pipeline runs on. Nothing is persisted; each report session
// gets a fresh draw.
type marketDataService struct {
	rng *rand.Rand
}

// NewMarketDataService creates a new MarketDataServicer backed by the
// given random source. Inject a seeded source for reproducible series.
func NewMarketDataService(rng *rand.Rand) MarketDataServicer {
	return &marketDataService{rng: rng}
}

// GenerateHistory produces the default window: sixty month-end
// observations for each of twenty synthetic properties.
func (s *marketDataService) GenerateHistory() []analytics.Observation {
	codes := make([]string, historyProperties)
	for i := range codes {
		codes[i] = fmt.Sprintf("PROP_%03d", i+1)
	}
	start := time.Date(historyStartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(historyEndYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	return s.Generate(codes, start, end)
}

// Generate produces one observation per property per month inside the
// window: a per-property base return plus a yearly growth trend, a
// sinusoidal monthly seasonality, and uniform noise, floored at zero.
// Price and location are redrawn per observation. The draw sequence is
// fixed, so the same seeded source and arguments reproduce the series
// byte for byte.
func (s *marketDataService) Generate(propertyCodes []string, start, end time.Time) []analytics.Observation {
	months := monthEnds(start, end)
	obs := make([]analytics.Observation, 0, len(propertyCodes)*len(months))

	for _, code := range propertyCodes {
		base := 12 + s.rng.Float64()*13

		for _, date := range months {
			trend := float64(date.Year()-start.Year()) * 0.8
			seasonality := math.Sin(2*math.Pi*float64(date.Month())/12) * 3
			noise := -3 + s.rng.Float64()*6

			rate := base + trend + seasonality + noise
			if rate < 0 {
				rate = 0
			}

			obs = append(obs, analytics.Observation{
				PropertyCode: code,
				Date:         date,
				Rate:         rate,
				Price:        int64(s.rng.Intn(45000001) + 5000000),
				Location:     demoLocations[s.rng.Intn(len(demoLocations))],
			})
		}
	}

	return obs
}

// monthEnds returns the last day of every month that ends inside the window.
func monthEnds(start, end time.Time) []time.Time {
	var months []time.Time
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		// Day zero of the next month is the last day of this one.
		last := time.Date(cursor.Year(), cursor.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		if last.After(end) {
			break
		}
		months = append(months, last)
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}
