// Package analytics holds the pure data transforms and predictive models
// behind the ROI analytics pipeline. Everything here is side-effect free
// and operates on in-memory observation slices; orchestration, persistence,
// and concurrency live in the services layer so the concrete models stay
// swappable.
package analytics

import (
	"errors"
	"sort"
	"time"
)

// ErrInsufficientData is returned by model constructors when the input is
// below the stage's minimum sample size. Callers treat it as a soft
// outcome: the stage is flagged and skipped, sibling stages proceed.
var ErrInsufficientData = errors.New("insufficient data points for this stage")

// Observation is one synthetic monthly return row for one property.
// Observations are generated once per analytics session and never persisted.
type Observation struct {
	PropertyCode string    `json:"property_code"`
	Date         time.Time `json:"date"`
	Rate         float64   `json:"rate"`
	Price        int64     `json:"price"`
	Location     string    `json:"location"`
}

// FilterCriteria restricts an observation set. Zero values pass everything
// through: an empty location set matches all locations, zero times disable
// the date bounds, and a zero MinRate keeps non-negative rates (which is
// all of them, since generated rates are floored at zero).
type FilterCriteria struct {
	Locations []string  `json:"locations"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	MinRate   float64   `json:"min_rate"`
}

// Filter returns the observations matching the criteria, preserving input
// order. Filtering is idempotent: applying the same criteria to its own
// output returns an equal slice. An empty result is a valid outcome, not
// an error.
func Filter(obs []Observation, c FilterCriteria) []Observation {
	var locs map[string]bool
	if len(c.Locations) > 0 {
		locs = make(map[string]bool, len(c.Locations))
		for _, l := range c.Locations {
			locs[l] = true
		}
	}

	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if locs != nil && !locs[o.Location] {
			continue
		}
		if !c.Start.IsZero() && o.Date.Before(c.Start) {
			continue
		}
		if !c.End.IsZero() && o.Date.After(c.End) {
			continue
		}
		if o.Rate < c.MinRate {
			continue
		}
		out = append(out, o)
	}
	return out
}

// MonthlyPoint is one aggregated point of the monthly mean return series.
type MonthlyPoint struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// MonthlyMeans aggregates observations into a mean return per calendar
// month, sorted chronologically. This is the input series for the
// forecast stage.
func MonthlyMeans(obs []Observation) []MonthlyPoint {
	type acc struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*acc)
	order := make([]time.Time, 0)

	for _, o := range obs {
		month := time.Date(o.Date.Year(), o.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		a, ok := buckets[month]
		if !ok {
			a = &acc{}
			buckets[month] = a
			order = append(order, month)
		}
		a.sum += o.Rate
		a.count++
	}

	points := make([]MonthlyPoint, 0, len(order))
	for _, month := range order {
		a := buckets[month]
		points = append(points, MonthlyPoint{Date: month, Rate: a.sum / float64(a.count)})
	}

	// Generation emits observations in property-major order, so bucket
	// first-appearance order is not chronological.
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}
