package analytics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LocationStats holds descriptive return statistics for one location.
type LocationStats struct {
	Location string  `json:"location"`
	AvgRate  float64 `json:"avg_rate"`
	StdDev   float64 `json:"std_dev"`
	MinRate  float64 `json:"min_rate"`
	MaxRate  float64 `json:"max_rate"`
	AvgPrice float64 `json:"avg_price"`
	Count    int     `json:"count"`
}

// StatsByLocation computes per-location mean, sample standard deviation,
// min and max of the return rate, the mean price, and the observation
// count. Results are sorted by average return, best first.
func StatsByLocation(obs []Observation) []LocationStats {
	rates := make(map[string][]float64)
	prices := make(map[string][]float64)
	order := make([]string, 0)

	for _, o := range obs {
		if _, ok := rates[o.Location]; !ok {
			order = append(order, o.Location)
		}
		rates[o.Location] = append(rates[o.Location], o.Rate)
		prices[o.Location] = append(prices[o.Location], float64(o.Price))
	}

	out := make([]LocationStats, 0, len(order))
	for _, loc := range order {
		rs := rates[loc]
		s := LocationStats{
			Location: loc,
			AvgRate:  stat.Mean(rs, nil),
			MinRate:  floats.Min(rs),
			MaxRate:  floats.Max(rs),
			AvgPrice: stat.Mean(prices[loc], nil),
			Count:    len(rs),
		}
		if len(rs) > 1 {
			s.StdDev = stat.StdDev(rs, nil)
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgRate > out[j].AvgRate })
	return out
}
