package analytics

import "sort"

// PropertyRank is one row of the top-performer ranking: a property's
// average return over the filtered window, with the first observed price
// and location carried along for display.
type PropertyRank struct {
	PropertyCode string  `json:"property_code"`
	AvgRate      float64 `json:"avg_rate"`
	Price        int64   `json:"price"`
	Location     string  `json:"location"`
	Observations int     `json:"observations"`
}

// RankTop groups observations by property, averages the return rate, and
// returns the top k properties by average return. The sort is stable:
// properties tied on average keep their first-appearance order.
func RankTop(obs []Observation, k int) []PropertyRank {
	index := make(map[string]int)
	ranks := make([]PropertyRank, 0)

	for _, o := range obs {
		i, ok := index[o.PropertyCode]
		if !ok {
			i = len(ranks)
			index[o.PropertyCode] = i
			ranks = append(ranks, PropertyRank{
				PropertyCode: o.PropertyCode,
				Price:        o.Price,
				Location:     o.Location,
			})
		}
		ranks[i].AvgRate += o.Rate
		ranks[i].Observations++
	}

	for i := range ranks {
		ranks[i].AvgRate /= float64(ranks[i].Observations)
	}

	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].AvgRate > ranks[j].AvgRate })

	if k < len(ranks) {
		ranks = ranks[:k]
	}
	return ranks
}
