package analytics

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// MinForecastPoints is the minimum number of aggregated monthly points
	// required to fit the forecast model.
	MinForecastPoints = 10

	// ForecastHorizon is how many monthly periods ahead the model predicts.
	ForecastHorizon = 12

	// forecastZ is the critical value for the 95% prediction interval.
	forecastZ = 1.96
)

// ForecastPoint is one predicted period: a point estimate with lower and
// upper uncertainty bounds.
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
}

// ForecastModel is a trend-plus-seasonality time-series model over the
// monthly mean return series: an ordinary least squares trend on the
// period index with additive monthly seasonal indices, and prediction
// bounds from the residual standard deviation.
type ForecastModel struct {
	intercept float64
	slope     float64
	seasonal  [12]float64
	residStd  float64
	lastDate  time.Time
	n         int
}

// FitForecast fits the model to a chronological monthly series. It returns
// ErrInsufficientData when fewer than MinForecastPoints points are given,
// and ctx.Err() when the stage deadline has already expired.
func FitForecast(ctx context.Context, series []MonthlyPoint) (*ForecastModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := len(series)
	if n < MinForecastPoints {
		return nil, ErrInsufficientData
	}

	ts := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range series {
		ts[i] = float64(i)
		ys[i] = p.Rate
	}

	intercept, slope := stat.LinearRegression(ts, ys, nil, false)

	m := &ForecastModel{
		intercept: intercept,
		slope:     slope,
		lastDate:  series[n-1].Date,
		n:         n,
	}

	// Seasonal index per calendar month: mean detrended residual.
	var counts [12]int
	for i, p := range series {
		month := int(p.Date.Month()) - 1
		m.seasonal[month] += ys[i] - (intercept + slope*ts[i])
		counts[month]++
	}
	for i := range m.seasonal {
		if counts[i] > 0 {
			m.seasonal[i] /= float64(counts[i])
		}
	}

	// Residual spread after trend and seasonality drives the bounds.
	var sumSq float64
	for i, p := range series {
		r := ys[i] - m.fitted(float64(i), p.Date.Month())
		sumSq += r * r
	}
	m.residStd = math.Sqrt(sumSq / float64(n))

	return m, nil
}

func (m *ForecastModel) fitted(t float64, month time.Month) float64 {
	return m.intercept + m.slope*t + m.seasonal[int(month)-1]
}

// Predict produces point forecasts with 95% bounds for the given number of
// monthly periods after the end of the fitted series.
func (m *ForecastModel) Predict(horizon int) []ForecastPoint {
	out := make([]ForecastPoint, 0, horizon)
	for h := 1; h <= horizon; h++ {
		date := m.lastDate.AddDate(0, h, 0)
		v := m.fitted(float64(m.n-1+h), date.Month())
		out = append(out, ForecastPoint{
			Date:  date,
			Value: v,
			Lower: v - forecastZ*m.residStd,
			Upper: v + forecastZ*m.residStd,
		})
	}
	return out
}

// ResidualStd exposes the model's residual standard deviation for
// reporting alongside the forecast.
func (m *ForecastModel) ResidualStd() float64 { return m.residStd }
