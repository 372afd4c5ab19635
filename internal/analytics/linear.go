package analytics

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MinLinearPoints is the exclusive lower bound on filtered rows for the
// linear trend stage.
const MinLinearPoints = 10

// LinearResult describes an ordinary least squares fit of the return rate
// against standardized [price, return_rate] features. PriceCoefficient is
// reported in standardized units, matching how the coefficients are
// surfaced in the report.
type LinearResult struct {
	R2               float64 `json:"r2"`
	PriceCoefficient float64 `json:"price_coefficient"`
	Intercept        float64 `json:"intercept"`
	Rows             int     `json:"rows"`
}

// FitLinear fits return rate on z-scored [price, return_rate] using QR
// least squares over the full filtered set. The feature set knowingly
// contains the target, the same setup FitBoosted uses, so R2 sits near 1
// whenever the rates vary at all; that behavior is kept, not repaired.
// A zero-variance feature column is dropped rather than dividing by zero.
func FitLinear(ctx context.Context, obs []Observation) (*LinearResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := len(obs)
	if n <= MinLinearPoints {
		return nil, ErrInsufficientData
	}

	price := make([]float64, n)
	rate := make([]float64, n)
	ys := make([]float64, n)
	for i, o := range obs {
		price[i] = float64(o.Price)
		rate[i] = o.Rate
		ys[i] = o.Rate
	}
	priceVaries := standardize(price)
	rateVaries := standardize(rate)

	// A constant column would make the design rank-deficient, so each
	// feature only enters the regression when it carries information.
	cols := make([][]float64, 0, 2)
	priceCol := -1
	if priceVaries {
		priceCol = len(cols)
		cols = append(cols, price)
	}
	if rateVaries {
		cols = append(cols, rate)
	}

	X := mat.NewDense(n, len(cols)+1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
		for j, col := range cols {
			X.Set(i, j+1, col[i])
		}
	}
	y := mat.NewVecDense(n, ys)

	var qr mat.QR
	qr.Factorize(X)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		return nil, err
	}

	var ssRes float64
	mean := stat.Mean(ys, nil)
	var ssTot float64
	for i := 0; i < n; i++ {
		fit := beta.AtVec(0)
		for j, col := range cols {
			fit += beta.AtVec(j + 1) * col[i]
		}
		ssRes += (ys[i] - fit) * (ys[i] - fit)
		ssTot += (ys[i] - mean) * (ys[i] - mean)
	}
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	res := &LinearResult{
		R2:        r2,
		Intercept: beta.AtVec(0),
		Rows:      n,
	}
	if priceCol >= 0 {
		res.PriceCoefficient = beta.AtVec(priceCol + 1)
	}
	return res, nil
}

// standardize z-scores xs in place using the population standard
// deviation. It reports whether the column varies; a constant column is
// left all zero.
func standardize(xs []float64) bool {
	mean := stat.Mean(xs, nil)
	var sumSq float64
	for _, x := range xs {
		sumSq += (x - mean) * (x - mean)
	}
	std := math.Sqrt(sumSq / float64(len(xs)))
	for i := range xs {
		if std > 0 {
			xs[i] = (xs[i] - mean) / std
		} else {
			xs[i] = 0
		}
	}
	return std > 0
}
