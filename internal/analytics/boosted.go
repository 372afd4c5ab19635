package analytics

import (
	"context"
	"math"
	"math/rand"
	"sort"
)

// MinBoostedRows is the exclusive lower bound on filtered rows for the
// boosted stage: fitting requires more than 20 rows.
const MinBoostedRows = 20

// BoostedConfig controls the gradient-boosted regression fit.
type BoostedConfig struct {
	Trees        int     // number of boosting rounds
	LearningRate float64 // shrinkage applied to each tree
	MaxDepth     int     // depth limit per regression tree
	MinLeaf      int     // minimum samples per leaf
	TestFraction float64 // held-out share of the data
	Seed         int64   // seed for the deterministic train/test shuffle
}

// DefaultBoostedConfig mirrors the reference setup: 100 estimators with a
// fixed split seed so repeated runs over the same data agree exactly.
func DefaultBoostedConfig() BoostedConfig {
	return BoostedConfig{
		Trees:        100,
		LearningRate: 0.1,
		MaxDepth:     3,
		MinLeaf:      2,
		TestFraction: 0.2,
		Seed:         42,
	}
}

// BoostedResult reports held-out accuracy of the boosted model.
type BoostedResult struct {
	R2        float64 `json:"r2"`
	RMSE      float64 `json:"rmse"`
	TrainRows int     `json:"train_rows"`
	TestRows  int     `json:"test_rows"`
}

// FitBoosted trains gradient-boosted regression trees on
// [price, return_rate] -> return_rate and evaluates on a deterministic
// 20% holdout. The feature set knowingly contains the target; the
// platform preserves the reference behavior rather than repairing the
// model. Fitting honors ctx: boosting stops with ctx.Err() when the
// stage deadline expires.
func FitBoosted(ctx context.Context, obs []Observation, cfg BoostedConfig) (*BoostedResult, error) {
	n := len(obs)
	if n <= MinBoostedRows {
		return nil, ErrInsufficientData
	}

	features := make([][2]float64, n)
	target := make([]float64, n)
	for i, o := range obs {
		features[i] = [2]float64{float64(o.Price), o.Rate}
		target[i] = o.Rate
	}

	// Deterministic shuffled split, holdout taken from the tail.
	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(n)
	testN := int(math.Round(float64(n) * cfg.TestFraction))
	if testN < 1 {
		testN = 1
	}
	trainIdx := perm[:n-testN]
	testIdx := perm[n-testN:]

	// Boosting: start from the train mean, then fit each tree to the
	// current residuals.
	var base float64
	for _, i := range trainIdx {
		base += target[i]
	}
	base /= float64(len(trainIdx))

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = base
	}

	trees := make([]*regressionTree, 0, cfg.Trees)
	residual := make([]float64, n)
	for round := 0; round < cfg.Trees; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, i := range trainIdx {
			residual[i] = target[i] - pred[i]
		}
		tree := growTree(features, residual, trainIdx, cfg.MaxDepth, cfg.MinLeaf)
		if tree == nil {
			break
		}
		trees = append(trees, tree)
		for _, i := range trainIdx {
			pred[i] += cfg.LearningRate * tree.predict(features[i])
		}
	}

	// Evaluate on the holdout.
	var ssRes, ssTot, testMean float64
	for _, i := range testIdx {
		p := base
		for _, tree := range trees {
			p += cfg.LearningRate * tree.predict(features[i])
		}
		pred[i] = p
		testMean += target[i]
	}
	testMean /= float64(len(testIdx))
	for _, i := range testIdx {
		ssRes += (target[i] - pred[i]) * (target[i] - pred[i])
		ssTot += (target[i] - testMean) * (target[i] - testMean)
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return &BoostedResult{
		R2:        r2,
		RMSE:      math.Sqrt(ssRes / float64(len(testIdx))),
		TrainRows: len(trainIdx),
		TestRows:  len(testIdx),
	}, nil
}

// regressionTree is a binary CART regression tree over two features.
type regressionTree struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *regressionTree
	right     *regressionTree
}

func (t *regressionTree) predict(x [2]float64) float64 {
	for !t.leaf {
		if x[t.feature] <= t.threshold {
			t = t.left
		} else {
			t = t.right
		}
	}
	return t.value
}

// growTree builds a regression tree minimizing squared error, splitting
// greedily by the best variance reduction across both features.
func growTree(features [][2]float64, target []float64, idx []int, depth, minLeaf int) *regressionTree {
	if len(idx) == 0 {
		return nil
	}

	var sum float64
	for _, i := range idx {
		sum += target[i]
	}
	mean := sum / float64(len(idx))

	if depth == 0 || len(idx) < 2*minLeaf {
		return &regressionTree{leaf: true, value: mean}
	}

	feature, threshold, ok := bestSplit(features, target, idx, minLeaf)
	if !ok {
		return &regressionTree{leaf: true, value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &regressionTree{
		feature:   feature,
		threshold: threshold,
		left:      growTree(features, target, left, depth-1, minLeaf),
		right:     growTree(features, target, right, depth-1, minLeaf),
	}
}

// bestSplit scans each feature in sorted order, tracking prefix sums so
// every candidate threshold is evaluated in O(1).
func bestSplit(features [][2]float64, target []float64, idx []int, minLeaf int) (int, float64, bool) {
	n := len(idx)

	var total, totalSq float64
	for _, i := range idx {
		total += target[i]
		totalSq += target[i] * target[i]
	}
	bestScore := totalSq - total*total/float64(n) // SSE without a split
	bestFeature, bestThreshold, found := 0, 0.0, false

	order := make([]int, n)
	for f := 0; f < 2; f++ {
		copy(order, idx)
		sortByFeature(order, features, f)

		var leftSum, leftSq float64
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += target[i]
			leftSq += target[i] * target[i]

			// No valid threshold between equal feature values.
			if features[i][f] == features[order[k+1]][f] {
				continue
			}
			if k+1 < minLeaf || n-k-1 < minLeaf {
				continue
			}

			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/float64(k+1)) +
				(rightSq - rightSum*rightSum/float64(n-k-1))
			if sse < bestScore-1e-12 {
				bestScore = sse
				bestFeature = f
				bestThreshold = (features[i][f] + features[order[k+1]][f]) / 2
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func sortByFeature(order []int, features [][2]float64, f int) {
	sort.Slice(order, func(a, b int) bool {
		return features[order[a]][f] < features[order[b]][f]
	})
}
