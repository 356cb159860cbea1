package ml

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ForestConfig holds the random-forest hyperparameters. A fixed Seed makes
// the fit reproducible.
type ForestConfig struct {
	NEstimators     int    `json:"n_estimators"`
	MaxDepth        int    `json:"max_depth"`
	MinSamplesSplit int    `json:"min_samples_split"`
	MinSamplesLeaf  int    `json:"min_samples_leaf"`
	Criterion       string `json:"criterion"`
	Seed            int64  `json:"seed"`
}

// RandomForest is a bagged ensemble of CART trees with majority voting.
type RandomForest struct {
	Config ForestConfig    `json:"config"`
	Trees  []*DecisionTree `json:"trees,omitempty"`
}

func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.NEstimators < 1 {
		cfg.NEstimators = 100
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	if cfg.MinSamplesLeaf < 1 {
		cfg.MinSamplesLeaf = 1
	}
	if cfg.Criterion == "" {
		cfg.Criterion = "gini"
	}
	return &RandomForest{Config: cfg}
}

// Fit trains the forest on x and binary labels y. Each tree gets a bootstrap
// sample and sqrt(p) candidate features per split, both drawn from a rng
// seeded by Config.Seed plus the tree index.
func (f *RandomForest) Fit(x mat.Matrix, y []int) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return fmt.Errorf("random forest: empty training matrix")
	}
	if len(y) != rows {
		return fmt.Errorf("random forest: %d rows but %d labels", rows, len(y))
	}

	data := denseRows(x)
	maxFeatures := int(math.Sqrt(float64(cols)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	f.Trees = make([]*DecisionTree, f.Config.NEstimators)
	for i := range f.Trees {
		rnd := rand.New(rand.NewSource(f.Config.Seed + int64(i)))

		sample := make([]int, rows)
		for j := range sample {
			sample[j] = rnd.Intn(rows)
		}

		tree := &DecisionTree{
			MaxDepth:        f.Config.MaxDepth,
			MinSamplesSplit: f.Config.MinSamplesSplit,
			MinSamplesLeaf:  f.Config.MinSamplesLeaf,
			MaxFeatures:     maxFeatures,
			Criterion:       f.Config.Criterion,
		}
		if err := tree.fit(data, y, sample, rnd); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		f.Trees[i] = tree
	}
	return nil
}

// Predict returns the majority-vote label for each row of x.
func (f *RandomForest) Predict(x mat.Matrix) ([]int, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("random forest is not fitted")
	}

	data := denseRows(x)
	out := make([]int, len(data))
	for i, row := range data {
		out[i] = f.predictRow(row)
	}
	return out, nil
}

func (f *RandomForest) predictRow(row []float64) int {
	votes := 0
	for _, tree := range f.Trees {
		votes += tree.predictRow(row)
	}
	// ties break toward the negative class
	if 2*votes > len(f.Trees) {
		return 1
	}
	return 0
}

func denseRows(x mat.Matrix) [][]float64 {
	rows, cols := x.Dims()
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			row[j] = x.At(i, j)
		}
		out[i] = row
	}
	return out
}
