package ml

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// TreeNode is one node of a fitted CART tree. Exported fields keep the tree
// JSON-serializable inside the estimator bundle.
type TreeNode struct {
	Leaf      bool      `json:"leaf"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`

	// Class is the majority label at a leaf.
	Class int `json:"class,omitempty"`
}

// DecisionTree is a CART-style binary classifier with numeric threshold
// splits (x <= threshold goes left).
type DecisionTree struct {
	MaxDepth        int     `json:"max_depth"`
	MinSamplesSplit int     `json:"min_samples_split"`
	MinSamplesLeaf  int     `json:"min_samples_leaf"`
	MaxFeatures     int     `json:"max_features"`
	Criterion       string  `json:"criterion"`
	Root            *TreeNode `json:"root,omitempty"`
}

// fit builds the tree over the sample indices idx. rnd drives feature
// subsampling only; with MaxFeatures == 0 the fit is fully deterministic.
func (t *DecisionTree) fit(x [][]float64, y []int, idx []int, rnd *rand.Rand) error {
	if len(idx) == 0 {
		return fmt.Errorf("decision tree: no samples")
	}
	impurity := giniImpurity
	if t.Criterion == "entropy" {
		impurity = entropyImpurity
	}
	t.Root = t.buildNode(x, y, idx, 0, impurity, rnd)
	return nil
}

func (t *DecisionTree) buildNode(x [][]float64, y []int, idx []int, depth int, impurity func(n0, n1 int) float64, rnd *rand.Rand) *TreeNode {
	n0, n1 := classCounts(y, idx)

	leaf := func() *TreeNode {
		return &TreeNode{Leaf: true, Class: majority(n0, n1)}
	}

	if n0 == 0 || n1 == 0 {
		return leaf()
	}
	if t.MinSamplesSplit > 0 && len(idx) < t.MinSamplesSplit {
		return leaf()
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return leaf()
	}

	feature, threshold, gain := t.bestSplit(x, y, idx, impurity, rnd)
	if gain <= 0 {
		return leaf()
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.buildNode(x, y, leftIdx, depth+1, impurity, rnd),
		Right:     t.buildNode(x, y, rightIdx, depth+1, impurity, rnd),
	}
}

// bestSplit scans candidate features for the midpoint threshold with the
// highest impurity decrease.
func (t *DecisionTree) bestSplit(x [][]float64, y []int, idx []int, impurity func(n0, n1 int) float64, rnd *rand.Rand) (feature int, threshold, gain float64) {
	p := len(x[idx[0]])
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		features = features[:t.MaxFeatures]
		sort.Ints(features)
	}

	n0, n1 := classCounts(y, idx)
	parent := impurity(n0, n1)
	total := float64(len(idx))
	feature, gain = -1, 0

	type cell struct {
		v float64
		y int
	}
	cells := make([]cell, len(idx))

	for _, f := range features {
		for k, i := range idx {
			cells[k] = cell{v: x[i][f], y: y[i]}
		}
		sort.Slice(cells, func(a, b int) bool { return cells[a].v < cells[b].v })

		l0, l1 := 0, 0
		for s := 1; s < len(cells); s++ {
			if cells[s-1].y == 0 {
				l0++
			} else {
				l1++
			}
			if cells[s].v == cells[s-1].v {
				continue
			}
			if t.MinSamplesLeaf > 0 && (s < t.MinSamplesLeaf || len(cells)-s < t.MinSamplesLeaf) {
				continue
			}

			r0, r1 := n0-l0, n1-l1
			weighted := float64(s)/total*impurity(l0, l1) + float64(len(cells)-s)/total*impurity(r0, r1)
			if g := parent - weighted; g > gain {
				feature = f
				threshold = (cells[s-1].v + cells[s].v) / 2
				gain = g
			}
		}
	}
	return feature, threshold, gain
}

// predictRow walks the tree for one feature vector.
func (t *DecisionTree) predictRow(row []float64) int {
	node := t.Root
	for node != nil && !node.Leaf {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	return node.Class
}

func classCounts(y []int, idx []int) (n0, n1 int) {
	for _, i := range idx {
		if y[i] == 0 {
			n0++
		} else {
			n1++
		}
	}
	return n0, n1
}

func majority(n0, n1 int) int {
	if n1 > n0 {
		return 1
	}
	return 0
}

func giniImpurity(n0, n1 int) float64 {
	n := float64(n0 + n1)
	if n == 0 {
		return 0
	}
	p0 := float64(n0) / n
	p1 := float64(n1) / n
	return 1 - p0*p0 - p1*p1
}

func entropyImpurity(n0, n1 int) float64 {
	n := float64(n0 + n1)
	if n == 0 {
		return 0
	}
	e := 0.0
	for _, c := range []int{n0, n1} {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		e -= p * math.Log2(p)
	}
	return e
}
