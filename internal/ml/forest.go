package ml

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TreeNode is one split (or leaf) of a regression tree. Leaves carry the
// mean target of their training rows.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
	Leaf      bool      `json:"leaf"`
	Value     float64   `json:"value"`
}

func (n *TreeNode) predict(features []float64) float64 {
	if n.Leaf {
		return n.Value
	}
	if features[n.Feature] <= n.Threshold {
		return n.Left.predict(features)
	}
	return n.Right.predict(features)
}

// Forest is a bagged ensemble of variance-minimizing regression trees.
type Forest struct {
	Trees       []*TreeNode `json:"trees"`
	NumFeatures int         `json:"num_features"`
}

// ForestConfig bounds tree growth. Zero values take the defaults.
type ForestConfig struct {
	NumTrees    int `json:"num_trees"`
	MaxDepth    int `json:"max_depth"`
	MinLeafSize int `json:"min_leaf_size"`
}

func (c ForestConfig) withDefaults() ForestConfig {
	if c.NumTrees <= 0 {
		c.NumTrees = 50
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 8
	}
	if c.MinLeafSize <= 0 {
		c.MinLeafSize = 5
	}
	return c
}

// TrainForest fits the ensemble on scaled features. Each tree sees a
// bootstrap sample and considers sqrt(d) random features per split, so a
// fixed rng source makes training deterministic.
func TrainForest(features [][]float64, targets []float64, cfg ForestConfig, rng *rand.Rand) *Forest {
	cfg = cfg.withDefaults()
	n := len(features)
	dims := 0
	if n > 0 {
		dims = len(features[0])
	}

	forest := &Forest{NumFeatures: dims}
	if n == 0 {
		return forest
	}
	mtry := int(math.Ceil(math.Sqrt(float64(dims))))

	for t := 0; t < cfg.NumTrees; t++ {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = rng.Intn(n)
		}
		forest.Trees = append(forest.Trees, growTree(features, targets, rows, cfg, mtry, 0, rng))
	}
	return forest
}

func (f *Forest) Predict(features []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, tree := range f.Trees {
		sum += tree.predict(features)
	}
	return sum / float64(len(f.Trees))
}

func growTree(features [][]float64, targets []float64, rows []int, cfg ForestConfig, mtry, depth int, rng *rand.Rand) *TreeNode {
	if depth >= cfg.MaxDepth || len(rows) <= cfg.MinLeafSize*2 || pureTargets(targets, rows) {
		return &TreeNode{Leaf: true, Value: meanTarget(targets, rows)}
	}

	bestFeature, bestThreshold, bestScore := -1, 0.0, math.Inf(1)
	candidates := rng.Perm(len(features[0]))[:mtry]

	values := make([]float64, 0, len(rows))
	for _, feat := range candidates {
		values = values[:0]
		for _, row := range rows {
			values = append(values, features[row][feat])
		}
		sort.Float64s(values)

		// candidate thresholds at quartile-ish cut points keep splits cheap
		for _, q := range []float64{0.25, 0.5, 0.75} {
			threshold := values[int(float64(len(values)-1)*q)]
			score, ok := splitScore(features, targets, rows, feat, threshold, cfg.MinLeafSize)
			if ok && score < bestScore {
				bestFeature, bestThreshold, bestScore = feat, threshold, score
			}
		}
	}

	if bestFeature < 0 {
		return &TreeNode{Leaf: true, Value: meanTarget(targets, rows)}
	}

	var left, right []int
	for _, row := range rows {
		if features[row][bestFeature] <= bestThreshold {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}

	return &TreeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      growTree(features, targets, left, cfg, mtry, depth+1, rng),
		Right:     growTree(features, targets, right, cfg, mtry, depth+1, rng),
	}
}

// splitScore is the size-weighted target variance of the two halves.
func splitScore(features [][]float64, targets []float64, rows []int, feat int, threshold float64, minLeaf int) (float64, bool) {
	var left, right []float64
	for _, row := range rows {
		if features[row][feat] <= threshold {
			left = append(left, targets[row])
		} else {
			right = append(right, targets[row])
		}
	}
	if len(left) < minLeaf || len(right) < minLeaf {
		return 0, false
	}

	total := float64(len(left) + len(right))
	score := stat.Variance(left, nil)*float64(len(left))/total +
		stat.Variance(right, nil)*float64(len(right))/total
	return score, true
}

func meanTarget(targets []float64, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, row := range rows {
		sum += targets[row]
	}
	return sum / float64(len(rows))
}

func pureTargets(targets []float64, rows []int) bool {
	for _, row := range rows[1:] {
		if targets[row] != targets[rows[0]] {
			return false
		}
	}
	return true
}
