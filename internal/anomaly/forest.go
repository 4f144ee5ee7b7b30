package anomaly

import (
	"math"
	"math/rand/v2"
	"sort"
)

const (
	defaultTrees      = 100
	defaultMaxSamples = 256
	eulerGamma        = 0.5772156649015329
)

// node is one isolation tree node. Leaves have feature -1.
type node struct {
	left, right *node
	feature     int
	threshold   float64
	size        int
}

// forest is an ensemble of isolation trees fitted on a sub-sample each.
type forest struct {
	trees      []*node
	sampleSize int
}

// averagePathLength is the expected path length of an unsuccessful search
// in a binary search tree of n points.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	f := float64(n)
	return 2*(math.Log(f-1)+eulerGamma) - 2*(f-1)/f
}

func fitForest(x [][]float64, trees int, rng *rand.Rand) *forest {
	n := len(x)
	sampleSize := min(defaultMaxSamples, n)
	maxDepth := int(math.Ceil(math.Log2(float64(max(sampleSize, 2)))))

	f := &forest{trees: make([]*node, trees), sampleSize: sampleSize}
	for i := range f.trees {
		sample := rng.Perm(n)[:sampleSize]
		f.trees[i] = buildTree(x, sample, 0, maxDepth, rng)
	}
	return f
}

func buildTree(x [][]float64, idx []int, depth, maxDepth int, rng *rand.Rand) *node {
	if depth >= maxDepth || len(idx) <= 1 {
		return &node{feature: -1, size: len(idx)}
	}

	dims := len(x[idx[0]])
	for _, feature := range rng.Perm(dims) {
		lo, hi := x[idx[0]][feature], x[idx[0]][feature]
		for _, i := range idx[1:] {
			lo = math.Min(lo, x[i][feature])
			hi = math.Max(hi, x[i][feature])
		}
		if hi <= lo {
			continue
		}

		threshold := lo + rng.Float64()*(hi-lo)
		var left, right []int
		for _, i := range idx {
			if x[i][feature] <= threshold {
				left = append(left, i)
			} else {
				right = append(right, i)
			}
		}
		return &node{
			feature:   feature,
			threshold: threshold,
			size:      len(idx),
			left:      buildTree(x, left, depth+1, maxDepth, rng),
			right:     buildTree(x, right, depth+1, maxDepth, rng),
		}
	}

	// Every feature is constant on this node.
	return &node{feature: -1, size: len(idx)}
}

func (n *node) pathLength(row []float64) float64 {
	depth := 0.0
	for n.feature >= 0 {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
		depth++
	}
	return depth + averagePathLength(n.size)
}

// scoreSamples returns the negated anomaly score of each row. Values lie in
// [-1, 0) and lower means more anomalous.
func (f *forest) scoreSamples(x [][]float64) []float64 {
	norm := averagePathLength(f.sampleSize)
	scores := make([]float64, len(x))
	for i, row := range x {
		total := 0.0
		for _, t := range f.trees {
			total += t.pathLength(row)
		}
		mean := total / float64(len(f.trees))
		if norm == 0 {
			scores[i] = -0.5
			continue
		}
		scores[i] = -math.Pow(2, -mean/norm)
	}
	return scores
}

// percentile interpolates linearly between closest ranks.
func percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}
