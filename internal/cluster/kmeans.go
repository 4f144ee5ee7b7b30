package cluster

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	defaultRestarts  = 10
	defaultMaxIter   = 300
	defaultTolerance = 1e-4
)

type kmeansResult struct {
	labels  []int
	centers [][]float64
	inertia float64
}

// kmeans runs Lloyd's algorithm from restarts k-means++ seedings and keeps
// the run with the lowest inertia.
func kmeans(x [][]float64, k, restarts, maxIter int, rng *rand.Rand) kmeansResult {
	tol := defaultTolerance * meanVariance(x)

	var best kmeansResult
	for r := 0; r < restarts; r++ {
		res := lloyd(x, seedCenters(x, k, rng), maxIter, tol)
		if r == 0 || res.inertia < best.inertia {
			best = res
		}
	}
	return best
}

func seedCenters(x [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(x[rng.IntN(len(x))]))

	dist := make([]float64, len(x))
	for len(centers) < k {
		total := 0.0
		for i, row := range x {
			_, d := nearest(row, centers)
			dist[i] = d
			total += d
		}

		pick := rng.IntN(len(x))
		if total > 0 {
			target := rng.Float64() * total
			for i, d := range dist {
				target -= d
				if target < 0 {
					pick = i
					break
				}
			}
		}
		centers = append(centers, clone(x[pick]))
	}
	return centers
}

func lloyd(x [][]float64, centers [][]float64, maxIter int, tol float64) kmeansResult {
	k := len(centers)
	dims := len(x[0])
	labels := make([]int, len(x))

	for iter := 0; iter < maxIter; iter++ {
		for i, row := range x {
			labels[i], _ = nearest(row, centers)
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, row := range x {
			floats.Add(sums[labels[i]], row)
			counts[labels[i]]++
		}

		shift := 0.0
		for c := range centers {
			next := sums[c]
			if counts[c] == 0 {
				// Empty cluster: restart it on the worst-fitted point.
				next = clone(x[farthest(x, centers, labels)])
			} else {
				floats.Scale(1/float64(counts[c]), next)
			}
			d := floats.Distance(centers[c], next, 2)
			shift += d * d
			centers[c] = next
		}
		if shift <= tol {
			break
		}
	}

	inertia := 0.0
	for i, row := range x {
		var d float64
		labels[i], d = nearest(row, centers)
		inertia += d
	}
	return kmeansResult{labels: labels, centers: centers, inertia: inertia}
}

// nearest returns the closest center and its squared distance.
func nearest(row []float64, centers [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		d := floats.Distance(row, center, 2)
		if d*d < bestDist {
			best, bestDist = c, d*d
		}
	}
	return best, bestDist
}

func farthest(x [][]float64, centers [][]float64, labels []int) int {
	idx, worst := 0, -1.0
	for i, row := range x {
		d := floats.Distance(row, centers[labels[i]], 2)
		if d > worst {
			idx, worst = i, d
		}
	}
	return idx
}

func meanVariance(x [][]float64) float64 {
	if len(x) < 2 {
		return 0
	}
	col := make([]float64, len(x))
	total := 0.0
	for j := range x[0] {
		for i, row := range x {
			col[i] = row[j]
		}
		total += stat.Variance(col, nil)
	}
	return total / float64(len(x[0]))
}

func clone(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}
