// Package anomaly flags statistically unusual days in the daily revenue
// series using an isolation forest fitted per invocation.
package anomaly

import (
	"math"
	"math/rand"
)

// forest is an isolation forest over a single feature. Values that isolate
// in few random splits receive scores near 1; inliers sit near 0.5 or below.
type forest struct {
	trees []*node
	// sample size each tree was grown from, for score normalization.
	psi int
}

type node struct {
	split       float64
	left, right *node
	// size of the subsample that reached this leaf.
	size int
}

// avgPathLength is c(n), the expected path length of an unsuccessful BST
// search among n values: 2H(n-1) - 2(n-1)/n.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + 0.5772156649015329
	return 2*h - 2*float64(n-1)/float64(n)
}

func buildTree(rng *rand.Rand, vals []float64, depth, maxDepth int) *node {
	if len(vals) <= 1 || depth >= maxDepth {
		return &node{size: len(vals)}
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return &node{size: len(vals)}
	}
	split := lo + rng.Float64()*(hi-lo)
	var left, right []float64
	for _, v := range vals {
		if v < split {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}
	return &node{
		split: split,
		left:  buildTree(rng, left, depth+1, maxDepth),
		right: buildTree(rng, right, depth+1, maxDepth),
	}
}

func (n *node) pathLength(v float64, depth int) float64 {
	if n.left == nil {
		return float64(depth) + avgPathLength(n.size)
	}
	if v < n.split {
		return n.left.pathLength(v, depth+1)
	}
	return n.right.pathLength(v, depth+1)
}

// fitForest grows trees over subsamples of vals. Deterministic for a given
// rng state.
func fitForest(rng *rand.Rand, vals []float64, trees, sampleSize int) *forest {
	psi := sampleSize
	if psi > len(vals) {
		psi = len(vals)
	}
	maxDepth := int(math.Ceil(math.Log2(float64(psi))))
	if maxDepth < 1 {
		maxDepth = 1
	}
	f := &forest{trees: make([]*node, 0, trees), psi: psi}
	sample := make([]float64, psi)
	for t := 0; t < trees; t++ {
		for i, p := range rng.Perm(len(vals))[:psi] {
			sample[i] = vals[p]
		}
		f.trees = append(f.trees, buildTree(rng, sample, 0, maxDepth))
	}
	return f
}

// score returns the anomaly score 2^(-E[h(v)]/c(psi)) in (0, 1].
func (f *forest) score(v float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.pathLength(v, 0)
	}
	mean := sum / float64(len(f.trees))
	c := avgPathLength(f.psi)
	if c == 0 {
		return 0.5
	}
	return math.Pow(2, -mean/c)
}
