package ml

import (
	"math"
	"math/rand"
	"sort"
)

// treeNode is one node of a CART classification tree. Leaves carry the
// fraction of positive-label samples that reached them.
type treeNode struct {
	isLeaf    bool
	prob      float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

type treeParams struct {
	maxDepth int
	minSplit int
	mtry     int
}

// buildTree grows a tree on the sample index set, splitting by Gini
// impurity over a random feature subset at each node.
func buildTree(x [][]float64, y []int, indices []int, depth int, params treeParams, rng *rand.Rand) *treeNode {
	prob := positiveFraction(y, indices)
	if depth >= params.maxDepth || len(indices) < params.minSplit || prob == 0 || prob == 1 {
		return &treeNode{isLeaf: true, prob: prob}
	}

	feature, threshold, ok := bestSplit(x, y, indices, params.mtry, rng)
	if !ok {
		return &treeNode{isLeaf: true, prob: prob}
	}

	var left, right []int
	for _, idx := range indices {
		if x[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{isLeaf: true, prob: prob}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(x, y, left, depth+1, params, rng),
		right:     buildTree(x, y, right, depth+1, params, rng),
	}
}

// bestSplit scans mtry randomly chosen features and the midpoints of
// their sorted in-node values for the lowest weighted Gini impurity.
func bestSplit(x [][]float64, y []int, indices []int, mtry int, rng *rand.Rand) (int, float64, bool) {
	nFeatures := len(x[indices[0]])
	perm := rng.Perm(nFeatures)
	if mtry < 1 {
		mtry = 1
	}
	if mtry > nFeatures {
		mtry = nFeatures
	}

	bestGini := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	values := make([]float64, 0, len(indices))
	for _, feature := range perm[:mtry] {
		values = values[:0]
		for _, idx := range indices {
			values = append(values, x[idx][feature])
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2
			gini := splitGini(x, y, indices, feature, threshold)
			if gini < bestGini {
				bestGini = gini
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func splitGini(x [][]float64, y []int, indices []int, feature int, threshold float64) float64 {
	var leftTotal, leftPos, rightTotal, rightPos float64
	for _, idx := range indices {
		if x[idx][feature] <= threshold {
			leftTotal++
			leftPos += float64(y[idx])
		} else {
			rightTotal++
			rightPos += float64(y[idx])
		}
	}
	total := leftTotal + rightTotal
	return leftTotal/total*gini(leftPos, leftTotal) + rightTotal/total*gini(rightPos, rightTotal)
}

func gini(positives, total float64) float64 {
	if total == 0 {
		return 0
	}
	p := positives / total
	return 2 * p * (1 - p)
}

func positiveFraction(y []int, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	pos := 0
	for _, idx := range indices {
		pos += y[idx]
	}
	return float64(pos) / float64(len(indices))
}

// predict walks the tree for one feature vector.
func (n *treeNode) predict(x []float64) float64 {
	for !n.isLeaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.prob
}
