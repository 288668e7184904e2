package ml

import (
	"math"
	"math/rand"
)

// Fixed ensemble hyperparameters. The ensemble is deliberately small
// and bounded so a fit costs at most trees x depth x rows; training
// runs on the calling goroutine only, and the fixed seed makes two fits
// over the same matrix produce identical trees.
const (
	forestTrees    = 30
	forestMaxDepth = 5
	forestMinSplit = 5
	forestSeed     = 42
)

// Forest is a bagged ensemble of CART classification trees.
type Forest struct {
	trees []*treeNode
}

// FitForest trains the fixed-size ensemble on the labeled matrix. Each
// tree sees a bootstrap resample and sqrt(features) candidates per
// split.
func FitForest(x [][]float64, y []int) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, ErrEmptyTrainingSet
	}

	rng := rand.New(rand.NewSource(forestSeed))
	params := treeParams{
		maxDepth: forestMaxDepth,
		minSplit: forestMinSplit,
		mtry:     int(math.Sqrt(float64(len(x[0])))),
	}

	forest := &Forest{trees: make([]*treeNode, 0, forestTrees)}
	sample := make([]int, len(x))
	for t := 0; t < forestTrees; t++ {
		for i := range sample {
			sample[i] = rng.Intn(len(x))
		}
		forest.trees = append(forest.trees, buildTree(x, y, sample, 0, params, rng))
	}
	return forest, nil
}

// PredictProb returns the ensemble probability of the positive class,
// the mean of the per-tree leaf fractions.
func (f *Forest) PredictProb(x []float64) float64 {
	sum := 0.0
	for _, tree := range f.trees {
		sum += tree.predict(x)
	}
	return sum / float64(len(f.trees))
}
