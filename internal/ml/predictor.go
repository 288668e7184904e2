package ml

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/models"
)

// Series and feature-row minimums below which the predictor declines to
// answer rather than fit on noise.
const (
	minSeriesBars = 100
	minUsableRows = 60
)

// Predictor estimates the probability that tomorrow's close exceeds
// today's.
type Predictor struct {
	logger *logrus.Logger
}

// NewPredictor creates a predictor.
func NewPredictor(logger *logrus.Logger) *Predictor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Predictor{logger: logger}
}

// Predict returns the up-move probability as a percentage in [0, 100],
// rounded to one decimal. It trains the fixed-seed ensemble on every
// labeled row except the newest and predicts on the newest. Any failure
// during feature construction or fitting, panics included, surfaces as
// ErrPredictionUnavailable; the predictor never takes down its caller.
func (p *Predictor) Predict(s *models.PriceSeries) (prob float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("panic", r).Warn("Model fitting panicked")
			prob, err = 0, ErrPredictionUnavailable
		}
	}()

	if s == nil || s.Len() < minSeriesBars {
		return 0, ErrPredictionUnavailable
	}

	set, buildErr := BuildFeatures(s)
	if buildErr != nil || set.UsableRows() < minUsableRows {
		return 0, ErrPredictionUnavailable
	}

	x := make([][]float64, len(set.Rows))
	y := make([]int, len(set.Rows))
	for i, row := range set.Rows {
		x[i] = row.Vector()
		y[i] = row.Label
	}

	forest, fitErr := FitForest(x, y)
	if fitErr != nil {
		p.logger.WithError(fitErr).Warn("Model fitting failed")
		return 0, ErrPredictionUnavailable
	}

	upProb := forest.PredictProb(set.Latest.Vector())
	return models.Round1(upProb * 100), nil
}
