package ml

import "errors"

var (
	// ErrPredictionUnavailable indicates the predictor could not produce
	// a probability; callers render it as "prediction unavailable".
	ErrPredictionUnavailable = errors.New("prediction unavailable")

	// ErrEmptyTrainingSet indicates the feature matrix had no labeled rows
	ErrEmptyTrainingSet = errors.New("empty training set")
)
