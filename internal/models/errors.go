package models

import "errors"

// Custom errors
var (
	ErrInsufficientHistory = errors.New("insufficient price history")
	ErrUnorderedSeries     = errors.New("price series dates must be strictly increasing")
	ErrEmptySeries         = errors.New("price series is empty")
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateTicker     = errors.New("ticker already on watchlist")
	ErrInvalidTicker       = errors.New("invalid ticker symbol")
)
