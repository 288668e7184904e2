package indicator

// MACD returns the moving average convergence divergence triple: the
// MACD line (fast EMA minus slow EMA), its signal line (EMA of the
// line) and the histogram (line minus signal). All EMAs are recursive
// no-adjustment EMAs, so every position is defined; the early values
// simply carry heavy seed bias, which callers tolerate the same way the
// rolling-window indicators tolerate their warm-up NaNs.
func MACD(closes []float64, fast, slow, signal int) (line, signalLine, hist []float64) {
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)

	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine = EMA(line, signal)

	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - signalLine[i]
	}
	return line, signalLine, hist
}
