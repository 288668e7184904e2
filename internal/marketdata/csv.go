package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/stock-sentry/internal/models"
)

// CSVProvider serves bar history from per-ticker CSV files, one file
// per ticker named <TICKER>.csv with columns
// date,open,high,low,close,volume and a header row.
type CSVProvider struct {
	dir string
}

// NewCSVProvider creates a provider reading from dir.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

// Name returns the provider name.
func (p *CSVProvider) Name() string { return "csv" }

// GetDailyHistory loads the CSV file for the first resolvable ticker
// candidate.
func (p *CSVProvider) GetDailyHistory(ctx context.Context, ticker string) (*models.PriceSeries, string, error) {
	for _, candidate := range ResolveTickerCandidates(ticker) {
		path := filepath.Join(p.dir, candidate+".csv")
		series, err := p.loadFile(candidate, path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, "", err
		}
		return series, candidate, nil
	}
	return nil, "", fmt.Errorf("no csv history for %q: %w", ticker, ErrTickerNotFound)
}

// LoadFile reads a single CSV file directly, bypassing ticker
// resolution. Useful for backtests over ad-hoc files.
func (p *CSVProvider) LoadFile(ticker, path string) (*models.PriceSeries, error) {
	return p.loadFile(ticker, path)
}

func (p *CSVProvider) loadFile(ticker, path string) (*models.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 6

	var bars []models.PriceBar
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrBadPayload, path, line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(record[0], "date") {
			continue
		}
		bar, err := parseCSVBar(record)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrBadPayload, path, line, err)
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, ErrEmptyHistory
	}

	series, err := models.NewPriceSeries(ticker, bars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return series, nil
}

func parseCSVBar(record []string) (models.PriceBar, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return models.PriceBar{}, fmt.Errorf("bad date %q", record[0])
	}
	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return models.PriceBar{}, fmt.Errorf("bad field %q", record[i+1])
		}
		vals[i] = v
	}
	return models.PriceBar{
		Date:   date,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
