// Package marketdata loads daily OHLCV bars from CSV files and live
// WebSocket feeds, and validates them before they reach storage or the
// backtest engine.
package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"futures-risk-lab/internal/domain"
)

// csv column layout: datetime,Open,High,Low,Close,Volume
const csvColumns = 6

// dateLayouts are tried in order when parsing the datetime column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// LoadCSV reads bars for one symbol from a CSV file.
// Rows must be ordered by datetime ASC; ordering is checked by Validate,
// not here.
func LoadCSV(path, symbol string) ([]*domain.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	bars, err := ParseCSV(f, symbol)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return bars, nil
}

// ParseCSV reads bars from a CSV stream with a header row.
func ParseCSV(r io.Reader, symbol string) ([]*domain.Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < csvColumns {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), csvColumns)
	}

	var bars []*domain.Bar
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		bar, err := parseRow(record, symbol)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func parseRow(record []string, symbol string) (*domain.Bar, error) {
	if len(record) < csvColumns {
		return nil, fmt.Errorf("row has %d columns, want %d", len(record), csvColumns)
	}

	ts, err := parseDatetime(record[0])
	if err != nil {
		return nil, err
	}

	fields := make([]float64, 5)
	for i, name := range []string{"open", "high", "low", "close", "volume"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", name, record[i+1], err)
		}
		fields[i] = v
	}

	return &domain.Bar{
		Symbol:      symbol,
		TimestampMs: ts,
		Open:        fields[0],
		High:        fields[1],
		Low:         fields[2],
		Close:       fields[3],
		Volume:      fields[4],
	}, nil
}

func parseDatetime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("parse datetime %q", s)
}
