package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"reddlag/domain/core"
	"reddlag/domain/series"
)

// Tokens the survey office uses for "not surveyed" cells
var missingTokens = map[string]bool{
	"":    true,
	"na":  true,
	"n/a": true,
	"-":   true,
	".":   true,
}

// Timestamp layouts accepted in the reservoir series export
var timestampLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

// ParseWideReddTable interprets the raw redd-count sheet: metadata
// columns identify the sub-population, every four-digit header is a
// survey year.
func ParseWideReddTable(t *TableData, cfg SourceConfig) (*series.WideReddTable, error) {
	popCol, ok := t.FindHeader(cfg.LocalPopulationColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.LocalPopulationColumn, "redd count sheet")
	}
	subCol, ok := t.FindHeader(cfg.SubPopulationColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.SubPopulationColumn, "redd count sheet")
	}
	complexCol, ok := t.FindHeader(cfg.ComplexColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.ComplexColumn, "redd count sheet")
	}
	lifeCol, _ := t.FindHeader(cfg.LifeHistoryColumn) // optional

	yearCols := make(map[string]core.Year)
	years := make([]core.Year, 0)
	for _, h := range t.Headers {
		if y, ok := parseYearHeader(h); ok {
			yearCols[h] = y
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("%w: redd count sheet has no year columns", core.ErrMalformedInput)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })

	rows := make([]series.WideReddRow, 0, len(t.Rows))
	for i, raw := range t.Rows {
		pop := raw[popCol]
		if pop == "" {
			return nil, fmt.Errorf("%w: redd count row %d has no %s", core.ErrMalformedInput, i+2, popCol)
		}
		counts := make(map[core.Year]float64, len(yearCols))
		for header, year := range yearCols {
			v, err := parseCount(raw[header])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: %v", core.ErrMalformedInput, i+2, header, err)
			}
			counts[year] = v
		}
		row := series.WideReddRow{
			LocalPopulation: pop,
			SubPopulation:   raw[subCol],
			Complex:         raw[complexCol],
			Counts:          counts,
		}
		if lifeCol != "" {
			row.LifeHistory = raw[lifeCol]
		}
		rows = append(rows, row)
	}

	return &series.WideReddTable{Years: years, Rows: rows}, nil
}

// ParseExclusions interprets the known-bad observation sheet
func ParseExclusions(t *TableData, cfg SourceConfig) ([]series.Exclusion, error) {
	yearCol, ok := t.FindHeader(cfg.YearColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.YearColumn, "exclusion sheet")
	}
	popCol, ok := t.FindHeader(cfg.LocalPopulationColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.LocalPopulationColumn, "exclusion sheet")
	}

	out := make([]series.Exclusion, 0, len(t.Rows))
	for i, raw := range t.Rows {
		year, err := strconv.Atoi(raw[yearCol])
		if err != nil {
			return nil, fmt.Errorf("%w: exclusion row %d has year %q", core.ErrMalformedInput, i+2, raw[yearCol])
		}
		pop := raw[popCol]
		if pop == "" {
			return nil, fmt.Errorf("%w: exclusion row %d has no %s", core.ErrMalformedInput, i+2, popCol)
		}
		out = append(out, series.Exclusion{Year: core.Year(year), LocalPopulation: pop})
	}
	return out, nil
}

// ParseReservoirSeries interprets the timestamped pool volume export
func ParseReservoirSeries(t *TableData, cfg SourceConfig) ([]series.PoolReading, error) {
	tsCol, ok := t.FindHeader(cfg.TimestampColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.TimestampColumn, "reservoir series")
	}
	volCol, ok := t.FindHeader(cfg.PoolVolumeColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.PoolVolumeColumn, "reservoir series")
	}

	out := make([]series.PoolReading, 0, len(t.Rows))
	for i, raw := range t.Rows {
		if isMissingToken(raw[volCol]) {
			// Gauge outages leave holes in the export; skip them
			continue
		}
		ts, err := parseTimestamp(raw[tsCol])
		if err != nil {
			return nil, fmt.Errorf("%w: reservoir row %d: %v", core.ErrMalformedInput, i+2, err)
		}
		vol, err := strconv.ParseFloat(raw[volCol], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: reservoir row %d has volume %q", core.ErrMalformedInput, i+2, raw[volCol])
		}
		out = append(out, series.PoolReading{Timestamp: ts, VolumeAF: vol})
	}
	return out, nil
}

// ParseSnowpackSeries interprets the annual April 1 SWE file
func ParseSnowpackSeries(t *TableData, cfg SourceConfig) ([]series.AnnualValue, error) {
	yearCol, ok := t.FindHeader(cfg.WaterYearColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.WaterYearColumn, "snowpack series")
	}
	sweCol, ok := t.FindHeader(cfg.SWEColumn)
	if !ok {
		return nil, core.NewColumnMissingError(cfg.SWEColumn, "snowpack series")
	}

	out := make([]series.AnnualValue, 0, len(t.Rows))
	for i, raw := range t.Rows {
		if isMissingToken(raw[sweCol]) {
			continue
		}
		year, err := strconv.Atoi(raw[yearCol])
		if err != nil {
			return nil, fmt.Errorf("%w: snowpack row %d has water year %q", core.ErrMalformedInput, i+2, raw[yearCol])
		}
		swe, err := strconv.ParseFloat(raw[sweCol], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: snowpack row %d has SWE %q", core.ErrMalformedInput, i+2, raw[sweCol])
		}
		out = append(out, series.AnnualValue{Year: core.Year(year), Value: swe})
	}
	return out, nil
}

func parseYearHeader(header string) (core.Year, bool) {
	if len(header) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(header)
	if err != nil || y < 1900 || y > 2200 {
		return 0, false
	}
	return core.Year(y), true
}

func parseCount(cell string) (float64, error) {
	if isMissingToken(cell) {
		return series.Missing(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("count %q is not numeric", cell)
	}
	return v, nil
}

func isMissingToken(cell string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(cell))]
}

func parseTimestamp(cell string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q matches no known layout", cell)
}
