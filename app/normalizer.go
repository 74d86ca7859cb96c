package app

import (
	"sort"

	"reddlag/domain/core"
	"reddlag/domain/series"
)

// NormalizeReddCounts reshapes the wide survey sheet into one
// observation per (local population, year), summing sub-population
// counts within a population.
//
// Missing sub-population cells sum as ZERO: a population whose
// sub-populations were all unsurveyed in a year aggregates to 0, not
// missing. Unreliable zeros are handled afterwards by the exclusion
// list, which this step must not anticipate.
//
// The population complex label is looked up per local population; when
// source rows disagree the first-seen label wins and an
// AMBIGUOUS_COMPLEX warning is recorded. A population with no complex
// label at all is a hard error.
func NormalizeReddCounts(table *series.WideReddTable, targetComplex string) ([]series.Observation, []series.Warning, error) {
	var warnings []series.Warning

	// First-seen complex label per local population
	complexByPop := make(map[string]string)
	popOrder := make([]string, 0)
	for _, row := range table.Rows {
		kept, seen := complexByPop[row.LocalPopulation]
		if !seen {
			complexByPop[row.LocalPopulation] = row.Complex
			popOrder = append(popOrder, row.LocalPopulation)
			continue
		}
		if row.Complex != "" && kept != "" && row.Complex != kept {
			warnings = append(warnings, series.NewWarning(series.WarnAmbiguousComplex,
				"local population %q labeled both %q and %q, keeping first-seen %q",
				row.LocalPopulation, kept, row.Complex, kept))
		}
		if kept == "" && row.Complex != "" {
			// First row had no label; adopt the first non-empty one
			complexByPop[row.LocalPopulation] = row.Complex
		}
	}
	for _, pop := range popOrder {
		if complexByPop[pop] == "" {
			return nil, warnings, core.NewMissingJoinKeyError("population complex", pop)
		}
	}

	// Sum sub-populations, missing-as-zero
	totals := make(map[string]map[core.Year]float64, len(popOrder))
	for _, pop := range popOrder {
		byYear := make(map[core.Year]float64, len(table.Years))
		for _, year := range table.Years {
			byYear[year] = 0
		}
		totals[pop] = byYear
	}
	for _, row := range table.Rows {
		byYear := totals[row.LocalPopulation]
		for _, year := range table.Years {
			if v, ok := row.Counts[year]; ok && !series.IsMissing(v) {
				byYear[year] += v
			}
		}
	}

	out := make([]series.Observation, 0)
	for _, pop := range popOrder {
		if complexByPop[pop] != targetComplex {
			continue
		}
		years := make([]core.Year, 0, len(totals[pop]))
		for y := range totals[pop] {
			years = append(years, y)
		}
		sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
		for _, year := range years {
			total := totals[pop][year]
			out = append(out, series.Observation{
				LocalPopulation: pop,
				Year:            year,
				RawCount:        total,
				FilteredCount:   total,
			})
		}
	}

	return out, warnings, nil
}
