package app

import (
	"sort"

	"reddlag/domain/core"
	"reddlag/domain/series"
)

// CombineSeries sums filtered redd counts across the selected local
// populations per year. Missing propagates here: a year where ANY
// contributing population lacks a reliable count is dropped entirely,
// the opposite of the normalizer's zero-fill. The minimum-year cutoff
// is applied last, after the missing-data drop.
func CombineSeries(observations []series.Observation, populations []string, minYear core.Year) ([]series.AnnualValue, error) {
	byPop := make(map[string]map[core.Year]float64)
	for _, obs := range observations {
		if byPop[obs.LocalPopulation] == nil {
			byPop[obs.LocalPopulation] = make(map[core.Year]float64)
		}
		byPop[obs.LocalPopulation][obs.Year] = obs.FilteredCount
	}

	// A requested population with no observations at all is a wiring
	// mistake, not a data gap
	for _, pop := range populations {
		if _, ok := byPop[pop]; !ok {
			return nil, core.NewMissingJoinKeyError("observations", pop)
		}
	}

	yearSet := make(map[core.Year]bool)
	for _, pop := range populations {
		for year := range byPop[pop] {
			yearSet[year] = true
		}
	}

	out := make([]series.AnnualValue, 0, len(yearSet))
	for year := range yearSet {
		total := 0.0
		complete := true
		for _, pop := range populations {
			v, ok := byPop[pop][year]
			if !ok || series.IsMissing(v) {
				complete = false
				break
			}
			total += v
		}
		if !complete {
			continue
		}
		out = append(out, series.AnnualValue{Year: year, Value: total})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	// Cutoff after the completeness filter
	kept := out[:0]
	for _, av := range out {
		if av.Year >= minYear {
			kept = append(kept, av)
		}
	}
	return kept, nil
}
