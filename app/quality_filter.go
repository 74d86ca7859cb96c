package app

import (
	"reddlag/domain/series"
)

// ApplyExclusions masks known-undercounted observations. Each
// observation whose (year, local population) key appears in the
// exclusion list gets a missing FilteredCount; RawCount is kept beside
// it untouched so the raw sheet value stays inspectable. Exclusion keys
// that match no observation are surfaced as warnings - a stale
// exclusion row usually means a renamed population.
func ApplyExclusions(observations []series.Observation, exclusions []series.Exclusion) ([]series.Observation, []series.Warning) {
	excluded := make(map[string]bool, len(exclusions))
	for _, e := range exclusions {
		excluded[e.Key()] = true
	}

	var warnings []series.Warning
	matched := make(map[string]bool, len(exclusions))

	out := make([]series.Observation, len(observations))
	for i, obs := range observations {
		out[i] = obs
		if excluded[obs.Key()] {
			out[i].FilteredCount = series.Missing()
			matched[obs.Key()] = true
			warnings = append(warnings, series.NewWarning(series.WarnExcludedObservation,
				"%s %d marked missing by exclusion list (raw count %.0f)",
				obs.LocalPopulation, obs.Year, obs.RawCount))
		}
	}

	for _, e := range exclusions {
		if !matched[e.Key()] {
			warnings = append(warnings, series.NewWarning(series.WarnUnmatchedExclusion,
				"exclusion (%d, %q) matched no observation", e.Year, e.LocalPopulation))
		}
	}

	return out, warnings
}
