package app

import (
	"testing"

	"reddlag/domain/core"
	"reddlag/domain/series"
)

func wideTable(years []core.Year, rows ...series.WideReddRow) *series.WideReddTable {
	return &series.WideReddTable{Years: years, Rows: rows}
}

func TestNormalizeReddCounts_ZeroFillsUnsurveyedYears(t *testing.T) {
	table := wideTable(
		[]core.Year{2020, 2021, 2022},
		series.WideReddRow{
			LocalPopulation: "Indian Creek",
			SubPopulation:   "Indian Creek-1",
			Complex:         "Rimrock",
			Counts: map[core.Year]float64{
				2020: 10,
				2021: series.Missing(),
				2022: 8,
			},
		},
	)

	observations, warnings, err := NormalizeReddCounts(table, "Rimrock")
	if err != nil {
		t.Fatalf("NormalizeReddCounts failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(observations) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(observations))
	}

	// The unsurveyed 2021 cell aggregates to zero, not missing
	byYear := map[core.Year]series.Observation{}
	for _, obs := range observations {
		byYear[obs.Year] = obs
	}
	if byYear[2020].FilteredCount != 10 {
		t.Errorf("2020: expected 10, got %v", byYear[2020].FilteredCount)
	}
	if byYear[2021].FilteredCount != 0 {
		t.Errorf("2021: expected zero-fill, got %v", byYear[2021].FilteredCount)
	}
	if byYear[2022].FilteredCount != 8 {
		t.Errorf("2022: expected 8, got %v", byYear[2022].FilteredCount)
	}
}

func TestNormalizeReddCounts_SumsSubPopulations(t *testing.T) {
	table := wideTable(
		[]core.Year{2020, 2021},
		series.WideReddRow{
			LocalPopulation: "South Fork Tieton",
			SubPopulation:   "SF Tieton-1",
			Complex:         "Rimrock",
			Counts:          map[core.Year]float64{2020: 4, 2021: 5},
		},
		series.WideReddRow{
			LocalPopulation: "South Fork Tieton",
			SubPopulation:   "SF Tieton-2",
			Complex:         "Rimrock",
			Counts:          map[core.Year]float64{2020: 6, 2021: series.Missing()},
		},
	)

	observations, _, err := NormalizeReddCounts(table, "Rimrock")
	if err != nil {
		t.Fatalf("NormalizeReddCounts failed: %v", err)
	}
	if len(observations) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observations))
	}
	if observations[0].Year != 2020 || observations[0].FilteredCount != 10 {
		t.Errorf("2020: expected sum 10, got %+v", observations[0])
	}
	// One surveyed sub-population plus one unsurveyed sums as 5 + 0
	if observations[1].Year != 2021 || observations[1].FilteredCount != 5 {
		t.Errorf("2021: expected sum 5, got %+v", observations[1])
	}
}

func TestNormalizeReddCounts_FiltersByComplex(t *testing.T) {
	table := wideTable(
		[]core.Year{2020},
		series.WideReddRow{
			LocalPopulation: "Indian Creek",
			Complex:         "Rimrock",
			Counts:          map[core.Year]float64{2020: 3},
		},
		series.WideReddRow{
			LocalPopulation: "Gold Creek",
			Complex:         "Keechelus",
			Counts:          map[core.Year]float64{2020: 7},
		},
	)

	observations, _, err := NormalizeReddCounts(table, "Rimrock")
	if err != nil {
		t.Fatalf("NormalizeReddCounts failed: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("expected 1 observation after complex filter, got %d", len(observations))
	}
	if observations[0].LocalPopulation != "Indian Creek" {
		t.Errorf("unexpected population %q", observations[0].LocalPopulation)
	}
}

func TestNormalizeReddCounts_AmbiguousComplexKeepsFirstSeen(t *testing.T) {
	table := wideTable(
		[]core.Year{2020},
		series.WideReddRow{
			LocalPopulation: "Indian Creek",
			SubPopulation:   "Indian Creek-1",
			Complex:         "Rimrock",
			Counts:          map[core.Year]float64{2020: 3},
		},
		series.WideReddRow{
			LocalPopulation: "Indian Creek",
			SubPopulation:   "Indian Creek-2",
			Complex:         "Keechelus",
			Counts:          map[core.Year]float64{2020: 4},
		},
	)

	observations, warnings, err := NormalizeReddCounts(table, "Rimrock")
	if err != nil {
		t.Fatalf("NormalizeReddCounts failed: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != series.WarnAmbiguousComplex {
		t.Fatalf("expected one AMBIGUOUS_COMPLEX warning, got %v", warnings)
	}
	// First-seen label wins, so the population stays in the Rimrock set
	// and both sub-population counts still sum
	if len(observations) != 1 || observations[0].FilteredCount != 7 {
		t.Errorf("expected one observation with count 7, got %+v", observations)
	}
}

func TestNormalizeReddCounts_MissingComplexIsFatal(t *testing.T) {
	table := wideTable(
		[]core.Year{2020},
		series.WideReddRow{
			LocalPopulation: "Indian Creek",
			Complex:         "",
			Counts:          map[core.Year]float64{2020: 3},
		},
	)

	_, _, err := NormalizeReddCounts(table, "Rimrock")
	if !core.IsMissingJoinKey(err) {
		t.Errorf("expected missing join key error, got %v", err)
	}
}

func TestNormalizeReddCounts_RawEqualsFilteredBeforeExclusions(t *testing.T) {
	table := wideTable(
		[]core.Year{2020, 2021},
		series.WideReddRow{
			LocalPopulation: "Indian Creek",
			Complex:         "Rimrock",
			Counts:          map[core.Year]float64{2020: 3, 2021: series.Missing()},
		},
	)

	observations, _, err := NormalizeReddCounts(table, "Rimrock")
	if err != nil {
		t.Fatalf("NormalizeReddCounts failed: %v", err)
	}
	for _, obs := range observations {
		if obs.RawCount != obs.FilteredCount {
			t.Errorf("%s %d: raw %v differs from filtered %v before any exclusion",
				obs.LocalPopulation, obs.Year, obs.RawCount, obs.FilteredCount)
		}
	}
}
