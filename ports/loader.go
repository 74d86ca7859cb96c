package ports

import (
	"reddlag/domain/series"
)

// ReddSource loads the spawning-survey workbook: the wide per-sub-
// population count sheet and the known-bad observation sheet.
type ReddSource interface {
	LoadReddCounts() (*series.WideReddTable, error)
	LoadExclusions() ([]series.Exclusion, error)
}

// ReservoirSource loads the sub-annual reservoir pool volume series
type ReservoirSource interface {
	LoadPoolReadings() ([]series.PoolReading, error)
}

// SnowpackSource loads the annual April 1 snow-water-equivalent series
type SnowpackSource interface {
	LoadSnowpack() ([]series.AnnualValue, error)
}
