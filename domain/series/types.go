package series

import (
	"fmt"
	"math"
	"sort"
	"time"

	"reddlag/domain/core"
)

// Missing returns the sentinel for an absent numeric value.
// Annual series carry IEEE NaN for missing observations so that a
// missing count stays distinct from a true zero.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether a value is the missing sentinel
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// WideReddRow is one raw spreadsheet row: a single sub-population with
// one count per survey year.
type WideReddRow struct {
	LocalPopulation string
	SubPopulation   string
	Complex         string
	LifeHistory     string
	Counts          map[core.Year]float64 // missing counts are NaN
}

// WideReddTable is the wide-form redd count sheet as loaded
type WideReddTable struct {
	Years []core.Year // the year columns present in the sheet, ascending
	Rows  []WideReddRow
}

// Observation is one local population in one year after aggregation.
// RawCount keeps the value as summed from the sheet; FilteredCount is
// what downstream analysis must use and is NaN once an exclusion hits.
type Observation struct {
	LocalPopulation string
	Year            core.Year
	RawCount        float64
	FilteredCount   float64
}

// Key returns the (year, local population) join key for this observation
func (o Observation) Key() string {
	return ObservationKey(o.Year, o.LocalPopulation)
}

// Exclusion marks one (year, local population) pair as undercounted
type Exclusion struct {
	Year            core.Year
	LocalPopulation string
}

// Key returns the exclusion's join key
func (e Exclusion) Key() string {
	return ObservationKey(e.Year, e.LocalPopulation)
}

// ObservationKey builds the year-plus-population key used for exclusion
// matching. The separator keeps (201, "1A") and (2011, "A") distinct.
func ObservationKey(year core.Year, localPopulation string) string {
	return fmt.Sprintf("%d|%s", year, localPopulation)
}

// AnnualValue is one (year, value) point of an annual series
type AnnualValue struct {
	Year  core.Year
	Value float64
}

// PoolReading is one timestamped reservoir pool volume observation
type PoolReading struct {
	Timestamp time.Time
	VolumeAF  float64
}

// Covariate is an annual covariate series indexed by year.
// It is immutable after construction; lag joins read from it only.
type Covariate struct {
	key    core.CovariateKey
	values map[core.Year]float64
}

// NewCovariate builds a covariate series from annual points.
// A duplicate year is a structural error, not a silent overwrite.
func NewCovariate(key core.CovariateKey, points []AnnualValue) (Covariate, error) {
	values := make(map[core.Year]float64, len(points))
	for _, p := range points {
		if _, seen := values[p.Year]; seen {
			return Covariate{}, fmt.Errorf("%w: %s year %d", core.ErrDuplicateYear, key, p.Year)
		}
		values[p.Year] = p.Value
	}
	return Covariate{key: key, values: values}, nil
}

// Key returns the covariate's column key
func (c Covariate) Key() core.CovariateKey {
	return c.key
}

// Value returns the covariate observation for a year, if one exists
func (c Covariate) Value(year core.Year) (float64, bool) {
	v, ok := c.values[year]
	return v, ok
}

// Len returns the number of observed years
func (c Covariate) Len() int {
	return len(c.values)
}

// Years returns the observed years in ascending order
func (c Covariate) Years() []core.Year {
	years := make([]core.Year, 0, len(c.values))
	for y := range c.values {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	return years
}
