package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"reddlag/domain/core"
	"reddlag/domain/series"
)

// TestKit builds deterministic synthetic survey and covariate data for
// tests. Everything is seeded so a failing assertion reproduces.
type TestKit struct {
	rng *rand.Rand
}

// NewTestKit creates a kit with a fixed seed
func NewTestKit(seed int64) *TestKit {
	return &TestKit{rng: rand.New(rand.NewSource(seed))}
}

// ReddTable builds a wide survey table: each population carries the
// given complex label and subPerPop sub-population rows whose counts
// decline gently over the years with seeded jitter.
func (k *TestKit) ReddTable(populations []string, complexLabel string, subPerPop int, firstYear core.Year, yearCount int) *series.WideReddTable {
	years := make([]core.Year, yearCount)
	for i := range years {
		years[i] = firstYear + core.Year(i)
	}

	rows := make([]series.WideReddRow, 0, len(populations)*subPerPop)
	for _, pop := range populations {
		for s := 0; s < subPerPop; s++ {
			counts := make(map[core.Year]float64, yearCount)
			base := 40.0 + 20.0*k.rng.Float64()
			for i, year := range years {
				decline := base - 0.8*float64(i)
				jitter := 6.0 * (k.rng.Float64() - 0.5)
				v := decline + jitter
				if v < 0 {
					v = 0
				}
				counts[year] = float64(int(v))
			}
			rows = append(rows, series.WideReddRow{
				LocalPopulation: pop,
				SubPopulation:   fmt.Sprintf("%s-%d", pop, s+1),
				Complex:         complexLabel,
				LifeHistory:     "adfluvial",
				Counts:          counts,
			})
		}
	}
	return &series.WideReddTable{Years: years, Rows: rows}
}

// PoolReadings builds a sub-annual reservoir series: twelve monthly
// readings per year with a late-summer drawdown trough.
func (k *TestKit) PoolReadings(firstYear core.Year, yearCount int) []series.PoolReading {
	readings := make([]series.PoolReading, 0, yearCount*12)
	for i := 0; i < yearCount; i++ {
		year := int(firstYear) + i
		full := 180000.0 + 15000.0*k.rng.Float64()
		trough := 40000.0 + 30000.0*k.rng.Float64()
		for month := 1; month <= 12; month++ {
			// September is the deepest drawdown month
			dist := float64(month - 9)
			level := trough + (full-trough)*(dist*dist)/81.0
			if level > full {
				level = full
			}
			readings = append(readings, series.PoolReading{
				Timestamp: time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC),
				VolumeAF:  level,
			})
		}
	}
	return readings
}

// Snowpack builds an annual April 1 SWE series with seeded variation
func (k *TestKit) Snowpack(firstYear core.Year, yearCount int) []series.AnnualValue {
	out := make([]series.AnnualValue, yearCount)
	for i := range out {
		out[i] = series.AnnualValue{
			Year:  firstYear + core.Year(i),
			Value: 20.0 + 18.0*k.rng.Float64(),
		}
	}
	return out
}

// Noise returns a seeded noise vector with the given scale
func (k *TestKit) Noise(n int, scale float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = scale * k.rng.NormFloat64()
	}
	return out
}

// Sequence returns [start, start+step, ...] of length n
func Sequence(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
