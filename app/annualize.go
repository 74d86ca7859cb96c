package app

import (
	"github.com/montanaflynn/stats"

	"reddlag/domain/core"
	"reddlag/domain/series"
)

// MinPoolKey is the column key of the annual reservoir minimum
const MinPoolKey core.CovariateKey = "min_pool_af"

// AnnualMinimumPool reduces the sub-annual pool volume series to its
// minimum per calendar year: the drawdown depth covariate. Years with
// no readings simply have no observation; the lag join turns those
// into missing values downstream.
func AnnualMinimumPool(readings []series.PoolReading) (series.Covariate, error) {
	if len(readings) == 0 {
		return series.Covariate{}, core.NewInsufficientDataError(1, 0)
	}

	byYear := make(map[core.Year][]float64)
	for _, r := range readings {
		year := core.YearOf(r.Timestamp)
		byYear[year] = append(byYear[year], r.VolumeAF)
	}

	points := make([]series.AnnualValue, 0, len(byYear))
	for year, volumes := range byYear {
		minVol, err := stats.Min(volumes)
		if err != nil {
			return series.Covariate{}, err
		}
		points = append(points, series.AnnualValue{Year: year, Value: minVol})
	}

	return series.NewCovariate(MinPoolKey, points)
}
