package app

import (
	"fmt"

	"reddlag/domain/core"
	"reddlag/domain/series"
)

// LagColumnKey names the column a covariate gets at a given lag. Lag 0
// keeps the covariate's own key; lag k appends a _lagk suffix.
func LagColumnKey(key core.CovariateKey, lag int) string {
	if lag == 0 {
		return key.String()
	}
	return fmt.Sprintf("%s_lag%d", key, lag)
}

// AttachLags left-joins a covariate onto the frame at each requested
// lag: row year Y gets the covariate's value at Y-k, or missing when
// the covariate has no observation there. Each (covariate, lag) pair
// becomes an independent column.
//
// The join is a pure function of its inputs - the covariate is read
// only and the input frame is never mutated - so repeated identical
// calls are idempotent and joins of different covariates commute.
func AttachLags(frame *series.Frame, covariate series.Covariate, lags []int) (*series.Frame, error) {
	years := frame.Years()
	out := frame
	for _, lag := range lags {
		if lag < 0 {
			return nil, fmt.Errorf("%w: got %d", core.ErrNegativeLag, lag)
		}
		values := make([]float64, len(years))
		for i, year := range years {
			if v, ok := covariate.Value(year.Minus(lag)); ok {
				values[i] = v
			} else {
				values[i] = series.Missing()
			}
		}
		next, err := out.WithColumn(LagColumnKey(covariate.Key(), lag), values)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
