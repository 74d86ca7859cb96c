package app

import (
	"reddlag/domain/core"
	"reddlag/domain/model"
	"reddlag/ports"
)

// TrendResidualKey is the column key of the detrended response
const TrendResidualKey = "trend_residual"

// Detrend fits the response as a linear function of year and returns
// the trend fit plus per-row residuals aligned 1:1 with the input.
// The input must be complete; callers filter missing years first.
// Fewer than 3 points cannot anchor a trend line and residuals.
func Detrend(statistics ports.Statistics, years []core.Year, response []float64) (*model.LinearFit, []float64, error) {
	if len(response) < 3 {
		return nil, nil, core.NewInsufficientDataError(3, len(response))
	}

	yearVals := make([]float64, len(years))
	for i, y := range years {
		yearVals[i] = float64(y)
	}

	formula := model.NewFormula("total_redds", "year")
	fit, err := statistics.FitLinear(formula, response, map[string][]float64{"year": yearVals})
	if err != nil {
		return nil, nil, err
	}

	residuals := make([]float64, len(fit.Residuals))
	copy(residuals, fit.Residuals)

	return fit, residuals, nil
}
