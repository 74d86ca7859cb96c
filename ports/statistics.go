package ports

import (
	"reddlag/domain/model"
)

// Statistics is the capability interface over the numerical ecosystem.
// The pipeline consumes linear regression, likelihood-ratio testing and
// collinearity diagnostics through this port and never computes them
// itself.
type Statistics interface {
	// FitLinear fits response ~ intercept + predictors by ordinary
	// least squares. Predictor columns are looked up in data by the
	// names in formula.Predictors; every column must match the
	// response length and contain no missing values.
	FitLinear(formula model.Formula, response []float64, data map[string][]float64) (*model.LinearFit, error)

	// LikelihoodRatioTest compares a full model against a nested
	// reduced model and returns the p-value of the deviance statistic
	// against a chi-squared reference with df equal to the difference
	// in predictor count.
	LikelihoodRatioTest(full, reduced *model.LinearFit) (float64, error)

	// VarianceInflationFactors returns the VIF of each predictor,
	// computed from auxiliary regressions of each column on the rest.
	VarianceInflationFactors(data map[string][]float64, order []string) (map[string]float64, error)
}
