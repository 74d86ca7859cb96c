package gonumstats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"reddlag/domain/core"
	"reddlag/domain/model"
	"reddlag/domain/series"
)

// rssFloor keeps the deviance statistic finite when a model fits the
// data to machine precision: both sides of the ratio are floored so a
// saturated perfect fit tests an irrelevant predictor at p -> 1
// instead of NaN.
const rssFloor = 1e-12

// Provider implements ports.Statistics on top of gonum: ordinary least
// squares through a QR factorization, the Gaussian deviance form of the
// likelihood-ratio test against a chi-squared reference, and VIF via
// auxiliary regressions.
type Provider struct{}

// New creates a gonum-backed statistics provider
func New() *Provider {
	return &Provider{}
}

// FitLinear fits response ~ intercept + predictors by OLS
func (p *Provider) FitLinear(formula model.Formula, response []float64, data map[string][]float64) (*model.LinearFit, error) {
	n := len(response)
	k := len(formula.Predictors)

	// One more observation than coefficients, or the residuals are degenerate
	if n < k+2 {
		return nil, core.NewInsufficientDataError(k+2, n)
	}
	for i, v := range response {
		if series.IsMissing(v) {
			return nil, fmt.Errorf("%w: missing %s at row %d", core.ErrMalformedInput, formula.Response, i)
		}
	}

	columns := make([][]float64, k)
	for j, name := range formula.Predictors {
		col, ok := data[name]
		if !ok {
			return nil, core.NewColumnMissingError(name, "model data")
		}
		if len(col) != n {
			return nil, fmt.Errorf("%w: predictor %q has %d values for %d observations",
				core.ErrColumnLength, name, len(col), n)
		}
		for i, v := range col {
			if series.IsMissing(v) {
				return nil, fmt.Errorf("%w: missing %s at row %d", core.ErrMalformedInput, name, i)
			}
		}
		columns[j] = col
	}

	coefficients := make(map[string]float64, k+1)
	if k == 1 {
		// Simple regression has a closed form; no need for the QR path
		alpha, beta := stat.LinearRegression(columns[0], response, nil, false)
		if math.IsNaN(alpha) || math.IsNaN(beta) {
			return nil, fmt.Errorf("%w: predictor %q is constant", core.ErrSingularFit, formula.Predictors[0])
		}
		coefficients[model.InterceptKey] = alpha
		coefficients[formula.Predictors[0]] = beta
	} else {
		beta, err := solveOLS(response, columns)
		if err != nil {
			return nil, err
		}
		coefficients[model.InterceptKey] = beta[0]
		for j, name := range formula.Predictors {
			coefficients[name] = beta[j+1]
		}
	}

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		pred := coefficients[model.InterceptKey]
		for j, name := range formula.Predictors {
			pred += coefficients[name] * columns[j][i]
		}
		fitted[i] = pred
		residuals[i] = response[i] - pred
		rss += residuals[i] * residuals[i]
	}

	return &model.LinearFit{
		Formula:       formula,
		Coefficients:  coefficients,
		Fitted:        fitted,
		Residuals:     residuals,
		RSS:           rss,
		RSquared:      rSquared(response, rss),
		LogLikelihood: gaussianLogLikelihood(n, rss),
		N:             n,
	}, nil
}

// LikelihoodRatioTest compares nested Gaussian linear models using the
// deviance statistic n*ln(RSS_reduced/RSS_full) against chi-squared(df)
func (p *Provider) LikelihoodRatioTest(full, reduced *model.LinearFit) (float64, error) {
	df := len(full.Formula.Predictors) - len(reduced.Formula.Predictors)
	if df <= 0 {
		return 0, fmt.Errorf("%w: reduced model must have fewer predictors", core.ErrNotNested)
	}
	if full.N != reduced.N {
		return 0, fmt.Errorf("%w: models fit on %d vs %d observations", core.ErrNotNested, full.N, reduced.N)
	}
	for _, name := range reduced.Formula.Predictors {
		if !full.Formula.Contains(name) {
			return 0, fmt.Errorf("%w: %q is not in the full model", core.ErrNotNested, name)
		}
	}

	rssFull := math.Max(full.RSS, rssFloor)
	rssReduced := math.Max(reduced.RSS, rssFloor)
	statistic := float64(full.N) * math.Log(rssReduced/rssFull)
	if statistic < 0 {
		statistic = 0
	}

	chi := distuv.ChiSquared{K: float64(df)}
	return chi.Survival(statistic), nil
}

// VarianceInflationFactors regresses each predictor on the others and
// returns VIF_j = 1/(1-R²_j). With fewer than two predictors every VIF
// is 1 by definition.
func (p *Provider) VarianceInflationFactors(data map[string][]float64, order []string) (map[string]float64, error) {
	vifs := make(map[string]float64, len(order))
	if len(order) < 2 {
		for _, name := range order {
			if _, ok := data[name]; !ok {
				return nil, core.NewColumnMissingError(name, "model data")
			}
			vifs[name] = 1.0
		}
		return vifs, nil
	}

	for _, name := range order {
		target, ok := data[name]
		if !ok {
			return nil, core.NewColumnMissingError(name, "model data")
		}
		aux := model.NewFormula(name, removeName(order, name)...)
		fit, err := p.FitLinear(aux, target, data)
		if err != nil {
			return nil, fmt.Errorf("auxiliary regression for %q: %w", name, err)
		}
		if fit.RSquared >= 1-rssFloor {
			vifs[name] = math.Inf(1)
			continue
		}
		vifs[name] = 1.0 / (1.0 - fit.RSquared)
	}
	return vifs, nil
}

// solveOLS solves for [intercept, beta_1..beta_k] via QR factorization
func solveOLS(response []float64, columns [][]float64) ([]float64, error) {
	n := len(response)
	k := len(columns)

	design := mat.NewDense(n, k+1, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1.0)
		for j := 0; j < k; j++ {
			design.Set(i, j+1, columns[j][i])
		}
	}

	var qr mat.QR
	qr.Factorize(design)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, mat.NewVecDense(n, response)); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSingularFit, err)
	}

	out := make([]float64, k+1)
	for j := range out {
		out[j] = beta.AtVec(j)
	}
	return out, nil
}

func rSquared(response []float64, rss float64) float64 {
	mean := stat.Mean(response, nil)
	tss := 0.0
	for _, v := range response {
		d := v - mean
		tss += d * d
	}
	if tss == 0 {
		return 0
	}
	return 1 - rss/tss
}

// gaussianLogLikelihood is the maximized log-likelihood of an OLS fit
// with the variance at its MLE rss/n
func gaussianLogLikelihood(n int, rss float64) float64 {
	fn := float64(n)
	return -0.5 * fn * (math.Log(2*math.Pi) + math.Log(math.Max(rss, rssFloor)/fn) + 1)
}

func removeName(names []string, drop string) []string {
	out := make([]string, 0, len(names)-1)
	for _, name := range names {
		if name != drop {
			out = append(out, name)
		}
	}
	return out
}
