package model

import "strings"

// InterceptKey names the intercept term in a coefficient table
const InterceptKey = "(Intercept)"

// Formula identifies a linear model: a response and an ordered set of
// predictor names. Predictor order is the declaration order of the
// saturated model and is load-bearing: backward elimination breaks
// p-value ties in favor of the first-declared predictor.
type Formula struct {
	Response   string
	Predictors []string
}

// NewFormula builds a formula, copying the predictor order
func NewFormula(response string, predictors ...string) Formula {
	ps := make([]string, len(predictors))
	copy(ps, predictors)
	return Formula{Response: response, Predictors: ps}
}

// Without returns a formula with one predictor removed, preserving the
// declared order of the rest
func (f Formula) Without(name string) Formula {
	ps := make([]string, 0, len(f.Predictors))
	for _, p := range f.Predictors {
		if p != name {
			ps = append(ps, p)
		}
	}
	return Formula{Response: f.Response, Predictors: ps}
}

// Contains reports whether a predictor is part of the formula
func (f Formula) Contains(name string) bool {
	for _, p := range f.Predictors {
		if p == name {
			return true
		}
	}
	return false
}

// String renders the formula in the conventional response ~ terms form
func (f Formula) String() string {
	if len(f.Predictors) == 0 {
		return f.Response + " ~ 1"
	}
	return f.Response + " ~ " + strings.Join(f.Predictors, " + ")
}

// LinearFit is a fitted ordinary-least-squares model. The pipeline
// treats it as opaque apart from its coefficient table, residuals and
// deviance; refitting with a predictor removed goes back through the
// statistics provider.
type LinearFit struct {
	Formula       Formula
	Coefficients  map[string]float64 // keyed by predictor name plus InterceptKey
	Fitted        []float64
	Residuals     []float64
	RSS           float64
	RSquared      float64
	LogLikelihood float64
	N             int
}

// EliminationStep records one backward-elimination drop
type EliminationStep struct {
	Step      int      `json:"step"`
	Dropped   string   `json:"dropped"`
	PValue    float64  `json:"p_value"`
	Remaining []string `json:"remaining"`
}

// SelectionResult is the terminal state of backward elimination: the
// minimal adequate model plus the ordered trace of removed terms.
// An empty trace is a valid outcome, not an error.
type SelectionResult struct {
	Saturated Formula
	Final     *LinearFit
	Trace     []EliminationStep
	Alpha     float64
}

// DroppedCount returns how many predictors were eliminated
func (r *SelectionResult) DroppedCount() int {
	return len(r.Trace)
}
