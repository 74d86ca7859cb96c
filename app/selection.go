package app

import (
	"reddlag/domain/model"
	"reddlag/ports"
)

// DefaultAlpha is the elimination significance threshold
const DefaultAlpha = 0.05

// BackwardEliminator runs backward stepwise selection over a saturated
// linear model. Each step refits the current model once per included
// predictor with that predictor removed, scores the removal by
// likelihood-ratio p-value, and drops the single least-significant
// predictor - the one with the LARGEST p-value above the threshold.
// When no removal exceeds the threshold the current model is terminal.
type BackwardEliminator struct {
	statistics ports.Statistics
	alpha      float64
}

// NewBackwardEliminator creates an eliminator; a non-positive alpha
// falls back to the 0.05 default
func NewBackwardEliminator(statistics ports.Statistics, alpha float64) *BackwardEliminator {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	return &BackwardEliminator{statistics: statistics, alpha: alpha}
}

// Select runs elimination to the minimal adequate model.
//
// Exactly one predictor is dropped per step, ties included: candidates
// are scanned in the saturated model's declaration order with a strict
// greater-than comparison, so an equal p-value never displaces an
// earlier predictor and the first-declared of a tie is removed first.
// A saturated model that loses nothing is a valid terminal state with
// an empty trace.
func (e *BackwardEliminator) Select(saturated model.Formula, response []float64, data map[string][]float64) (*model.SelectionResult, error) {
	current := saturated
	fit, err := e.statistics.FitLinear(current, response, data)
	if err != nil {
		return nil, err
	}

	trace := make([]model.EliminationStep, 0)
	for len(current.Predictors) > 0 {
		worstIdx := -1
		worstP := e.alpha
		var worstFit *model.LinearFit

		for i, name := range current.Predictors {
			reduced, err := e.statistics.FitLinear(current.Without(name), response, data)
			if err != nil {
				return nil, err
			}
			p, err := e.statistics.LikelihoodRatioTest(fit, reduced)
			if err != nil {
				return nil, err
			}
			if p > worstP {
				worstIdx = i
				worstP = p
				worstFit = reduced
			}
		}

		if worstIdx < 0 {
			break // every removal is significant; terminal state
		}

		dropped := current.Predictors[worstIdx]
		current = current.Without(dropped)
		fit = worstFit

		remaining := make([]string, len(current.Predictors))
		copy(remaining, current.Predictors)
		trace = append(trace, model.EliminationStep{
			Step:      len(trace) + 1,
			Dropped:   dropped,
			PValue:    worstP,
			Remaining: remaining,
		})
	}

	return &model.SelectionResult{
		Saturated: saturated,
		Final:     fit,
		Trace:     trace,
		Alpha:     e.alpha,
	}, nil
}
