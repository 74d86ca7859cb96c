package app

import (
	"math"
	"testing"

	"reddlag/adapters/gonumstats"
	"reddlag/domain/model"
)

// scriptedStats fakes the statistics port with a fixed p-value table:
// steps[i][name] is the p-value returned when step i tests dropping
// name from the current model. Step index is how many predictors have
// already been removed.
type scriptedStats struct {
	t       *testing.T
	initial int
	steps   []map[string]float64
}

func (s *scriptedStats) FitLinear(formula model.Formula, response []float64, data map[string][]float64) (*model.LinearFit, error) {
	return &model.LinearFit{Formula: formula, N: len(response)}, nil
}

func (s *scriptedStats) LikelihoodRatioTest(full, reduced *model.LinearFit) (float64, error) {
	step := s.initial - len(full.Formula.Predictors)
	if step < 0 || step >= len(s.steps) {
		s.t.Fatalf("unscripted step %d", step)
	}
	dropped := ""
	for _, name := range full.Formula.Predictors {
		if !reduced.Formula.Contains(name) {
			dropped = name
			break
		}
	}
	p, ok := s.steps[step][dropped]
	if !ok {
		s.t.Fatalf("step %d: no scripted p-value for dropping %q", step, dropped)
	}
	return p, nil
}

func (s *scriptedStats) VarianceInflationFactors(data map[string][]float64, order []string) (map[string]float64, error) {
	out := make(map[string]float64, len(order))
	for _, name := range order {
		out[name] = 1.0
	}
	return out, nil
}

var stubData = map[string][]float64{"a": {1, 2, 3}, "b": {4, 5, 6}, "c": {7, 8, 9}}
var stubResponse = []float64{1, 2, 3}

func TestSelect_DropsLargestPValueAboveThreshold(t *testing.T) {
	stats := &scriptedStats{t: t, initial: 3, steps: []map[string]float64{
		{"a": 0.01, "b": 0.73, "c": 0.04},
		{"a": 0.02, "c": 0.01},
	}}
	eliminator := NewBackwardEliminator(stats, 0.05)

	result, err := eliminator.Select(model.NewFormula("y", "a", "b", "c"), stubResponse, stubData)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if len(result.Trace) != 1 {
		t.Fatalf("expected exactly one drop, got trace %+v", result.Trace)
	}
	step := result.Trace[0]
	if step.Step != 1 || step.Dropped != "b" || step.PValue != 0.73 {
		t.Errorf("unexpected first step %+v", step)
	}
	if len(step.Remaining) != 2 || step.Remaining[0] != "a" || step.Remaining[1] != "c" {
		t.Errorf("remaining predictors should keep declaration order, got %v", step.Remaining)
	}
	final := result.Final.Formula
	if len(final.Predictors) != 2 || final.Predictors[0] != "a" || final.Predictors[1] != "c" {
		t.Errorf("unexpected final model %s", final)
	}
}

func TestSelect_TieDropsFirstDeclared(t *testing.T) {
	stats := &scriptedStats{t: t, initial: 3, steps: []map[string]float64{
		{"a": 0.5, "b": 0.5, "c": 0.01},
		{"b": 0.5, "c": 0.01},
		{"c": 0.01},
	}}
	eliminator := NewBackwardEliminator(stats, 0.05)

	result, err := eliminator.Select(model.NewFormula("y", "a", "b", "c"), stubResponse, stubData)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if len(result.Trace) != 2 {
		t.Fatalf("expected two single-drop steps, got %+v", result.Trace)
	}
	if result.Trace[0].Dropped != "a" {
		t.Errorf("tie at step 1 should drop first-declared a, got %q", result.Trace[0].Dropped)
	}
	if result.Trace[1].Dropped != "b" {
		t.Errorf("step 2 should drop b, got %q", result.Trace[1].Dropped)
	}
	if got := result.Final.Formula.Predictors; len(got) != 1 || got[0] != "c" {
		t.Errorf("unexpected final predictors %v", got)
	}
}

func TestSelect_PValueEqualToAlphaIsKept(t *testing.T) {
	stats := &scriptedStats{t: t, initial: 1, steps: []map[string]float64{
		{"a": 0.05},
	}}
	eliminator := NewBackwardEliminator(stats, 0.05)

	result, err := eliminator.Select(model.NewFormula("y", "a"), stubResponse, stubData)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(result.Trace) != 0 {
		t.Errorf("p exactly at the threshold must not drop, got %+v", result.Trace)
	}
}

func TestSelect_EmptyTraceIsValidTerminalState(t *testing.T) {
	stats := &scriptedStats{t: t, initial: 2, steps: []map[string]float64{
		{"a": 0.001, "b": 0.002},
	}}
	eliminator := NewBackwardEliminator(stats, 0.05)

	saturated := model.NewFormula("y", "a", "b")
	result, err := eliminator.Select(saturated, stubResponse, stubData)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if result.DroppedCount() != 0 {
		t.Errorf("expected no drops, got %d", result.DroppedCount())
	}
	if result.Final.Formula.String() != saturated.String() {
		t.Errorf("final should equal saturated, got %s", result.Final.Formula)
	}
}

func TestSelect_CanEmptyTheModel(t *testing.T) {
	stats := &scriptedStats{t: t, initial: 2, steps: []map[string]float64{
		{"a": 0.9, "b": 0.8},
		{"b": 0.6},
	}}
	eliminator := NewBackwardEliminator(stats, 0.05)

	result, err := eliminator.Select(model.NewFormula("y", "a", "b"), stubResponse, stubData)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(result.Trace) != 2 {
		t.Fatalf("expected both predictors dropped, got %+v", result.Trace)
	}
	if len(result.Final.Formula.Predictors) != 0 {
		t.Errorf("expected the intercept-only model, got %s", result.Final.Formula)
	}
	if result.Final.Formula.String() != "y ~ 1" {
		t.Errorf("unexpected intercept-only rendering %q", result.Final.Formula)
	}
}

func TestSelect_IntegrationDropsIrrelevantPredictor(t *testing.T) {
	// Response is an exact linear function of x1 and x2; x3 is noise the
	// model never needed. Elimination must remove x3 and stop.
	n := 30
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	x3 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = float64(i + 1)
		x2[i] = float64((i * i) % 17)
		x3[i] = float64((i * 7) % 13)
		y[i] = 10 + 4*x1[i] - 3*x2[i]
	}
	data := map[string][]float64{"x1": x1, "x2": x2, "x3": x3}

	eliminator := NewBackwardEliminator(gonumstats.New(), 0.05)
	result, err := eliminator.Select(model.NewFormula("y", "x1", "x2", "x3"), y, data)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if len(result.Trace) != 1 || result.Trace[0].Dropped != "x3" {
		t.Fatalf("expected x3 dropped and nothing else, got %+v", result.Trace)
	}
	if result.Trace[0].PValue < 0.99 {
		t.Errorf("dropping an irrelevant predictor from an exact fit should score p near 1, got %v",
			result.Trace[0].PValue)
	}

	final := result.Final
	if len(final.Formula.Predictors) != 2 {
		t.Fatalf("unexpected final model %s", final.Formula)
	}
	if math.Abs(final.Coefficients[model.InterceptKey]-10) > 1e-6 ||
		math.Abs(final.Coefficients["x1"]-4) > 1e-6 ||
		math.Abs(final.Coefficients["x2"]+3) > 1e-6 {
		t.Errorf("final coefficients drifted: %+v", final.Coefficients)
	}
}
