package app

import (
	"time"

	"reddlag/domain/core"
	"reddlag/domain/model"
	"reddlag/domain/series"
	"reddlag/internal"
	"reddlag/ports"
)

// SnowpackKey is the column key of the April 1 SWE covariate
const SnowpackKey core.CovariateKey = "swe_apr"

// TotalReddsKey is the column key of the combined response
const TotalReddsKey = "total_redds"

// highVIFThreshold flags predictors whose variance inflation suggests
// the lag columns are too collinear to separate
const highVIFThreshold = 10.0

// Inputs are the fully loaded raw tables one run consumes
type Inputs struct {
	ReddTable    *series.WideReddTable
	Exclusions   []series.Exclusion
	PoolReadings []series.PoolReading
	Snowpack     []series.AnnualValue
}

// Options are the domain parameters of one run
type Options struct {
	TargetComplex string
	Populations   []string
	MinYear       core.Year
	MaxLag        int
	Alpha         float64
}

// Result is everything one run produces, immutable once returned
type Result struct {
	RunID     core.RunID
	StartedAt time.Time
	Elapsed   time.Duration

	Frame     *series.Frame
	Combined  []series.AnnualValue
	Trend     *model.LinearFit
	Selection *model.SelectionResult
	VIF       map[string]float64
	Summary   ResponseSummary

	ObservationCount int
	ModeledYears     int
}

// Warnings returns the run's accumulated data-quality findings
func (r *Result) Warnings() []series.Warning {
	return r.Frame.Warnings()
}

// Pipeline runs the whole analysis: normalize, filter, combine,
// lag-join, detrend, select. It is a single-pass batch computation
// with no shared mutable state; every step hands an immutable value to
// the next.
type Pipeline struct {
	statistics ports.Statistics
	log        *internal.Logger
}

// NewPipeline creates a pipeline over a statistics provider
func NewPipeline(statistics ports.Statistics, logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{statistics: statistics, log: logger.With("Pipeline")}
}

// Run executes one analysis pass over fully loaded inputs
func (p *Pipeline) Run(in Inputs, opts Options) (*Result, error) {
	started := time.Now()
	runID := core.NewRunID()
	p.log.Info("run %s: %d survey rows, %d exclusions, %d pool readings, %d snowpack years",
		runID, len(in.ReddTable.Rows), len(in.Exclusions), len(in.PoolReadings), len(in.Snowpack))

	// Normalize and quality-filter the survey data
	observations, normWarnings, err := NormalizeReddCounts(in.ReddTable, opts.TargetComplex)
	if err != nil {
		return nil, err
	}
	observations, filterWarnings := ApplyExclusions(observations, in.Exclusions)

	// Combine the selected populations into the annual response
	combined, err := CombineSeries(observations, opts.Populations, opts.MinYear)
	if err != nil {
		return nil, err
	}
	if len(combined) < 3 {
		return nil, core.NewInsufficientDataError(3, len(combined))
	}
	p.log.Info("combined response covers %d years (%d..%d)",
		len(combined), combined[0].Year, combined[len(combined)-1].Year)

	years := make([]core.Year, len(combined))
	totals := make([]float64, len(combined))
	for i, av := range combined {
		years[i] = av.Year
		totals[i] = av.Value
	}

	frame := series.NewFrame(years).WithWarnings(normWarnings...).WithWarnings(filterWarnings...)
	frame, err = frame.WithColumn(TotalReddsKey, totals)
	if err != nil {
		return nil, err
	}

	// Attach the drawdown covariate at lags 0..MaxLag and the
	// snowpack covariate at lags 0..1
	minPool, err := AnnualMinimumPool(in.PoolReadings)
	if err != nil {
		return nil, err
	}
	frame, err = AttachLags(frame, minPool, lagRange(opts.MaxLag))
	if err != nil {
		return nil, err
	}

	snowpack, err := series.NewCovariate(SnowpackKey, in.Snowpack)
	if err != nil {
		return nil, err
	}
	frame, err = AttachLags(frame, snowpack, []int{0, 1})
	if err != nil {
		return nil, err
	}

	// Detrend the response
	trend, residuals, err := Detrend(p.statistics, years, totals)
	if err != nil {
		return nil, err
	}
	frame, err = frame.WithColumn(TrendResidualKey, residuals)
	if err != nil {
		return nil, err
	}

	// Saturated model over the detrended response, complete cases only
	predictorKeys := make([]string, 0, opts.MaxLag+3)
	for _, lag := range lagRange(opts.MaxLag) {
		predictorKeys = append(predictorKeys, LagColumnKey(MinPoolKey, lag))
	}
	predictorKeys = append(predictorKeys, LagColumnKey(SnowpackKey, 0), LagColumnKey(SnowpackKey, 1))

	response, data, dropped := completeCases(frame, TrendResidualKey, predictorKeys)
	if dropped > 0 {
		frame = frame.WithWarnings(series.NewWarning(series.WarnCovariateGap,
			"%d of %d years dropped from modeling for missing covariates", dropped, frame.Len()))
	}
	if len(response) < len(predictorKeys)+2 {
		return nil, core.NewInsufficientDataError(len(predictorKeys)+2, len(response))
	}

	// Collinearity diagnostics on the saturated design
	vifs, err := p.statistics.VarianceInflationFactors(data, predictorKeys)
	if err != nil {
		return nil, err
	}
	for _, name := range predictorKeys {
		if vifs[name] > highVIFThreshold {
			frame = frame.WithWarnings(series.NewWarning(series.WarnHighVIF,
				"predictor %s has VIF %.1f", name, vifs[name]))
		}
	}

	// Backward elimination to the minimal adequate model
	saturated := model.NewFormula(TrendResidualKey, predictorKeys...)
	eliminator := NewBackwardEliminator(p.statistics, opts.Alpha)
	selection, err := eliminator.Select(saturated, response, data)
	if err != nil {
		return nil, err
	}
	p.log.Info("selection dropped %d of %d predictors; final model: %s",
		selection.DroppedCount(), len(saturated.Predictors), selection.Final.Formula)

	summary, err := SummarizeResponse(totals)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:            runID,
		StartedAt:        started,
		Elapsed:          time.Since(started),
		Frame:            frame,
		Combined:         combined,
		Trend:            trend,
		Selection:        selection,
		VIF:              vifs,
		Summary:          summary,
		ObservationCount: len(observations),
		ModeledYears:     len(response),
	}, nil
}

// lagRange returns lags 0..maxLag inclusive
func lagRange(maxLag int) []int {
	lags := make([]int, maxLag+1)
	for i := range lags {
		lags[i] = i
	}
	return lags
}

// completeCases extracts the response and predictor columns restricted
// to rows where every predictor is observed, keeping row order.
// Returns the number of rows dropped.
func completeCases(frame *series.Frame, responseKey string, predictorKeys []string) ([]float64, map[string][]float64, int) {
	response, _ := frame.Column(responseKey)
	columns := make(map[string][]float64, len(predictorKeys))
	for _, key := range predictorKeys {
		col, _ := frame.Column(key)
		columns[key] = col
	}

	keep := make([]int, 0, frame.Len())
	for i := 0; i < frame.Len(); i++ {
		complete := !series.IsMissing(response[i])
		for _, key := range predictorKeys {
			if series.IsMissing(columns[key][i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	outResponse := make([]float64, len(keep))
	outData := make(map[string][]float64, len(predictorKeys))
	for _, key := range predictorKeys {
		outData[key] = make([]float64, len(keep))
	}
	for j, i := range keep {
		outResponse[j] = response[i]
		for _, key := range predictorKeys {
			outData[key][j] = columns[key][i]
		}
	}

	return outResponse, outData, frame.Len() - len(keep)
}
