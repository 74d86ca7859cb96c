package app

import (
	"github.com/montanaflynn/stats"
)

// ResponseSummary is the descriptive summary of the combined response
type ResponseSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// SummarizeResponse computes descriptive statistics for the report
func SummarizeResponse(values []float64) (ResponseSummary, error) {
	summary := ResponseSummary{Count: len(values)}
	if len(values) == 0 {
		return summary, nil
	}

	var err error
	if summary.Mean, err = stats.Mean(values); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(values); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(values); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(values); err != nil {
		return summary, err
	}
	if summary.StdDev, err = stats.StandardDeviation(values); err != nil {
		return summary, err
	}
	return summary, nil
}
