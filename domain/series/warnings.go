package series

import "fmt"

// Warning codes for data-quality findings. These ride along with the
// series instead of aborting the run; only structural errors are fatal.
const (
	WarnAmbiguousComplex    = "AMBIGUOUS_COMPLEX"
	WarnExcludedObservation = "EXCLUDED_OBSERVATION"
	WarnUnmatchedExclusion  = "UNMATCHED_EXCLUSION"
	WarnCovariateGap        = "COVARIATE_GAP"
	WarnHighVIF             = "HIGH_VIF"
)

// Warning is a structured data-quality finding attached to a series
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewWarning creates a warning with a formatted message
func NewWarning(code, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}
