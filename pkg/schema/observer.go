package schema

import "time"

// Outcome classifies how a single field was resolved.
type Outcome string

const (
	OutcomeValid           Outcome = "valid"
	OutcomeDefault         Outcome = "default"
	OutcomeMissing         Outcome = "missing"
	OutcomeConversionError Outcome = "conversion_error"
	OutcomeValidationError Outcome = "validation_error"
)

// Observer is notified of every field outcome and of every completed run.
// Implementations must be safe for concurrent use when the schema is shared.
type Observer interface {
	ObserveField(schema, field string, outcome Outcome)
	ObserveResult(schema string, valid bool, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveField(string, string, Outcome) {}
func (nopObserver) ObserveResult(string, bool, time.Duration) {}
