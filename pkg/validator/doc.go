// Package validator provides the second phase of the formkit field pipeline:
// rules that check, and optionally normalise, an already converted value.
//
// A Validator never coerces types. It receives a value of the type produced
// by the field's converter and either returns it (possibly normalised, e.g.
// trimmed) or fails with a *ValidationError. Every validator is usable on a
// bare value with no field or schema involved:
//
//	v, err := validator.Min(0).Validate(-3)
//	// err.Error() == "must be >= 0"
//
// # Architecture
//
// Each source file groups a family of rules (string_rules.go,
// numeric_rules.go, pattern_rules.go, ...). Rules are plain values built by
// constructor functions; there is no global state, so validators are safe
// for concurrent use once constructed.
//
// Core building blocks:
//   - Validator         – interface with a single Validate method
//   - Func              – adapter for ordinary functions
//   - ValidationError   – a single failure with translation metadata
//   - ValidationErrors  – several failures reported at once (All, Each)
//   - Chain / All       – short-circuit and accumulating compositions
//
// # Usage
//
//	name := validator.Chain(
//	    validator.Trim(),
//	    validator.NotEmpty(),
//	    validator.MaxLength(64),
//	)
//	clean, err := name.Validate("  Ann  ") // "Ann", nil
//
// # Error Handling
//
// ValidationError carries a Message plus TranslationKey and
// TranslationValues so callers can render localised messages. Use
// IsValidationError and ExtractValidationErrors to inspect results.
package validator
