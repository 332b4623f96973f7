// Package converter turns raw, untyped input (form strings, decoded JSON or
// YAML scalars, nested maps and lists) into typed Go values.
//
// A Converter is the first phase of the formkit field pipeline, but every
// converter is also usable on its own:
//
//	age, err := converter.Int().Convert("42") // 42, nil
//	_, err = converter.Int().Convert("abc")   // *ConversionError "not a valid integer"
//
// Converters are deterministic and never mutate their input. A nil raw value
// is always rejected with a ConversionError wrapping ErrNilValue, which keeps
// "no value" distinct from an empty but present value such as "".
//
// Built-in converters:
//   - String (with Trim / NormalizeUnicode / Sanitize options)
//   - Int, Float
//   - Bool (fixed truthy / falsy tokens, overridable with BoolTokens)
//   - Time (layout-based parsing)
//   - UUID
//   - Password (keyed BLAKE2b digest of the plain-text value)
//   - Slice (element-wise conversion with per-index failures)
//   - AnyOf (first converter that succeeds)
//
// Failures are reported as *ConversionError carrying a human-readable Message
// and translation metadata. Composite converters attach structured detail in
// Cause: Slice uses ItemErrors, and the nested schema converter in package
// schema attaches the inner schema's error mapping.
package converter
