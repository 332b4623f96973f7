// Package sanitizer provides the string normalisation helpers shared by the
// converters and normalising validators of formkit.
//
// Every helper is a pure func(string) string, so helpers can be chained with
// Compose and plugged into converter.String or validator.Normalize:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.RemoveExtraWhitespace,
//	    sanitizer.ToLower,
//	)
//
//	clean("  Mixed   CASE Input\n") // "mixed case input"
//
// HTML stripping is backed by bluemonday's strict policy and Unicode
// normalisation and title casing by golang.org/x/text.
//
// None of the helpers returns an error and none keeps state between calls,
// so they are safe for concurrent use.
package sanitizer
