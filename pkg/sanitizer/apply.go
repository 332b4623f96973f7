package sanitizer

// Apply runs value through transforms in order. Nil transforms are skipped.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		if transform != nil {
			value = transform(value)
		}
	}
	return value
}

// Compose builds a reusable pipeline out of transforms. The returned function
// is as safe for concurrent use as the transforms it wraps.
func Compose[T any](transforms ...func(T) T) func(T) T {
	chain := make([]func(T) T, 0, len(transforms))
	for _, transform := range transforms {
		if transform != nil {
			chain = append(chain, transform)
		}
	}
	return func(value T) T {
		return Apply(value, chain...)
	}
}
