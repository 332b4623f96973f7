package converter

// Converter coerces a raw value into a typed value.
type Converter interface {
	Convert(raw any) (any, error)
}

// Func adapts an ordinary function to the Converter interface.
type Func func(raw any) (any, error)

// Convert calls f(raw).
func (f Func) Convert(raw any) (any, error) {
	return f(raw)
}
