package converter

import (
	"fmt"
	"time"
)

// Time returns a converter parsing strings with the given layout (see
// time.Parse). Only strings and time.Time values are accepted.
func Time(layout string) Converter {
	return timeConverter{layout: layout, loc: time.UTC}
}

// TimeInLocation is like Time but interprets values without zone
// information in loc.
func TimeInLocation(layout string, loc *time.Location) Converter {
	if loc == nil {
		loc = time.UTC
	}
	return timeConverter{layout: layout, loc: loc}
}

type timeConverter struct {
	layout string
	loc    *time.Location
}

func (c timeConverter) Convert(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nilError("time")
	case time.Time:
		return v, nil
	case string:
		t, err := time.ParseInLocation(c.layout, v, c.loc)
		if err != nil {
			return nil, newError(
				"conversion.time_format",
				fmt.Sprintf("does not match format %s", c.layout),
				map[string]any{"value": v, "format": c.layout},
				err,
			)
		}
		return t, nil
	default:
		return nil, newError(
			"conversion.time",
			"not a valid date/time",
			map[string]any{"got": fmt.Sprintf("%T", raw), "format": c.layout},
			ErrUnsupportedType,
		)
	}
}
