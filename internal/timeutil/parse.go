package timeutil

import "time"

// Formats carrying their own offset, tried in order.
var offsetFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z",
}

// Local-time formats the upstream uses for airport-local timestamps.
var localFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseInZone parses a provider timestamp. Values with an explicit offset
// keep it; bare local times are interpreted in tzName (an IANA zone name),
// falling back to UTC when the zone is absent or unknown.
func ParseInZone(value, tzName string) (time.Time, error) {
	for _, format := range offsetFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}

	loc := time.UTC
	if tzName != "" {
		if l, err := time.LoadLocation(tzName); err == nil {
			loc = l
		}
	}
	for _, format := range localFormats {
		if t, err := time.ParseInLocation(format, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   value,
		Message: "unable to parse time string",
	}
}
