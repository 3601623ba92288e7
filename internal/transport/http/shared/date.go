package shared

import "time"

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses the date formats the screens submit: plain YYYY-MM-DD
// from date inputs, RFC3339 from calendar payloads. Empty input is a zero
// time, not an error; Required handles presence separately.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
