package timeline

import (
	"fmt"
	"strings"
	"time"
)

// Timezone policies accepted by ParseLocation besides IANA names.
const (
	TimezoneUTC   = "utc"
	TimezoneLocal = "local"
)

// ParseLocation resolves the day-bucketing timezone. It accepts "utc"
// (the default for an empty name), "local", or an IANA zone name such as
// "Europe/Berlin".
func ParseLocation(name string) (*time.Location, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TimezoneUTC:
		return time.UTC, nil
	case TimezoneLocal:
		return time.Local, nil
	}
	loc, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
