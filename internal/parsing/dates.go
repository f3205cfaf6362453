package parsing

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseSince parses a user-supplied date or datetime expression into a
// concrete time. Empty input returns the zero time, meaning no filter.
func ParseSince(dateString string) (time.Time, error) {
	if strings.TrimSpace(dateString) == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(dateString)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateString)
	}
	return t, nil
}
