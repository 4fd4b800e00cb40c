package article

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid ISO-8601 date")

const (
	persistLayout      = "2006-01-02T15:04:05-07:00"
	persistLayoutMicro = "2006-01-02T15:04:05.000000-07:00"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParsePublishedAt parses an ISO-8601 timestamp. A trailing "Z" is read as
// "+00:00"; timestamps without an offset are taken as UTC.
func ParsePublishedAt(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidDate)
	}

	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}

	// ISO-8601 allows a space between date and time.
	if len(value) > 10 && value[10] == ' ' {
		value = value[:10] + "T" + value[11:]
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatPublishedAt renders t the way it is persisted: seconds precision with
// an explicit offset, plus microseconds when present.
func FormatPublishedAt(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Truncate(time.Microsecond).Format(persistLayoutMicro)
	}
	return t.Format(persistLayout)
}
