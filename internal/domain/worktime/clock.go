package worktime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const secondsPerDay = 24 * 60 * 60

// Clock is a time of day within a single calendar day, stored as seconds since midnight.
type Clock int

// NewClock builds a Clock from its components.
func NewClock(hour, minute, second int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid time of day %02d:%02d:%02d", hour, minute, second)
	}
	return Clock(hour*3600 + minute*60 + second), nil
}

// MustClock is NewClock for literals; it panics on invalid input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClock accepts "HH:MM" and "HH:MM:SS". A missing seconds part is treated as ":00".
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	values := [3]int{}
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 || !allDigits(p) {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		values[i], _ = strconv.Atoi(p)
	}
	return NewClock(values[0], values[1], values[2])
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ClockOf returns the time of day of t in t's location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// Hour returns the hour of the day, 0-23.
func (c Clock) Hour() int { return int(c) / 3600 }

// Minute returns the minute of the hour, 0-59.
func (c Clock) Minute() int { return int(c) % 3600 / 60 }

// Second returns the second of the minute, 0-59.
func (c Clock) Second() int { return int(c) % 60 }

// String formats the clock as zero-padded HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

// Before reports whether c is strictly earlier in the day than o.
func (c Clock) Before(o Clock) bool { return c < o }

// After reports whether c is strictly later in the day than o.
func (c Clock) After(o Clock) bool { return c > o }

// MinutesUntil returns whole minutes from c to o. Negative when o is earlier.
func (c Clock) MinutesUntil(o Clock) int {
	return (int(o) - int(c)) / 60
}

// MarshalJSON encodes the clock as an "HH:MM:SS" string.
func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts the formats of ParseClock.
func (c *Clock) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ClockPtr converts a nullable TIME column into a *Clock.
func ClockPtr(t pgtype.Time) *Clock {
	if !t.Valid {
		return nil
	}
	c := Clock((t.Microseconds / 1_000_000) % secondsPerDay)
	return &c
}

// PGTime converts a *Clock into a nullable TIME parameter.
func PGTime(c *Clock) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*c) * 1_000_000, Valid: true}
}

// Earliest returns the smallest non-nil clock, or nil.
func Earliest(clocks ...*Clock) *Clock {
	var out *Clock
	for _, c := range clocks {
		if c == nil {
			continue
		}
		if out == nil || *c < *out {
			v := *c
			out = &v
		}
	}
	return out
}

// Latest returns the greatest non-nil clock, or nil.
func Latest(clocks ...*Clock) *Clock {
	var out *Clock
	for _, c := range clocks {
		if c == nil {
			continue
		}
		if out == nil || *c > *out {
			v := *c
			out = &v
		}
	}
	return out
}
