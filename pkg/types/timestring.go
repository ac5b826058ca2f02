package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat is the canonical wall-clock format used across the service
const TimeFormat = "15:04"

var (
	// ErrInvalidFormat is returned when the value is not a valid HH:MM string
	ErrInvalidFormat = errors.New("types: invalid time string format")

	// ErrOutOfRange is returned when time arithmetic would leave the current day
	ErrOutOfRange = errors.New("types: time is out of day range")

	// ErrUnsupportedScan is returned when scanning an unsupported source type
	ErrUnsupportedScan = errors.New("types: unsupported scan source")
)

// TimeString is a wall-clock time of day in "HH:MM" form.
// It deliberately has no date or timezone attached: schedules and slots
// operate on minutes within a single day.
type TimeString string

// NewTimeString builds a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfRange, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
// time.Parse alone is too lenient: it accepts "9:00", so the two-digit
// shape is checked first.
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != len(TimeFormat) || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if _, err := time.Parse(TimeFormat, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	// after Validate the digits are guaranteed
	h := int(t[0]-'0')*10 + int(t[1]-'0')
	m := int(t[3]-'0')*10 + int(t[4]-'0')
	return h*60 + m, nil
}

// AddMinutes returns the time n minutes later within the same day.
// Crossing midnight is an error: the scheduling model never wraps a
// working window or an appointment over the day boundary.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + n)
}

// IsBefore reports whether t is strictly earlier than other.
// Malformed values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer so the type can be written to a TIME column.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as string,
// []byte or time.Time depending on the driver path; seconds are dropped.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedScan, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME columns usually come back as "HH:MM:SS"
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
