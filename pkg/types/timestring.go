package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	timeLayout     = "15:04"
	minutesPerHour = 60
	// MinutesPerDay is the upper bound of a TimeString, "24:00" marks the end of the day
	MinutesPerDay = 24 * minutesPerHour
)

// ErrInvalidTimeString is returned when a value is not a valid HH:MM time of day
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString is a time of day in HH:MM form, stored in TIME columns
type TimeString string

// NewTimeString builds a TimeString from the clock part of t
func NewTimeString(t time.Time) TimeString {
	return FromMinutes(t.Hour()*minutesPerHour + t.Minute())
}

// NewTimeStringFromString parses and validates an HH:MM value
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes builds a TimeString from minutes since midnight
func FromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour))
}

// Validate checks the HH:MM format and range 00:00..24:00
func (t TimeString) Validate() error {
	_, err := t.parse()
	return err
}

// Minutes returns minutes since midnight, or -1 for an invalid value
func (t TimeString) Minutes() int {
	m, err := t.parse()
	if err != nil {
		return -1
	}
	return m
}

// AddMinutes shifts the time by the given number of minutes within the same day
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.parse()
	if err != nil {
		return "", err
	}
	result := m + minutes
	if result < 0 || result > MinutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min leaves the day", ErrInvalidTimeString, t, minutes)
	}
	return FromMinutes(result), nil
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// IsZero reports whether the value is unset
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Scan implements sql.Scanner for TIME columns
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// scanString принимает "HH:MM" и "HH:MM:SS" (формат Postgres TIME)
func (t *TimeString) scanString(s string) error {
	if len(s) >= len("15:04:05") {
		s = s[:len(timeLayout)]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func (t TimeString) parse() (int, error) {
	s := string(t)
	if len(s) != len(timeLayout) || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if s == "24:00" {
		return MinutesPerDay, nil
	}
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return parsed.Hour()*minutesPerHour + parsed.Minute(), nil
}
