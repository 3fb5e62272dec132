package rules

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without a time of day. The zero value means the
// date has not been provided.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf keeps the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be formatted as YYYY-MM-DD", ErrInvalidInput, value)
	}

	return DateOf(t), nil
}

func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(time.DateOnly)
}

func (d Date) Before(other Date) bool {
	return d.epochDay() < other.epochDay()
}

// epochDay counts days since 1970-01-01. Midnight UTC carries no DST offset,
// so consecutive dates always differ by exactly one.
func (d Date) epochDay() int64 {
	return d.Time().Unix() / 86400
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}

type DateRange struct {
	Pickup  Date `json:"pickupDate"`
	Dropoff Date `json:"dropoffDate"`
}

func (r DateRange) Complete() bool {
	return !r.Pickup.IsZero() && !r.Dropoff.IsZero()
}
