package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	localTimeLayout = "2006-01-02T15:04:05"
	localDateLayout = "2006-01-02"
)

// Layouts accepted on input. Browsers' datetime-local inputs omit seconds.
var localTimeParseLayouts = []string{
	localTimeLayout,
	"2006-01-02T15:04",
	time.RFC3339,
}

// LocalTime is a timezone-naive timestamp. The whole system runs in server-local
// time: TIMESTAMP columns in Postgres, ISO-8601 local date-times on the wire.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{t.Truncate(time.Second)}
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(localTimeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range localTimeParseLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date-time %q", s)
}

// Scan implements sql.Scanner so pgx can read TIMESTAMP columns into LocalTime.
func (t *LocalTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		parsed, err := time.ParseInLocation(localTimeLayout, v, time.Local)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into LocalTime", src)
}

func (t LocalTime) Value() (driver.Value, error) {
	return t.Time, nil
}

// LocalDate is a calendar date with no time component.
type LocalDate struct {
	time.Time
}

func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

func DateOf(t time.Time) LocalDate {
	return NewLocalDate(t.Year(), t.Month(), t.Day())
}

func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.ParseInLocation(localDateLayout, s, time.Local)
	if err != nil {
		return LocalDate{}, fmt.Errorf("invalid date %q", s)
	}
	return LocalDate{t}, nil
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(localDateLayout) + `"`), nil
}

func (d *LocalDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseLocalDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d LocalDate) String() string {
	return d.Format(localDateLayout)
}

func (d LocalDate) AddDays(n int) LocalDate {
	return LocalDate{d.AddDate(0, 0, n)}
}

// StartOfDay returns the date's midnight instant, used as a query bound.
func (d LocalDate) StartOfDay() time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
}

// NextDay returns midnight of the following day, the exclusive upper bound that
// makes a date inclusive in [from 00:00, to+1 00:00) filters.
func (d LocalDate) NextDay() time.Time {
	return d.AddDays(1).StartOfDay()
}

// WeekMonday returns the Monday of the ISO week containing d.
func (d LocalDate) WeekMonday() LocalDate {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// WeekSunday returns the Sunday of the ISO week containing d.
func (d LocalDate) WeekSunday() LocalDate {
	return d.WeekMonday().AddDays(6)
}

// MonthStart returns the first day of d's calendar month.
func (d LocalDate) MonthStart() LocalDate {
	return NewLocalDate(d.Year(), d.Month(), 1)
}

// MonthEnd returns the last day of d's calendar month.
func (d LocalDate) MonthEnd() LocalDate {
	return LocalDate{d.MonthStart().AddDate(0, 1, -1)}
}

func (d LocalDate) Equal(other LocalDate) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}

// SecondsBetween returns the whole seconds elapsed from start to end.
func SecondsBetween(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}
