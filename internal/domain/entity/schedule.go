package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format of calendar dates (YYYY-MM-DD)
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format of times of day (HH:mm, 24h)
	TimeLayout = "15:04"

	// NotAvailable is the textual sentinel for a day without working hours
	NotAvailable = "Not Available"
)

var (
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime      = errors.New("invalid time format, use HH:mm")
	ErrInvalidTimeRange = errors.New("invalid time range, use HH:mm-HH:mm with start before end")
	ErrMissingWeekday   = errors.New("schedule must define all seven weekdays")
)

// Weekdays lists the schedule keys in display order (Monday first)
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// TimeOfDay is a wall-clock time expressed in minutes since midnight
type TimeOfDay int

// ParseTimeOfDay parses an HH:mm string
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC of that calendar date.
// The API works in a single implicit zone, so UTC only serves as a neutral carrier.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// SameDate reports whether a and b fall on the same calendar date
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TimeRange is a working window within one day. Start is always before End.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewTimeRange(start, end TimeOfDay) (TimeRange, error) {
	if start >= end {
		return TimeRange{}, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseTimeRange parses "HH:mm-HH:mm"
func ParseTimeRange(s string) (TimeRange, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}
	start, err := ParseTimeOfDay(startStr)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}
	end, err := ParseTimeOfDay(endStr)
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}
	return NewTimeRange(start, end)
}

// Contains uses an open interval: both boundary times are outside the range.
func (r TimeRange) Contains(t TimeOfDay) bool {
	return r.Start < t && t < r.End
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// DayHours is either a working range or Unavailable
type DayHours struct {
	rng       TimeRange
	available bool
}

// Hours returns a working day with the given range
func Hours(r TimeRange) DayHours {
	return DayHours{rng: r, available: true}
}

// Unavailable returns a day off
func Unavailable() DayHours {
	return DayHours{}
}

// ParseDayHours accepts either "HH:mm-HH:mm" or the "Not Available" sentinel
func ParseDayHours(s string) (DayHours, error) {
	if strings.TrimSpace(s) == NotAvailable {
		return Unavailable(), nil
	}
	r, err := ParseTimeRange(s)
	if err != nil {
		return DayHours{}, err
	}
	return Hours(r), nil
}

func (d DayHours) Range() (TimeRange, bool) {
	return d.rng, d.available
}

func (d DayHours) String() string {
	if !d.available {
		return NotAvailable
	}
	return d.rng.String()
}

// WeeklySchedule maps every weekday to its working hours
type WeeklySchedule map[time.Weekday]DayHours

// ParseWeeklySchedule converts {"Monday": "18:00-20:00", ...} into a schedule.
// All seven weekdays must be present.
func ParseWeeklySchedule(raw map[string]string) (WeeklySchedule, error) {
	schedule := make(WeeklySchedule, len(Weekdays))
	for _, day := range Weekdays {
		value, ok := raw[day.String()]
		if !ok {
			return nil, fmt.Errorf("%w: %s is missing", ErrMissingWeekday, day)
		}
		hours, err := ParseDayHours(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", day, err)
		}
		schedule[day] = hours
	}
	if len(raw) != len(Weekdays) {
		return nil, fmt.Errorf("%w: unknown weekday key in schedule", ErrMissingWeekday)
	}
	return schedule, nil
}

// Strings renders the schedule in its wire form
func (s WeeklySchedule) Strings() map[string]string {
	out := make(map[string]string, len(Weekdays))
	for _, day := range Weekdays {
		out[day.String()] = s[day].String()
	}
	return out
}

// Value stores the schedule as its JSON wire form
func (s WeeklySchedule) Value() (driver.Value, error) {
	raw, err := json.Marshal(s.Strings())
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan reads a schedule written by Value
func (s *WeeklySchedule) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan weekly schedule: unsupported type %T", src)
	}

	var days map[string]string
	if err := json.Unmarshal(raw, &days); err != nil {
		return fmt.Errorf("scan weekly schedule: %w", err)
	}
	schedule, err := ParseWeeklySchedule(days)
	if err != nil {
		return err
	}
	*s = schedule
	return nil
}

// RangeFor returns the working range for a weekday; false means Unavailable
func (s WeeklySchedule) RangeFor(day time.Weekday) (TimeRange, bool) {
	return s[day].Range()
}

// WeekdayOf returns the Gregorian weekday of a calendar date
func WeekdayOf(date time.Time) time.Weekday {
	return date.Weekday()
}

// OpenOn reports whether the schedule has working hours on the date's weekday.
// Sundays are always closed.
func OpenOn(schedule WeeklySchedule, date time.Time) (TimeRange, bool) {
	day := WeekdayOf(date)
	if day == time.Sunday {
		return TimeRange{}, false
	}
	return schedule.RangeFor(day)
}

// IsOpen reports whether t on date falls strictly inside the day's working range
func IsOpen(schedule WeeklySchedule, date time.Time, t TimeOfDay) bool {
	rng, ok := OpenOn(schedule, date)
	if !ok {
		return false
	}
	return rng.Contains(t)
}
