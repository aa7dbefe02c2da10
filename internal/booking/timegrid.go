package booking

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts "HH:mm" (single digit hour allowed) into minutes after midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// FormatClock renders minutes after midnight as zero padded "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OnGrid reports whether t is a well formed clock value starting on the hour or half hour.
func OnGrid(t string) bool {
	m := clockPattern.FindStringSubmatch(t)
	if m == nil {
		return false
	}
	return m[2] == "00" || m[2] == "30"
}

// Overlaps is the half-open interval test: touching endpoints do not overlap.
func Overlaps(startA, endA, startB, endB int64) bool {
	return startA < endB && endA > startB
}

// ParseDate returns midnight of the given YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDate)
	}
	return d, nil
}

// FormatDate renders the calendar date part of t.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Days yields every calendar day from start to end inclusive. It yields nothing
// when end precedes start.
func Days(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Interval is an absolute half-open time span.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the span starting startMinutes after midnight of day.
func NewInterval(day time.Time, startMinutes, duration int) Interval {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, startMinutes, 0, 0, day.Location())
	return Interval{Start: start, End: start.Add(time.Duration(duration) * time.Minute)}
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.Start.UnixNano(), i.End.UnixNano(), o.Start.UnixNano(), o.End.UnixNano())
}
