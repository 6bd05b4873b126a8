// Package alerts computes the derived display status of deadlines,
// reviews and hearings. Every function takes the reference time
// explicitly and performs no I/O.
package alerts

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// ParseError reports a date or time string that none of the accepted
// layouts match.
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Value, e.Reason)
}

var fechaLayouts = []string{"2006-01-02", "02/01/2006"}

var horaLayouts = []string{"15:04:05", "15:04"}

// ParseFecha parses a calendar date as midnight in loc. Accepted formats
// are YYYY-MM-DD and DD/MM/YYYY. Timestamps such as
// 2025-03-01T10:00:00Z are accepted and keep only their date part.
func ParseFecha(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Value: raw, Reason: "empty"}
	}
	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}
	for _, layout := range fechaLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Value: raw, Reason: "expected YYYY-MM-DD or DD/MM/YYYY"}
}

// ParseHora parses HH:MM or HH:MM:SS into an offset from midnight.
func ParseHora(s string) (time.Duration, error) {
	raw := s
	s = strings.TrimSpace(s)
	for _, layout := range horaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, &ParseError{Value: raw, Reason: "expected HH:MM or HH:MM:SS"}
}

// CombineFechaHora joins a calendar date and a time of day into one
// instant in loc.
func CombineFechaHora(fecha, hora string, loc *time.Location) (time.Time, error) {
	d, err := ParseFecha(fecha, loc)
	if err != nil {
		return time.Time{}, err
	}
	offset, err := ParseHora(hora)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).Add(offset), nil
}

// DaysUntil is ceil((target - now) / 1 day), counted in calendar days
// of now's location so a DST shift does not move the result.
func DaysUntil(target, now time.Time) int {
	days, clock := calendarDiff(now, target, now.Location())
	if clock > 0 {
		days++
	}
	return days
}

// DaysSince is floor((now - past) / 1 day), counted like DaysUntil.
func DaysSince(past, now time.Time) int {
	days, clock := calendarDiff(past, now, now.Location())
	if clock < 0 {
		days--
	}
	return days
}

// calendarDiff splits to - from into whole calendar days and the
// difference in wall-clock time of day, both read in loc.
func calendarDiff(from, to time.Time, loc *time.Location) (int, time.Duration) {
	from, to = from.In(loc), to.In(loc)
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	days := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Sub(time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)) / day
	return int(days), wallClock(to) - wallClock(from)
}

func wallClock(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
