// Package datespec parses the small date vocabulary accepted by --due and
// reschedule: "today", "tomorrow", "+<n>d", "+<n>w" and YYYY-MM-DD.
package datespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// ErrInvalidExpression matches every parse failure.
var ErrInvalidExpression = errors.New("invalid date expression")

// InvalidError describes why an expression was rejected.
type InvalidError struct {
	Expr   string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidExpression, e.Expr, e.Reason)
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalidExpression
}

// Date is a calendar date with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(isoLayout)
}

// ParseISO parses a YYYY-MM-DD string.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse(isoLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &InvalidError{Expr: s, Reason: "expected YYYY-MM-DD"}
	}
	return DateOf(t), nil
}

// Parse resolves expr relative to now.
func Parse(expr string, now time.Time) (Date, error) {
	trimmed := strings.TrimSpace(expr)
	today := DateOf(now)

	switch strings.ToLower(trimmed) {
	case "":
		return Date{}, &InvalidError{Expr: expr, Reason: "empty expression"}
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	}

	if strings.HasPrefix(trimmed, "+") {
		return parseOffset(trimmed, today)
	}
	return ParseISO(trimmed)
}

func parseOffset(expr string, today Date) (Date, error) {
	if len(expr) < 3 {
		return Date{}, &InvalidError{Expr: expr, Reason: "expected +<number><d|w>"}
	}
	unit := strings.ToLower(expr[len(expr)-1:])
	num, err := strconv.Atoi(expr[1 : len(expr)-1])
	if err != nil {
		return Date{}, &InvalidError{Expr: expr, Reason: fmt.Sprintf("invalid number %q", expr[1:len(expr)-1])}
	}

	switch unit {
	case "d":
		return today.AddDays(num), nil
	case "w":
		return today.AddDays(num * 7), nil
	default:
		return Date{}, &InvalidError{Expr: expr, Reason: fmt.Sprintf("unknown unit %q", unit)}
	}
}
