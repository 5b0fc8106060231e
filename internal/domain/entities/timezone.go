package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimezoneLocation supports:
// - IANA tz like "Europe/Moscow"
// - "UTC" / "GMT"
// - fixed offsets: "UTC+3", "UTC-7", "UTC+5:30", "+3", "-03:30"
func ParseTimezoneLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" || strings.EqualFold(tz, "UTC") || strings.EqualFold(tz, "GMT") {
		return time.UTC, nil
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offset, ok := parseUTCOffset(tz)
	if !ok {
		return nil, fmt.Errorf("unsupported timezone %q", tz)
	}

	sign, abs := "+", offset
	if offset < 0 {
		sign, abs = "-", -offset
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/3600, (abs%3600)/60)

	return time.FixedZone(name, offset), nil
}

// parseUTCOffset returns the offset in seconds for "+3", "-03:30", "UTC+5:30".
func parseUTCOffset(tz string) (int, bool) {
	s := strings.TrimSpace(tz)
	if strings.HasPrefix(strings.ToUpper(s), "UTC") {
		s = strings.TrimSpace(s[3:])
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}

	hh, mm, found := strings.Cut(s[1:], ":")
	if !found {
		mm = "0"
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 14 || m < 0 || m >= 60 {
		return 0, false
	}

	return sign * (h*3600 + m*60), true
}

// CalendarDay truncates t to midnight of its calendar day in loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of calendar days from a to b in loc.
// It is negative when b is before a.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	da := CalendarDay(a, loc)
	db := CalendarDay(b, loc)

	// Dates are compared at noon UTC so DST shifts do not change the count.
	ua := time.Date(da.Year(), da.Month(), da.Day(), 12, 0, 0, 0, time.UTC)
	ub := time.Date(db.Year(), db.Month(), db.Day(), 12, 0, 0, 0, time.UTC)

	return int(ub.Sub(ua).Hours() / 24)
}
