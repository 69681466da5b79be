package listing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

var months = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// ParseTimestamp converts a listing timestamp such as
// "Sun Oct 12 11:02:03 PDT 2014" to an absolute time. Weekday, month and
// time zone abbreviations are resolved with fixed US tables, so the
// result does not depend on the locale of the machine. Zones maps zone
// abbreviations to offsets in "-0700" form.
func ParseTimestamp(s string, zones map[string]string) (time.Time, error) {
	var zero time.Time
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return zero, fmt.Errorf("timestamp %q: expected 6 fields, got %d",
			s, len(fields))
	}
	wdName, monName, dayStr, hms, tzName, yearStr :=
		fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	// weekday must be known but is not checked against the date
	if _, ok := weekdays[wdName]; !ok {
		return zero, fmt.Errorf("timestamp %q: unknown weekday %q", s, wdName)
	}
	mon, ok := months[monName]
	if !ok {
		return zero, fmt.Errorf("timestamp %q: unknown month %q", s, monName)
	}
	offStr, ok := zones[tzName]
	if !ok {
		return zero, fmt.Errorf("timestamp %q: unknown time zone %q", s, tzName)
	}
	off, err := parseOffset(offStr)
	if err != nil {
		return zero, fmt.Errorf("timestamp %q: %w", s, err)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return zero, fmt.Errorf("timestamp %q: bad day %q", s, dayStr)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return zero, fmt.Errorf("timestamp %q: bad year %q", s, yearStr)
	}
	clock, err := time.Parse("15:04:05", hms)
	if err != nil {
		return zero, fmt.Errorf("timestamp %q: bad time %q", s, hms)
	}

	loc := time.FixedZone(tzName, off)
	res := time.Date(year, mon, day,
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
	if res.Day() != day {
		return zero, fmt.Errorf("timestamp %q: day %d out of range", s, day)
	}
	return res, nil
}

// parseOffset converts "-0700" to seconds east of UTC.
func parseOffset(s string) (int, error) {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("bad zone offset %q", s)
	}
	hh, err1 := strconv.Atoi(s[1:3])
	mm, err2 := strconv.Atoi(s[3:5])
	if err1 != nil || err2 != nil {
		return 0, fmt.Errorf("bad zone offset %q", s)
	}
	res := hh*3600 + mm*60
	if s[0] == '-' {
		res = -res
	}
	return res, nil
}
