package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/ports"
)

// ParseTradeDate parses user-entered date text in "DD/MM" or "DD/MM/YYYY"
// form. With the two-part form the year defaults to the current calendar year
// of now. Impossible calendar dates (e.g. 31/02) are rejected.
func ParseTradeDate(text string, now time.Time) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 2 && len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ports.ErrInvalidDate, text)
	}

	day, err := parseDatePart(parts[0], 2)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ports.ErrInvalidDate, text)
	}
	month, err := parseDatePart(parts[1], 2)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ports.ErrInvalidDate, text)
	}

	year := now.Year()
	if len(parts) == 3 {
		if len(parts[2]) != 4 {
			return time.Time{}, fmt.Errorf("%w: %q", ports.ErrInvalidDate, text)
		}
		year, err = parseDatePart(parts[2], 4)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ports.ErrInvalidDate, text)
		}
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (31/02 becomes 02/03), so
	// an impossible calendar date shows up as a round-trip mismatch.
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ports.ErrInvalidDate, text)
	}
	return date, nil
}

func parseDatePart(s string, maxDigits int) (int, error) {
	if s == "" || len(s) > maxDigits {
		return 0, fmt.Errorf("bad date component %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad date component %q", s)
	}
	return n, nil
}

// ParseAmount parses user-entered net profit text. Both "." and "," are
// accepted as the decimal separator. Parsing goes through decimal to keep the
// entered digits exact before the float64 conversion.
func ParseAmount(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" || strings.Count(s, ",")+strings.Count(s, ".") > 1 {
		return 0, fmt.Errorf("%w: %q", ports.ErrInvalidAmount, text)
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ports.ErrInvalidAmount, text)
	}
	f, _ := d.Float64()
	return f, nil
}
