package flow

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrBadAmount covers both unparseable and non-positive amounts; the user
// sees a single corrective message for either.
var ErrBadAmount = errors.New("amount must be a positive number")

var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
}

// ParseDate validates a typed day.month.year date.
func ParseDate(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q does not match dd.mm.yyyy", input)
}

// ParseAmount parses a decimal amount, accepting a comma as the separator.
func ParseAmount(input string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrBadAmount
	}
	return v, nil
}
