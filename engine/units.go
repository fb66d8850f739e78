package engine

import (
	"math"
	"time"
)

const (
	lbPerKg = 2.2046226218

	// KcalPerLb is the energy equivalent of one pound of body mass.
	KcalPerLb = 3500

	// CalorieFloor is the minimum daily calorie target. Aggressive deficits
	// are silently capped here.
	CalorieFloor = 1200

	dayLayout = "2006-01-02"
)

// LbToKg converts pounds to kilograms.
func LbToKg(lb float64) float64 { return lb / lbPerKg }

// KgToLb converts kilograms to pounds.
func KgToLb(kg float64) float64 { return kg * lbPerKg }

// CmToIn converts centimeters to inches.
func CmToIn(cm float64) float64 { return cm / 2.54 }

// InToCm converts inches to centimeters.
func InToCm(in float64) float64 { return in * 2.54 }

// Round1 rounds to one decimal place.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// ParseDay parses a YYYY-MM-DD calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(dayLayout, s)
}

// FormatDay renders t as a YYYY-MM-DD calendar day.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// DaysBetween returns the whole calendar days from a to b. Negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
