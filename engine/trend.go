package engine

import (
	"math"
	"sort"
)

// DefaultTrendWindow is the trailing window for the rolling weight average.
const DefaultTrendWindow = 7

// TrendPoint pairs a raw reading with its trailing-window average.
type TrendPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Avg    float64 `json:"avg"`
}

func sortedByDate(history []WeightEntry) []WeightEntry {
	out := make([]WeightEntry, len(history))
	copy(out, history)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func meanWeight(entries []WeightEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Weight
	}
	return sum / float64(len(entries))
}

// RollingAverage computes the trailing-window mean for each reading, oldest
// first. Early points average over however many readings exist so far (a
// shrinking window, never zero-padded). Output is aligned 1:1 with input;
// averages are rounded to one decimal.
func RollingAverage(history []WeightEntry, window int) []TrendPoint {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	entries := sortedByDate(history)
	points := make([]TrendPoint, 0, len(entries))
	for i, e := range entries {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		avg := Round1(meanWeight(entries[start : i+1]))
		points = append(points, TrendPoint{Date: e.Date, Weight: e.Weight, Avg: avg})
	}
	return points
}

// WeeklyLossRate compares the mean of the most recent 7 readings against the
// mean of the 7 before them. Positive means loss. The second return is false
// when there are fewer than 7 readings total or fewer than 3 in the earlier
// window. This is deliberately a trailing 7-vs-7 comparison, not a
// regression; it tolerates noisy daily readings better than point deltas.
func WeeklyLossRate(history []WeightEntry) (float64, bool) {
	entries := sortedByDate(history)
	if len(entries) < 7 {
		return 0, false
	}
	recent := entries[len(entries)-7:]
	prevStart := len(entries) - 14
	if prevStart < 0 {
		prevStart = 0
	}
	prev := entries[prevStart : len(entries)-7]
	if len(prev) < 3 {
		return 0, false
	}
	return Round1(meanWeight(prev) - meanWeight(recent)), true
}

// DetectPlateau flags a stall: over the most recent 14 readings (at least 12
// required), the relative change between the first and last half-window means
// is under 0.25% while average adherence is at least 85. The adherence gate
// keeps non-compliance from being mistaken for metabolic adaptation.
func DetectPlateau(history []WeightEntry, avgAdherence float64) bool {
	entries := sortedByDate(history)
	if len(entries) > 14 {
		entries = entries[len(entries)-14:]
	}
	if len(entries) < 12 {
		return false
	}
	first := meanWeight(entries[:len(entries)-7])
	last := meanWeight(entries[len(entries)-7:])
	if first == 0 {
		return false
	}
	change := math.Abs(first-last) / first
	return change < 0.0025 && avgAdherence >= 85
}
