package engine

import (
	"reflect"
	"testing"
	"time"
)

// series builds n daily entries starting 2026-01-01 with weights from f.
func series(n int, f func(i int) float64) []WeightEntry {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]WeightEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, WeightEntry{
			Date:   FormatDay(start.AddDate(0, 0, i)),
			Weight: f(i),
		})
	}
	return out
}

func TestRollingAverageAlignment(t *testing.T) {
	history := series(10, func(i int) float64 { return 200 - float64(i) })
	points := RollingAverage(history, 7)
	if len(points) != len(history) {
		t.Fatalf("output length %d, want %d", len(points), len(history))
	}
	for i, p := range points {
		if p.Date != history[i].Date || p.Weight != history[i].Weight {
			t.Errorf("point %d misaligned: %+v vs %+v", i, p, history[i])
		}
	}
}

func TestRollingAverageShrinkingWindow(t *testing.T) {
	history := series(3, func(i int) float64 { return []float64{200, 198, 196}[i] })
	points := RollingAverage(history, 7)
	wants := []float64{200.0, 199.0, 198.0}
	for i, want := range wants {
		if points[i].Avg != want {
			t.Errorf("point %d avg = %f, want %f", i, points[i].Avg, want)
		}
	}
}

func TestRollingAverageWindowIndependence(t *testing.T) {
	// the last average only depends on the trailing window
	long := series(20, func(i int) float64 { return 210 - float64(i)*0.5 })
	short := long[len(long)-7:]
	lp := RollingAverage(long, 7)
	sp := RollingAverage(short, 7)
	if lp[len(lp)-1].Avg != sp[len(sp)-1].Avg {
		t.Errorf("last avg differs: %f vs %f", lp[len(lp)-1].Avg, sp[len(sp)-1].Avg)
	}
}

func TestRollingAverageSortsInput(t *testing.T) {
	history := series(5, func(i int) float64 { return 180 + float64(i) })
	shuffled := []WeightEntry{history[3], history[0], history[4], history[1], history[2]}
	a := RollingAverage(history, 7)
	b := RollingAverage(shuffled, 7)
	if !reflect.DeepEqual(a, b) {
		t.Error("rolling average should be order independent")
	}
}

func TestRollingAverageIdempotent(t *testing.T) {
	history := series(12, func(i int) float64 { return 190 - float64(i)*0.3 })
	a := RollingAverage(history, 7)
	b := RollingAverage(history, 7)
	if !reflect.DeepEqual(a, b) {
		t.Error("rolling average should be pure")
	}
}

func TestRollingAverageSingleEntry(t *testing.T) {
	history := series(1, func(i int) float64 { return 185.0 })
	points := RollingAverage(history, 7)
	if len(points) != 1 || points[0].Avg != 185.0 {
		t.Errorf("single entry = %+v, want avg 185.0", points)
	}
}

func TestWeeklyLossRate(t *testing.T) {
	// first 7 at 200.0, last 7 at 198.0
	history := series(14, func(i int) float64 {
		if i < 7 {
			return 200.0
		}
		return 198.0
	})
	rate, ok := WeeklyLossRate(history)
	if !ok {
		t.Fatal("expected rate with 14 entries")
	}
	if rate != 2.0 {
		t.Errorf("rate = %f, want 2.0", rate)
	}
}

func TestWeeklyLossRateInsufficient(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want bool
	}{
		{"six entries", 6, false},
		{"seven entries, empty previous window", 7, false},
		{"nine entries, two in previous window", 9, false},
		{"ten entries, three in previous window", 10, true},
	}
	for _, tt := range tests {
		history := series(tt.n, func(i int) float64 { return 200 })
		if _, ok := WeeklyLossRate(history); ok != tt.want {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.want)
		}
	}
}

func TestWeeklyLossRateGain(t *testing.T) {
	history := series(14, func(i int) float64 {
		if i < 7 {
			return 150.0
		}
		return 151.5
	})
	rate, ok := WeeklyLossRate(history)
	if !ok {
		t.Fatal("expected rate")
	}
	if rate != -1.5 {
		t.Errorf("rate = %f, want -1.5 (gain)", rate)
	}
}

func TestDetectPlateau(t *testing.T) {
	// first-7 mean 180.0, last-7 mean 179.6: 0.22% change
	flat := series(14, func(i int) float64 {
		if i < 7 {
			return 180.0
		}
		return 179.6
	})
	if !DetectPlateau(flat, 90) {
		t.Error("expected plateau with flat trend and adherence 90")
	}
	if DetectPlateau(flat, 70) {
		t.Error("adherence gate should suppress the plateau flag")
	}

	losing := series(14, func(i int) float64 { return 185 - float64(i)*0.4 })
	if DetectPlateau(losing, 95) {
		t.Error("steady loss is not a plateau")
	}
}

func TestDetectPlateauInsufficient(t *testing.T) {
	history := series(11, func(i int) float64 { return 180 })
	if DetectPlateau(history, 95) {
		t.Error("11 entries should be insufficient")
	}
	if DetectPlateau(nil, 95) {
		t.Error("empty history should not flag a plateau")
	}
}

func TestDetectPlateauUsesRecentFourteen(t *testing.T) {
	// long history losing early, flat in the last 14
	history := series(30, func(i int) float64 {
		if i < 16 {
			return 200 - float64(i)
		}
		return 184.0
	})
	if !DetectPlateau(history, 90) {
		t.Error("plateau should be judged on the most recent 14 entries")
	}
}
