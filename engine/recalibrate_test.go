package engine

import "testing"

func TestDataDrivenTDEE(t *testing.T) {
	targets := Targets{Calories: 2400}
	// first 7 at 200.0, last 7 at 198.0: 2 lbs/week observed
	history := series(14, func(i int) float64 {
		if i < 7 {
			return 200.0
		}
		return 198.0
	})
	est, ok := DataDrivenTDEE(targets, history)
	if !ok {
		t.Fatal("expected estimate with 14 entries")
	}
	if est.WeeklyRate != 2.0 {
		t.Errorf("rate = %f, want 2.0", est.WeeklyRate)
	}
	// 2400 + 2.0*3500/7 = 3400
	if est.TDEE != 3400 {
		t.Errorf("tdee = %d, want 3400", est.TDEE)
	}
}

func TestDataDrivenTDEESlowerThanPredicted(t *testing.T) {
	// barely losing on 2000 kcal implies a low true TDEE
	targets := Targets{Calories: 2000}
	history := series(14, func(i int) float64 {
		if i < 7 {
			return 180.0
		}
		return 179.8
	})
	est, ok := DataDrivenTDEE(targets, history)
	if !ok {
		t.Fatal("expected estimate")
	}
	// 2000 + 0.2*500 = 2100
	if est.TDEE != 2100 {
		t.Errorf("tdee = %d, want 2100", est.TDEE)
	}
}

func TestDataDrivenTDEEInsufficient(t *testing.T) {
	history := series(13, func(i int) float64 { return 200 })
	if _, ok := DataDrivenTDEE(Targets{Calories: 2400}, history); ok {
		t.Error("13 entries should be insufficient")
	}
}

func TestApplyCalorieAdjustmentMaintain(t *testing.T) {
	targets := Targets{Calories: 2200, Protein: 150, Carbs: 250, Fat: 61, TDEE: 2700}
	got := ApplyCalorieAdjustment(targets, AdjustMaintain, 100)
	if got != targets {
		t.Errorf("maintain should be a no-op: %+v vs %+v", got, targets)
	}
}

func TestApplyCalorieAdjustmentIncrease(t *testing.T) {
	targets := Targets{Calories: 2200, Protein: 150, Carbs: 250, Fat: 61}
	got := ApplyCalorieAdjustment(targets, AdjustIncrease, 200)
	if got.Calories != 2400 {
		t.Errorf("calories = %d, want 2400", got.Calories)
	}
	if got.Protein != 150 {
		t.Errorf("protein = %d, want 150 held constant", got.Protein)
	}
	// fat re-derived: 2400*0.25/9 = 66.67 -> 67
	if got.Fat != 67 {
		t.Errorf("fat = %d, want 67", got.Fat)
	}
	// carbs absorb the remainder: (2400 - 600 - 603)/4 = 299.25 -> 299
	if got.Carbs != 299 {
		t.Errorf("carbs = %d, want 299", got.Carbs)
	}
}

func TestApplyCalorieAdjustmentFloor(t *testing.T) {
	targets := Targets{Calories: 1300, Protein: 120}
	got := ApplyCalorieAdjustment(targets, AdjustDecrease, 500)
	if got.Calories != CalorieFloor {
		t.Errorf("calories = %d, want floor %d", got.Calories, CalorieFloor)
	}
}

func TestDietBreakDue(t *testing.T) {
	p := Profile{Created: "2026-01-01"}
	deficit := Targets{DailyDeficit: 500}

	tests := []struct {
		name  string
		t     Targets
		today string
		want  bool
	}{
		{"day 55", deficit, "2026-02-25", false},
		{"day 56", deficit, "2026-02-26", true},
		{"long after", deficit, "2026-06-01", true},
		{"no deficit", Targets{DailyDeficit: -200}, "2026-06-01", false},
		{"bad date", deficit, "garbage", false},
	}
	for _, tt := range tests {
		if got := DietBreakDue(p, tt.t, tt.today); got != tt.want {
			t.Errorf("%s: DietBreakDue = %v, want %v", tt.name, got, tt.want)
		}
	}
}
