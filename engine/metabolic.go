package engine

import "math"

// activityMultipliers are the fixed TDEE factors per activity level.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

// BMR estimates basal metabolic rate with the Mifflin-St Jeor equation.
func BMR(sex Sex, weightKg, heightCm float64, ageYears int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == Male {
		return base + 5
	}
	return base - 161
}

// TDEE scales a BMR by the activity multiplier, rounded to the nearest kcal.
// Unknown levels fall back to sedentary.
func TDEE(bmr float64, level ActivityLevel) int {
	m, ok := activityMultipliers[level]
	if !ok {
		m = activityMultipliers[Sedentary]
	}
	return int(math.Round(bmr * m))
}

// DeriveTargets computes the nutrition prescription from a profile.
//
// The weekly mass change implied by the goal converts to a daily energy
// deficit at 3500 kcal per pound; the sign is preserved, so a gain goal adds
// calories. The result is floored at 1200 kcal/day. Protein targets 0.85 g
// per pound of goal weight (the destination body mass, not the current one),
// fat takes 25% of calories, and carbs absorb the remainder. The carb
// remainder can go negative for extreme inputs; it is surfaced as-is so
// callers can warn rather than crash.
func DeriveTargets(p Profile) Targets {
	bmr := BMR(p.Sex, LbToKg(p.StartWeightLb), p.HeightCm, p.Age)
	tdee := TDEE(bmr, p.Activity)

	weeklyChange := 0.0
	if p.GoalWeeks > 0 {
		weeklyChange = (p.StartWeightLb - p.GoalWeightLb) / float64(p.GoalWeeks)
	}
	dailyDeficit := weeklyChange * KcalPerLb / 7

	calories := float64(tdee) - dailyDeficit
	if calories < CalorieFloor {
		calories = CalorieFloor
	}

	cals := int(math.Round(calories))
	protein := int(math.Round(0.85 * p.GoalWeightLb))
	fat := int(math.Round(float64(cals) * 0.25 / 9))
	carbs := int(math.Round(float64(cals-protein*4-fat*9) / 4))

	return Targets{
		Calories:     cals,
		Protein:      protein,
		Carbs:        carbs,
		Fat:          fat,
		WeeklyLossLb: Round1(weeklyChange),
		DailyDeficit: int(math.Round(dailyDeficit)),
		TDEE:         tdee,
	}
}

// MacrosDegenerate reports whether the carb remainder went negative, which
// happens when protein and fat alone exceed the calorie target.
func MacrosDegenerate(t Targets) bool {
	return t.Carbs < 0
}
