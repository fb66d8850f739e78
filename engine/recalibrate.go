package engine

import "math"

// AdjustAction is an external coaching decision applied to targets.
type AdjustAction string

const (
	AdjustIncrease AdjustAction = "increase"
	AdjustDecrease AdjustAction = "decrease"
	AdjustMaintain AdjustAction = "maintain"
)

// DietBreakAfterDays is how long a continuous deficit runs before a planned
// reduced-deficit period is recommended.
const DietBreakAfterDays = 56

// TDEEEstimate reconciles prescribed intake against observed weight change.
type TDEEEstimate struct {
	TDEE       int     `json:"tdee"`
	WeeklyRate float64 `json:"weekly_rate"` // lbs/week, positive = loss
}

// DataDrivenTDEE infers actual energy expenditure from the most recent 14
// readings: the observed weekly change between the first-7 and last-7 means,
// converted at 3500 kcal/lb, is added to the prescribed calories. Losing less
// than predicted implies a higher TDEE than assumed, and vice versa. Returns
// false with fewer than 14 readings.
func DataDrivenTDEE(t Targets, history []WeightEntry) (TDEEEstimate, bool) {
	entries := sortedByDate(history)
	if len(entries) < 14 {
		return TDEEEstimate{}, false
	}
	entries = entries[len(entries)-14:]
	rate := meanWeight(entries[:7]) - meanWeight(entries[7:])
	tdee := math.Round(float64(t.Calories) + rate*KcalPerLb/7)
	return TDEEEstimate{TDEE: int(tdee), WeeklyRate: Round1(rate)}, true
}

// ApplyCalorieAdjustment is the sole mutator of an active Targets record
// outside onboarding. Maintain is a no-op. Otherwise the calorie target
// shifts by amountKcal (floored at 1200), fat is re-derived at 25% of the new
// calories, protein is held constant and carbs absorb the remainder.
func ApplyCalorieAdjustment(t Targets, action AdjustAction, amountKcal int) Targets {
	switch action {
	case AdjustIncrease:
		t.Calories += amountKcal
	case AdjustDecrease:
		t.Calories -= amountKcal
	default:
		return t
	}
	if t.Calories < CalorieFloor {
		t.Calories = CalorieFloor
	}
	t.Fat = int(math.Round(float64(t.Calories) * 0.25 / 9))
	t.Carbs = int(math.Round(float64(t.Calories-t.Protein*4-t.Fat*9) / 4))
	return t
}

// DietBreakDue reports whether the profile has been in a continuous deficit
// long enough (56+ days since creation) to recommend a diet break. Malformed
// dates read as not due.
func DietBreakDue(p Profile, t Targets, today string) bool {
	if t.DailyDeficit <= 0 {
		return false
	}
	created, err := ParseDay(p.Created)
	if err != nil {
		return false
	}
	now, err := ParseDay(today)
	if err != nil {
		return false
	}
	return DaysBetween(created, now) >= DietBreakAfterDays
}
