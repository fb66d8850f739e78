// Package engine implements the deterministic fitness-coaching analytics:
// metabolic targets, weight-trend analysis, daily scoring, template program
// generation and target recalibration. All functions are pure and operate on
// immutable snapshots of the caller's data.
package engine

import "sort"

// Sex selects the BMR formula variant.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ActivityLevel maps to a fixed TDEE multiplier.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

// Equipment describes what the user can train with.
type Equipment string

const (
	EquipFull     Equipment = "full"
	EquipBarbell  Equipment = "barbell"
	EquipDumbbell Equipment = "dumbbell"
	EquipMinimal  Equipment = "minimal"
)

// Experience is accepted at onboarding and carried on the profile. It does
// not currently alter program selection.
type Experience string

const (
	Beginner     Experience = "beginner"
	Intermediate Experience = "intermediate"
	Advanced     Experience = "advanced"
)

// Profile is the biometric snapshot collected at onboarding.
type Profile struct {
	Name           string        `json:"name"`
	Age            int           `json:"age"`
	Sex            Sex           `json:"sex"`
	HeightCm       float64       `json:"height_cm"`
	StartWeightLb  float64       `json:"start_weight_lb"`
	GoalWeightLb   float64       `json:"goal_weight_lb"`
	GoalWeeks      int           `json:"goal_weeks"`
	Activity       ActivityLevel `json:"activity"`
	TrainingDays   int           `json:"training_days"`
	SessionMinutes int           `json:"session_minutes"`
	Equipment      Equipment     `json:"equipment"`
	Experience     Experience    `json:"experience"`
	StepTarget     int           `json:"step_target"`
	Created        string        `json:"created"` // calendar day, YYYY-MM-DD
}

// Targets is the derived nutrition prescription. Exactly one record is
// active at a time; it is replaced wholesale, never edited field by field.
type Targets struct {
	Calories     int     `json:"calories"`
	Protein      int     `json:"protein"`
	Carbs        int     `json:"carbs"`
	Fat          int     `json:"fat"`
	WeeklyLossLb float64 `json:"weekly_loss_lb"`
	DailyDeficit int     `json:"daily_deficit"`
	TDEE         int     `json:"tdee"`
}

// WeightEntry is one scale reading. At most one entry exists per calendar
// day; a later save for the same day replaces the earlier one.
type WeightEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// CheckIn is one day's log. Zero values on optional fields mean "not
// recorded"; WorkoutDone is a pointer so an explicit false survives.
type CheckIn struct {
	Date        string  `json:"date"`
	Calories    int     `json:"calories,omitempty"`
	Protein     int     `json:"protein,omitempty"`
	Carbs       int     `json:"carbs,omitempty"`
	Fat         int     `json:"fat,omitempty"`
	Fiber       int     `json:"fiber,omitempty"`
	WorkoutDone *bool   `json:"workout_done,omitempty"`
	Steps       int     `json:"steps,omitempty"`
	SleepHours  float64 `json:"sleep_hours,omitempty"`
	Stress      int     `json:"stress,omitempty"` // 1-10
	Energy      int     `json:"energy,omitempty"` // 1-10
	Notes       string  `json:"notes,omitempty"`
	WeightLb    float64 `json:"weight_lb,omitempty"` // optional scale reading
}

// Exercise is one slot in a session template. LastWeight is the only mutable
// field; it tracks the heaviest set of the most recent logged workout.
type Exercise struct {
	Name       string  `json:"name"`
	Sets       int     `json:"sets"`
	RepMin     int     `json:"rep_min"`
	RepMax     int     `json:"rep_max"`
	Role       string  `json:"role"` // primary, compound, accessory
	LastWeight float64 `json:"last_weight"`
}

// Session is an ordered list of exercises. Order is fixed at generation.
type Session struct {
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// Program is the template training plan chosen at onboarding.
type Program struct {
	Type     string    `json:"type"`
	Sessions []Session `json:"sessions"`
}

// LoggedSet is one performed set.
type LoggedSet struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// LoggedExercise is the set log for one exercise in a workout.
type LoggedExercise struct {
	Name string      `json:"name"`
	Sets []LoggedSet `json:"sets"`
}

// WorkoutLog is one completed session. Workout history is append-only.
type WorkoutLog struct {
	Date      string           `json:"date"`
	Session   int              `json:"session"` // index into Program.Sessions
	Exercises []LoggedExercise `json:"exercises"`
}

// WeightLog keys scale readings by calendar day. Writing an existing day
// overwrites it (last write wins, keyed by date, not by time of entry).
type WeightLog map[string]float64

// Put records a reading for a day, replacing any earlier reading.
func (l WeightLog) Put(date string, weight float64) {
	l[date] = weight
}

// Entries returns the readings sorted ascending by date.
func (l WeightLog) Entries() []WeightEntry {
	out := make([]WeightEntry, 0, len(l))
	for d, w := range l {
		out = append(out, WeightEntry{Date: d, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CheckInLog keys check-ins by calendar day with the same last-write-wins
// semantics as WeightLog.
type CheckInLog map[string]CheckIn

// Put stores a check-in under its date, replacing any earlier record.
func (l CheckInLog) Put(c CheckIn) {
	l[c.Date] = c
}

// Entries returns the check-ins sorted ascending by date.
func (l CheckInLog) Entries() []CheckIn {
	out := make([]CheckIn, 0, len(l))
	for _, c := range l {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
