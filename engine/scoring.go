package engine

import "math"

// Recovery status labels.
const (
	StatusOptimal        = "OPTIMAL"
	StatusAdequate       = "ADEQUATE"
	StatusFatigued       = "FATIGUED"
	StatusRecoveryNeeded = "RECOVERY NEEDED"
)

// DefaultStepTarget applies when the profile has no step goal.
const DefaultStepTarget = 8000

// AdherenceResult is the composite daily compliance score.
type AdherenceResult struct {
	Total     int            `json:"total"`
	Breakdown map[string]int `json:"breakdown"`
}

// RecoveryResult is the readiness proxy derived from sleep/stress/energy.
type RecoveryResult struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
}

func bandDeviation(logged, target int, cuts [3]float64) int {
	dev := math.Abs(float64(logged-target)) / float64(target)
	switch {
	case dev <= cuts[0]:
		return 100
	case dev <= cuts[1]:
		return 75
	case dev <= cuts[2]:
		return 50
	default:
		return 25
	}
}

// AdherenceScore grades a check-in against targets. Each dimension is scored
// only when both the logged value and its target are present; missing data is
// never treated as failure. The total is the unweighted mean of scored
// dimensions, 0 when none were scored.
func AdherenceScore(c CheckIn, t Targets, p Profile) AdherenceResult {
	breakdown := map[string]int{}

	if c.Calories > 0 && t.Calories > 0 {
		breakdown["calories"] = bandDeviation(c.Calories, t.Calories, [3]float64{0.05, 0.10, 0.15})
	}
	if c.Protein > 0 && t.Protein > 0 {
		breakdown["protein"] = bandDeviation(c.Protein, t.Protein, [3]float64{0.10, 0.20, 0.30})
	}
	if c.WorkoutDone != nil {
		if *c.WorkoutDone {
			breakdown["workout"] = 100
		} else {
			breakdown["workout"] = 0
		}
	}
	if c.Steps > 0 {
		target := p.StepTarget
		if target <= 0 {
			target = DefaultStepTarget
		}
		pct := float64(c.Steps) / float64(target)
		switch {
		case pct >= 0.95:
			breakdown["steps"] = 100
		case pct >= 0.80:
			breakdown["steps"] = 75
		case pct >= 0.60:
			breakdown["steps"] = 50
		default:
			breakdown["steps"] = 25
		}
	}

	if len(breakdown) == 0 {
		return AdherenceResult{Total: 0, Breakdown: breakdown}
	}
	sum := 0
	for _, v := range breakdown {
		sum += v
	}
	total := int(math.Round(float64(sum) / float64(len(breakdown))))
	return AdherenceResult{Total: total, Breakdown: breakdown}
}

// RecoveryScore derives readiness from sleep, stress and energy. Bands are
// guard chains evaluated first-match-wins; boundary values depend on that
// order. Unrecorded fields (zero) contribute nothing.
func RecoveryScore(c CheckIn) RecoveryResult {
	score := 50

	switch {
	case c.SleepHours >= 7.5:
		score += 20
	case c.SleepHours >= 6.5:
		score += 10
	case c.SleepHours > 0 && c.SleepHours < 5.5:
		score -= 15
	}

	if c.Stress > 0 {
		switch {
		case c.Stress <= 3:
			score += 20
		case c.Stress <= 5:
			score += 10
		case c.Stress >= 8:
			score -= 15
		case c.Stress >= 6:
			score -= 5
		}
	}

	switch {
	case c.Energy >= 7:
		score += 10
	case c.Energy > 0 && c.Energy <= 3:
		score -= 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	status := StatusRecoveryNeeded
	switch {
	case score >= 80:
		status = StatusOptimal
	case score >= 60:
		status = StatusAdequate
	case score >= 40:
		status = StatusFatigued
	}
	return RecoveryResult{Score: score, Status: status}
}

// AverageAdherence returns the mean adherence total over the given check-ins,
// 0 when there are none. Used as the plateau detector's compliance gate.
func AverageAdherence(checkins []CheckIn, t Targets, p Profile) float64 {
	if len(checkins) == 0 {
		return 0
	}
	sum := 0
	for _, c := range checkins {
		sum += AdherenceScore(c, t, p).Total
	}
	return float64(sum) / float64(len(checkins))
}
