package engine

// DailySummary bundles one day's scores with the current trend figures. It is
// what the presentation layer renders and what the coaching prompt is
// composed from.
type DailySummary struct {
	Date             string          `json:"date"`
	Adherence        AdherenceResult `json:"adherence"`
	Recovery         RecoveryResult  `json:"recovery"`
	Targets          Targets         `json:"targets"`
	WeeklyRate       float64         `json:"weekly_rate"`
	WeeklyRateOK     bool            `json:"weekly_rate_ok"`
	Plateau          bool            `json:"plateau"`
	DietBreakDue     bool            `json:"diet_break_due"`
	MacrosDegenerate bool            `json:"macros_degenerate"`
}

// WeeklyReview is the periodic recalibration picture: observed trend, implied
// TDEE and the flags an external coaching decision is based on.
type WeeklyReview struct {
	Targets      Targets      `json:"targets"`
	Estimate     TDEEEstimate `json:"estimate"`
	EstimateOK   bool         `json:"estimate_ok"`
	WeeklyRate   float64      `json:"weekly_rate"`
	WeeklyRateOK bool         `json:"weekly_rate_ok"`
	Plateau      bool         `json:"plateau"`
	DietBreakDue bool         `json:"diet_break_due"`
}

// recentAdherence averages adherence over the trailing 14 days ending today.
func recentAdherence(checkins CheckInLog, t Targets, p Profile, today string) float64 {
	all := checkins.Entries()
	if len(all) > 14 {
		all = all[len(all)-14:]
	}
	recent := make([]CheckIn, 0, len(all))
	for _, c := range all {
		if c.Date <= today {
			recent = append(recent, c)
		}
	}
	return AverageAdherence(recent, t, p)
}

// BuildDailySummary scores the check-in for a day and attaches the trend
// state derived from the accumulated history.
func BuildDailySummary(p Profile, t Targets, weights WeightLog, checkins CheckInLog, c CheckIn, today string) DailySummary {
	entries := weights.Entries()
	rate, rateOK := WeeklyLossRate(entries)
	adh := recentAdherence(checkins, t, p, today)

	return DailySummary{
		Date:             c.Date,
		Adherence:        AdherenceScore(c, t, p),
		Recovery:         RecoveryScore(c),
		Targets:          t,
		WeeklyRate:       rate,
		WeeklyRateOK:     rateOK,
		Plateau:          DetectPlateau(entries, adh),
		DietBreakDue:     DietBreakDue(p, t, today),
		MacrosDegenerate: MacrosDegenerate(t),
	}
}

// BuildWeeklyReview assembles the recalibration inputs for the periodic
// review pass.
func BuildWeeklyReview(p Profile, t Targets, weights WeightLog, checkins CheckInLog, today string) WeeklyReview {
	entries := weights.Entries()
	estimate, estimateOK := DataDrivenTDEE(t, entries)
	rate, rateOK := WeeklyLossRate(entries)
	adh := recentAdherence(checkins, t, p, today)

	return WeeklyReview{
		Targets:      t,
		Estimate:     estimate,
		EstimateOK:   estimateOK,
		WeeklyRate:   rate,
		WeeklyRateOK: rateOK,
		Plateau:      DetectPlateau(entries, adh),
		DietBreakDue: DietBreakDue(p, t, today),
	}
}
