// Package prompt composes the natural-language coaching prompt from the
// engine's numeric summaries. The engine never sees prose; this is the only
// place numbers turn into text for the external service.
package prompt

import (
	"fmt"
	"strings"

	"github.com/gbell030587-alt/Gbell3587/engine"
)

const preamble = `You are an experienced fat-loss coach. You will receive structured
metrics from a client's tracking app: nutrition targets, daily compliance
scores, recovery scores and weight-trend figures. Give short, specific,
actionable feedback grounded in the numbers. Do not invent data you were
not given. If a plateau or diet-break flag is set, address it directly.`

// Daily renders the prompt for a single day's analysis.
func Daily(s engine.DailySummary) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n## Day ")
	b.WriteString(s.Date)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Targets: %d kcal, %dP/%dC/%dF, TDEE %d, planned loss %.1f lbs/week\n",
		s.Targets.Calories, s.Targets.Protein, s.Targets.Carbs, s.Targets.Fat,
		s.Targets.TDEE, s.Targets.WeeklyLossLb)
	fmt.Fprintf(&b, "Adherence: %d/100", s.Adherence.Total)
	for _, dim := range []string{"calories", "protein", "workout", "steps"} {
		if v, ok := s.Adherence.Breakdown[dim]; ok {
			fmt.Fprintf(&b, " %s=%d", dim, v)
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Recovery: %d/100 (%s)\n", s.Recovery.Score, s.Recovery.Status)

	if s.WeeklyRateOK {
		fmt.Fprintf(&b, "Observed loss rate: %.1f lbs/week\n", s.WeeklyRate)
	} else {
		b.WriteString("Observed loss rate: insufficient data\n")
	}
	writeFlags(&b, s.Plateau, s.DietBreakDue, s.MacrosDegenerate)

	b.WriteString("\nRespond with a one-paragraph summary and one concrete recommendation for tomorrow.")
	return b.String()
}

// Weekly renders the prompt for the periodic recalibration review. The
// response drives an increase/decrease/maintain decision on the calorie
// target.
func Weekly(r engine.WeeklyReview) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n## Weekly review\n\n")

	fmt.Fprintf(&b, "Prescribed: %d kcal/day, assumed TDEE %d, planned loss %.1f lbs/week\n",
		r.Targets.Calories, r.Targets.TDEE, r.Targets.WeeklyLossLb)
	if r.EstimateOK {
		fmt.Fprintf(&b, "Data-driven TDEE: %d kcal/day (observed %.1f lbs/week over the last 14 days)\n",
			r.Estimate.TDEE, r.Estimate.WeeklyRate)
	} else {
		b.WriteString("Data-driven TDEE: insufficient data (need 14 daily weigh-ins)\n")
	}
	if r.WeeklyRateOK {
		fmt.Fprintf(&b, "Trailing loss rate: %.1f lbs/week\n", r.WeeklyRate)
	}
	writeFlags(&b, r.Plateau, r.DietBreakDue, false)

	b.WriteString("\nDecide: increase, decrease or maintain the calorie target, and by how many kcal. Explain briefly.")
	return b.String()
}

func writeFlags(b *strings.Builder, plateau, dietBreak, degenerate bool) {
	if plateau {
		b.WriteString("FLAG: plateau detected (stalled trend despite high adherence)\n")
	}
	if dietBreak {
		b.WriteString("FLAG: diet break due (56+ days in a continuous deficit)\n")
	}
	if degenerate {
		b.WriteString("FLAG: macro split degenerate (carb remainder is negative)\n")
	}
}
