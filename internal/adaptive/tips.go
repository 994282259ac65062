package adaptive

import (
	"math"

	"github.com/claude/c25k/internal/models"
)

// PersonalizedTips returns coaching tips for the given week of the plan,
// chosen from the profile's risk factors. Order follows rule evaluation.
func PersonalizedTips(p models.UserProfile, week int) []string {
	tips := []string{}
	s := Calculate(p)

	if p.Age > 50 {
		tips = append(tips,
			"Remember that recovery is just as important as the workout itself",
			"Consider adding gentle stretching or yoga on rest days")
	}

	if p.FitnessLevel == models.FitnessBeginner {
		tips = append(tips,
			"You're doing great! Every step counts towards building your fitness",
			"It's normal to feel tired - your body is adapting to new demands")
	}

	if week <= 3 && s.PaceReductionPercent > 15 {
		tips = append(tips, "Take these first weeks slowly - you're building a foundation for life")
	}

	if week >= 5 && p.HasCondition(models.ConditionHypertension) {
		tips = append(tips, "As runs get longer, monitor how you feel more frequently")
	}

	return tips
}

// HeartRateZone is a recommended training heart-rate band in BPM.
type HeartRateZone struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TargetHeartRate computes the easy-to-moderate training band: 60% to 80% of
// the age-predicted maximum (220-age, or the conservative 180-age for
// hypertensive users). A condition-assigned ceiling overrides the upper end.
func TargetHeartRate(p models.UserProfile) HeartRateZone {
	maxHR := 220 - p.Age
	if p.HasCondition(models.ConditionHypertension) {
		maxHR = 180 - p.Age
	}

	s := Calculate(p)
	zone := HeartRateZone{
		Min: int(math.Round(float64(maxHR) * 0.6)),
		Max: int(math.Round(float64(maxHR) * 0.8)),
	}
	if s.MaxHeartRateBpm > 0 {
		zone.Max = s.MaxHeartRateBpm
	}
	return zone
}
