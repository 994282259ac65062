// Package adaptive derives per-user modification settings from profile risk
// factors and rewrites the canonical program accordingly.
package adaptive

import (
	"math"

	"github.com/claude/c25k/internal/models"
)

// Settings are the modifiers derived from a profile. They are ephemeral:
// recomputed on demand and never persisted. All numeric fields accumulate
// additively across rules with no upper clamp; validation of the resulting
// plan happens at the adapter boundary.
type Settings struct {
	PaceReductionPercent     int      `json:"paceReduction"`
	ExtraRestSeconds         int      `json:"extraRestTime"`
	MaxHeartRateBpm          int      `json:"maxHeartRate,omitempty"`
	SpecialInstructions      []string `json:"specialInstructions"`
	WarmupExtensionMinutes   int      `json:"warmupExtension"`
	CooldownExtensionMinutes int      `json:"cooldownExtension"`
}

// Overweight thresholds per weight unit.
const (
	overweightKg  = 85
	overweightLbs = 187
)

// Calculate derives adaptive settings from a profile. Rules apply in a fixed
// order (age, weight, fitness level, then each medical condition); the order
// determines instruction sequence, while numeric effects are commutative sums.
func Calculate(p models.UserProfile) Settings {
	s := Settings{SpecialInstructions: []string{}}

	if p.Age > 50 {
		s.PaceReductionPercent += 10
		s.ExtraRestSeconds += 30
		s.WarmupExtensionMinutes += 2
		s.CooldownExtensionMinutes += 2
		s.SpecialInstructions = append(s.SpecialInstructions,
			"Extended warmup and cooldown recommended for mature athletes")

		if p.Age > 60 {
			s.PaceReductionPercent += 5
			s.ExtraRestSeconds += 15
			s.SpecialInstructions = append(s.SpecialInstructions,
				"Focus on joint mobility and gentle progression")
		}
	}

	overweight := (p.WeightUnit == models.WeightKg && p.Weight > overweightKg) ||
		(p.WeightUnit == models.WeightLbs && p.Weight > overweightLbs)
	if overweight {
		s.PaceReductionPercent += 15
		s.ExtraRestSeconds += 20
		s.SpecialInstructions = append(s.SpecialInstructions,
			"Start with a gentle pace to protect joints and build endurance gradually")
	}

	switch p.FitnessLevel {
	case models.FitnessBeginner:
		s.PaceReductionPercent += 20
		s.ExtraRestSeconds += 30
		s.WarmupExtensionMinutes++
		s.SpecialInstructions = append(s.SpecialInstructions,
			"Take your time - consistency is more important than speed")
	case models.FitnessSomeExperience:
		s.PaceReductionPercent += 10
		s.ExtraRestSeconds += 15
	case models.FitnessActive:
		// No additional modifications.
	}

	if p.HasCondition(models.ConditionHypertension) {
		s.PaceReductionPercent += 25
		s.ExtraRestSeconds += 45
		s.WarmupExtensionMinutes += 3
		s.CooldownExtensionMinutes += 3
		s.MaxHeartRateBpm = int(math.Round(180 - float64(p.Age)))
		s.SpecialInstructions = append(s.SpecialInstructions,
			"Monitor blood pressure regularly",
			"Stay well hydrated",
			"Stop immediately if you feel dizzy or short of breath",
			"Consult your doctor before starting",
			"Keep medication accessible during workouts")
	}

	if p.HasCondition(models.ConditionDiabetes) {
		s.SpecialInstructions = append(s.SpecialInstructions,
			"Monitor blood sugar levels before and after exercise",
			"Carry glucose tablets or snacks",
			"Exercise at consistent times when possible")
	}

	if p.HasCondition(models.ConditionAsthma) {
		s.WarmupExtensionMinutes += 2
		s.SpecialInstructions = append(s.SpecialInstructions,
			"Keep inhaler accessible",
			"Extended warmup to prepare airways",
			"Exercise in moderate temperatures when possible")
	}

	if p.HasCondition(models.ConditionKneeProblems) {
		s.PaceReductionPercent += 15
		s.SpecialInstructions = append(s.SpecialInstructions,
			"Focus on soft surfaces when possible",
			"Land midfoot to reduce impact",
			"Stop if you experience knee pain")
	}

	return s
}
