package adaptive

import (
	"testing"

	"github.com/claude/c25k/internal/models"
	"github.com/google/go-cmp/cmp"
)

func profile(age int, weight float64, unit models.WeightUnit, level models.FitnessLevel, conditions ...string) models.UserProfile {
	return models.UserProfile{
		Name:              "Test Runner",
		Age:               age,
		Weight:            weight,
		WeightUnit:        unit,
		FitnessLevel:      level,
		MedicalConditions: conditions,
	}
}

// TestCalculateActiveBaseline verifies that a young, fit profile gets no
// modifications at all.
func TestCalculateActiveBaseline(t *testing.T) {
	s := Calculate(profile(30, 70, models.WeightKg, models.FitnessActive))
	want := Settings{SpecialInstructions: []string{}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

// TestCalculateStacked verifies the additive worst case: a 65-year-old
// overweight hypertensive beginner accumulates every applicable rule.
func TestCalculateStacked(t *testing.T) {
	s := Calculate(profile(65, 90, models.WeightKg, models.FitnessBeginner, models.ConditionHypertension))

	if s.PaceReductionPercent != 75 {
		t.Errorf("PaceReductionPercent = %d, want 75", s.PaceReductionPercent)
	}
	if s.ExtraRestSeconds != 140 {
		t.Errorf("ExtraRestSeconds = %d, want 140", s.ExtraRestSeconds)
	}
	if s.WarmupExtensionMinutes != 6 {
		t.Errorf("WarmupExtensionMinutes = %d, want 6", s.WarmupExtensionMinutes)
	}
	if s.CooldownExtensionMinutes != 5 {
		t.Errorf("CooldownExtensionMinutes = %d, want 5", s.CooldownExtensionMinutes)
	}
	if s.MaxHeartRateBpm != 115 {
		t.Errorf("MaxHeartRateBpm = %d, want 115 (180 - 65)", s.MaxHeartRateBpm)
	}

	// Instruction order follows rule evaluation: age, age 60+, weight,
	// fitness, then hypertension's block.
	wantFirst := []string{
		"Extended warmup and cooldown recommended for mature athletes",
		"Focus on joint mobility and gentle progression",
		"Start with a gentle pace to protect joints and build endurance gradually",
		"Take your time - consistency is more important than speed",
		"Monitor blood pressure regularly",
	}
	if len(s.SpecialInstructions) != 9 {
		t.Fatalf("got %d instructions, want 9", len(s.SpecialInstructions))
	}
	for i, want := range wantFirst {
		if s.SpecialInstructions[i] != want {
			t.Errorf("instruction %d = %q, want %q", i, s.SpecialInstructions[i], want)
		}
	}
}

// TestCalculateDiabetesInstructionsOnly verifies that diabetes changes the
// instruction list but none of the numeric modifiers.
func TestCalculateDiabetesInstructionsOnly(t *testing.T) {
	base := Calculate(profile(30, 70, models.WeightKg, models.FitnessActive))
	with := Calculate(profile(30, 70, models.WeightKg, models.FitnessActive, models.ConditionDiabetes))

	if with.PaceReductionPercent != base.PaceReductionPercent ||
		with.ExtraRestSeconds != base.ExtraRestSeconds ||
		with.WarmupExtensionMinutes != base.WarmupExtensionMinutes ||
		with.CooldownExtensionMinutes != base.CooldownExtensionMinutes ||
		with.MaxHeartRateBpm != base.MaxHeartRateBpm {
		t.Errorf("diabetes changed numeric modifiers: %+v", with)
	}
	if len(with.SpecialInstructions) != 3 {
		t.Errorf("got %d instructions, want 3", len(with.SpecialInstructions))
	}
	if with.SpecialInstructions[0] != "Monitor blood sugar levels before and after exercise" {
		t.Errorf("instruction 0 = %q", with.SpecialInstructions[0])
	}
}

// TestCalculateOverweightThresholds verifies the per-unit thresholds are
// strict (exactly at the limit is not overweight).
func TestCalculateOverweightThresholds(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		unit     models.WeightUnit
		wantPace int
	}{
		{"at kg threshold", 85, models.WeightKg, 0},
		{"above kg threshold", 85.5, models.WeightKg, 15},
		{"at lbs threshold", 187, models.WeightLbs, 0},
		{"above lbs threshold", 188, models.WeightLbs, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Calculate(profile(30, tt.weight, tt.unit, models.FitnessActive))
			if s.PaceReductionPercent != tt.wantPace {
				t.Errorf("PaceReductionPercent = %d, want %d", s.PaceReductionPercent, tt.wantPace)
			}
		})
	}
}

// TestCalculateAsthma verifies asthma extends only the warmup.
func TestCalculateAsthma(t *testing.T) {
	s := Calculate(profile(30, 70, models.WeightKg, models.FitnessActive, models.ConditionAsthma))
	if s.WarmupExtensionMinutes != 2 {
		t.Errorf("WarmupExtensionMinutes = %d, want 2", s.WarmupExtensionMinutes)
	}
	if s.PaceReductionPercent != 0 || s.ExtraRestSeconds != 0 || s.CooldownExtensionMinutes != 0 {
		t.Errorf("asthma changed unrelated modifiers: %+v", s)
	}
}

func TestTargetHeartRate(t *testing.T) {
	p := profile(40, 70, models.WeightKg, models.FitnessActive)
	zone := TargetHeartRate(p)
	if zone.Min != 108 || zone.Max != 144 {
		t.Errorf("zone = %+v, want {108 144}", zone)
	}

	hyper := profile(40, 70, models.WeightKg, models.FitnessActive, models.ConditionHypertension)
	zone = TargetHeartRate(hyper)
	// 180-40 base; the condition ceiling overrides the 80% upper end.
	if zone.Min != 84 {
		t.Errorf("hypertensive min = %d, want 84", zone.Min)
	}
	if zone.Max != 140 {
		t.Errorf("hypertensive max = %d, want ceiling 140", zone.Max)
	}
}

func TestPersonalizedTips(t *testing.T) {
	older := profile(55, 70, models.WeightKg, models.FitnessActive)
	tips := PersonalizedTips(older, 1)
	if len(tips) != 2 {
		t.Fatalf("got %d tips, want 2", len(tips))
	}
	if tips[0] != "Remember that recovery is just as important as the workout itself" {
		t.Errorf("tip 0 = %q", tips[0])
	}

	// Beginner over 50: age tips, beginner tips, and the early-weeks pacing
	// tip (pace reduction 30 > 15).
	beginner := profile(55, 70, models.WeightKg, models.FitnessBeginner)
	tips = PersonalizedTips(beginner, 2)
	if len(tips) != 5 {
		t.Errorf("got %d tips, want 5", len(tips))
	}

	// The pacing tip drops out after week 3.
	tips = PersonalizedTips(beginner, 4)
	if len(tips) != 4 {
		t.Errorf("week 4: got %d tips, want 4", len(tips))
	}

	// Hypertension tip appears from week 5.
	hyper := profile(30, 70, models.WeightKg, models.FitnessActive, models.ConditionHypertension)
	if tips := PersonalizedTips(hyper, 5); len(tips) != 1 {
		t.Errorf("hypertensive week 5: got %d tips, want 1", len(tips))
	}
	if tips := PersonalizedTips(hyper, 4); len(tips) != 0 {
		t.Errorf("hypertensive week 4: got %d tips, want 0", len(tips))
	}
}
