package adaptive

import (
	"fmt"
	"math"
	"strings"

	"github.com/claude/c25k/internal/models"
	"github.com/claude/c25k/internal/program"
)

// AdaptProgram applies settings to a deep copy of the given weeks. The
// result is structurally identical to the input (same weeks, same workouts,
// same interval counts); only field values change. A malformed duration
// string anywhere in the input fails the whole adaptation.
func AdaptProgram(weeks []program.WeekProgram, s Settings) ([]program.WeekProgram, error) {
	adapted := make([]program.WeekProgram, len(weeks))
	for i, w := range weeks {
		adapted[i] = w.Clone()
	}

	for wi := range adapted {
		week := &adapted[wi]
		for di := range week.Workouts {
			if err := adaptWorkout(&week.Workouts[di], s); err != nil {
				return nil, fmt.Errorf("week %d day %d: %w", week.Week, week.Workouts[di].Day, err)
			}
		}
		if s.PaceReductionPercent > 0 {
			week.Description += " (Adapted for your profile - focus on gradual progression)"
		}
	}
	return adapted, nil
}

// AdaptForProfile is the common path: calculate settings from the profile
// and apply them to the canonical template.
func AdaptForProfile(p models.UserProfile) ([]program.WeekProgram, error) {
	return AdaptProgram(program.Weeks(), Calculate(p))
}

func adaptWorkout(w *program.Workout, s Settings) error {
	if s.WarmupExtensionMinutes > 0 {
		n, err := leadingMinutes(w.Warmup)
		if err != nil {
			return fmt.Errorf("warmup: %w", err)
		}
		w.Warmup = fmt.Sprintf("%d min brisk walk", n+s.WarmupExtensionMinutes)
	}

	if s.CooldownExtensionMinutes > 0 {
		n, err := leadingMinutes(w.Cooldown)
		if err != nil {
			return fmt.Errorf("cooldown: %w", err)
		}
		w.Cooldown = fmt.Sprintf("%d min slow walk", n+s.CooldownExtensionMinutes)
	}

	if s.ExtraRestSeconds > 0 {
		for i, iv := range w.Intervals {
			if iv.Type != program.IntervalWalk {
				continue
			}
			secs, err := program.ParseDuration(iv.Duration)
			if err != nil {
				return err
			}
			w.Intervals[i].Duration = program.FormatSeconds(secs + s.ExtraRestSeconds)
			w.Intervals[i].Description = iv.Description + " (extended for recovery)"
		}
	}

	// Coarse total-duration heuristic: scale by the warmup/cooldown
	// extensions over ten rather than resumming intervals. Kept exactly for
	// output parity with the timer display.
	scale := 1 + float64(s.WarmupExtensionMinutes)/10 + float64(s.CooldownExtensionMinutes)/10
	w.Duration = int(math.Ceil(float64(w.Duration) * scale))

	if len(s.SpecialInstructions) > 0 {
		head := s.SpecialInstructions
		if len(head) > 2 {
			head = head[:2]
		}
		w.Tips += " ADAPTIVE NOTES: " + strings.Join(head, ". ") + "."
	}

	if s.MaxHeartRateBpm > 0 {
		w.SafetyNotes += fmt.Sprintf(" Target heart rate should not exceed %d BPM.", s.MaxHeartRateBpm)
	}

	return nil
}

// leadingMinutes reads the leading integer of a warmup/cooldown string such
// as "5 min brisk walk".
func leadingMinutes(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty duration text")
	}
	secs, err := program.ParseDuration(fields[0] + " min")
	if err != nil {
		return 0, err
	}
	return secs / 60, nil
}
