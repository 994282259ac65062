package program

// The canonical 9-week program, based on the NHS Couch-to-5K structure.
// Treated as immutable input data: Weeks returns deep copies so callers can
// never mutate the template through an adapted plan.

// Weeks returns a deep copy of the full 9-week template.
func Weeks() []WeekProgram {
	out := make([]WeekProgram, len(template))
	for i, w := range template {
		out[i] = w.Clone()
	}
	return out
}

// Find returns a deep copy of the workout identified by week and day.
func Find(week, day int) (Workout, bool) {
	for _, w := range template {
		if w.Week != week {
			continue
		}
		for _, wo := range w.Workouts {
			if wo.Day == day {
				cp := wo
				cp.Intervals = make([]WorkoutInterval, len(wo.Intervals))
				copy(cp.Intervals, wo.Intervals)
				return cp, true
			}
		}
	}
	return Workout{}, false
}

func run(duration, description string) WorkoutInterval {
	return WorkoutInterval{Type: IntervalRun, Duration: duration, Description: description}
}

func walk(duration, description string) WorkoutInterval {
	return WorkoutInterval{Type: IntervalWalk, Duration: duration, Description: description}
}

// alternate builds a run/walk sequence starting with a run. nRuns and nWalks
// may differ by at most one (a sequence can end on either type).
func alternate(r, w WorkoutInterval, nRuns, nWalks int) []WorkoutInterval {
	out := make([]WorkoutInterval, 0, nRuns+nWalks)
	for i := 0; i < nRuns || i < nWalks; i++ {
		if i < nRuns {
			out = append(out, r)
		}
		if i < nWalks {
			out = append(out, w)
		}
	}
	return out
}

var template = []WeekProgram{
	{
		Week:           1,
		Title:          "Getting Started",
		Description:    "Begin your journey with alternating running and walking intervals",
		Focus:          "Building basic endurance and establishing routine",
		SafetyReminder: "Start slowly and listen to your body. Hydrate well.",
		Workouts: []Workout{
			{
				Day:         1,
				Warmup:      "5 min brisk walk",
				Intervals:   alternate(run("1 min", "Easy jog"), walk("90 sec", "Recovery walk"), 8, 8),
				Cooldown:    "5 min slow walk",
				Tips:        "Focus on form rather than speed. You should be able to hold a conversation while running.",
				Duration:    30,
				SafetyNotes: "Stop if you feel pain. Slight breathlessness is normal.",
			},
			{
				Day:       2,
				Warmup:    "5 min brisk walk",
				Intervals: alternate(run("1 min", "Easy jog"), walk("90 sec", "Recovery walk"), 8, 8),
				Cooldown:  "5 min slow walk",
				Tips:      "Don't worry about speed - consistency is key. Celebrate completing each interval!",
				Duration:  30,
			},
			{
				Day:       3,
				Warmup:    "5 min brisk walk",
				Intervals: alternate(run("1 min", "Easy jog"), walk("90 sec", "Recovery walk"), 8, 8),
				Cooldown:  "5 min slow walk",
				Tips:      "Week 1 complete! Your body is already adapting. Rest days are crucial for recovery.",
				Duration:  30,
			},
		},
	},
	{
		Week:           2,
		Title:          "Building Endurance",
		Description:    "Increase running intervals to 90 seconds",
		Focus:          "Extending running intervals and building stamina",
		SafetyReminder: "Maintain proper hydration and don't skip rest days",
		Workouts: []Workout{
			{
				Day:       1,
				Warmup:    "5 min brisk walk",
				Intervals: alternate(run("90 sec", "Steady jog"), walk("2 min", "Recovery walk"), 6, 5),
				Cooldown:  "5 min slow walk",
				Tips:      "Longer intervals! Focus on maintaining a steady, comfortable pace throughout.",
				Duration:  30,
			},
			{
				Day:       2,
				Warmup:    "5 min brisk walk",
				Intervals: alternate(run("90 sec", "Steady jog"), walk("2 min", "Recovery walk"), 6, 5),
				Cooldown:  "5 min slow walk",
				Tips:      "Your cardiovascular system is getting stronger. Notice how recovery becomes easier.",
				Duration:  30,
			},
			{
				Day:       3,
				Warmup:    "5 min brisk walk",
				Intervals: alternate(run("90 sec", "Steady jog"), walk("2 min", "Recovery walk"), 6, 5),
				Cooldown:  "5 min slow walk",
				Tips:      "Great progress! You're building the foundation for longer runs ahead.",
				Duration:  30,
			},
		},
	},
	{
		Week:           3,
		Title:          "Mixed Intervals",
		Description:    "Combination of 90-second and 3-minute running intervals",
		Focus:          "Introducing longer running segments",
		SafetyReminder: "Pay attention to your body's signals during longer intervals",
		Workouts: []Workout{
			{
				Day:       1,
				Warmup:    "5 min brisk walk",
				Intervals: week3Intervals(),
				Cooldown:  "5 min slow walk",
				Tips:      "First taste of longer runs! Break the 3-minute intervals into smaller mental chunks.",
				Duration:  32,
			},
			{
				Day:       2,
				Warmup:    "5 min brisk walk",
				Intervals: week3Intervals(),
				Cooldown:  "5 min slow walk",
				Tips:      "Focus on rhythm and breathing during the longer intervals. You're getting stronger!",
				Duration:  32,
			},
			{
				Day:       3,
				Warmup:    "5 min brisk walk",
				Intervals: week3Intervals(),
				Cooldown:  "5 min slow walk",
				Tips:      "Milestone achieved! You can now run for 3 minutes straight. Amazing progress!",
				Duration:  32,
			},
		},
	},
	{
		Week:           4,
		Title:          "Stepping Up",
		Description:    "Longer continuous runs with walking recovery",
		Focus:          "Building continuous running endurance",
		SafetyReminder: "Longer runs require more attention to hydration and pace",
		Workouts: []Workout{
			{
				Day:       1,
				Warmup:    "5 min brisk walk",
				Intervals: week4Intervals(),
				Cooldown:  "5 min slow walk",
				Tips:      "Your first 5-minute runs! Pace yourself - it's about endurance, not speed.",
				Duration:  35,
			},
			{
				Day:       2,
				Warmup:    "5 min brisk walk",
				Intervals: week4Intervals(),
				Cooldown:  "5 min slow walk",
				Tips:      "Notice how your breathing becomes more controlled during longer runs.",
				Duration:  35,
			},
			{
				Day:       3,
				Warmup:    "5 min brisk walk",
				Intervals: week4Intervals(),
				Cooldown:  "5 min slow walk",
				Tips:      "Halfway through the program! Your endurance is really building now.",
				Duration:  35,
			},
		},
	},
	{
		Week:           5,
		Title:          "Continuous Running",
		Description:    "First continuous runs without walking breaks",
		Focus:          "Transitioning to uninterrupted running",
		SafetyReminder: "First continuous runs - listen to your body and adjust pace as needed",
		Workouts: []Workout{
			{
				Day:    1,
				Warmup: "5 min brisk walk",
				Intervals: []WorkoutInterval{
					run("5 min", "Warm-up run"),
					walk("3 min", "Recovery walk"),
					run("5 min", "Steady run"),
					walk("3 min", "Recovery walk"),
					run("5 min", "Closing run"),
				},
				Cooldown: "5 min slow walk",
				Tips:     "Three 5-minute runs with walking breaks. You're building serious endurance!",
				Duration: 36,
			},
			{
				Day:    2,
				Warmup: "5 min brisk walk",
				Intervals: []WorkoutInterval{
					run("8 min", "Extended continuous run"),
					walk("5 min", "Recovery walk"),
					run("8 min", "Extended continuous run"),
				},
				Cooldown: "5 min slow walk",
				Tips:     "Two 8-minute runs! Focus on maintaining a steady, sustainable pace.",
				Duration: 36,
			},
			{
				Day:    3,
				Warmup: "5 min brisk walk",
				Intervals: []WorkoutInterval{
					run("20 min", "Continuous run - your longest yet!"),
				},
				Cooldown:    "5 min slow walk",
				Tips:        "Incredible! You just ran for 20 minutes straight. This is a major milestone!",
				Duration:    30,
				SafetyNotes: "First 20-minute run - start conservatively and adjust pace as needed",
			},
		},
	},
	{
		Week:           6,
		Title:          "Sustained Running",
		Description:    "Longer continuous runs building towards 25 minutes",
		Focus:          "Extending continuous running duration",
		SafetyReminder: "Longer continuous runs - focus on pace management",
		Workouts: []Workout{
			{
				Day:    1,
				Warmup: "5 min brisk walk",
				Intervals: []WorkoutInterval{
					run("5 min", "Warm-up run"),
					walk("3 min", "Recovery walk"),
					run("8 min", "Extended run"),
					walk("3 min", "Recovery walk"),
					run("5 min", "Closing run"),
				},
				Cooldown: "5 min slow walk",
				Tips:     "Mixed intervals to maintain fitness while building endurance base.",
				Duration: 39,
			},
			{
				Day:    2,
				Warmup: "5 min brisk walk",
				Intervals: []WorkoutInterval{
					run("10 min", "Extended run"),
					walk("3 min", "Recovery walk"),
					run("10 min", "Extended run"),
				},
				Cooldown: "5 min slow walk",
				Tips:     "Two 10-minute runs with a break. You're approaching the final phase!",
				Duration: 38,
			},
			{
				Day:    3,
				Warmup: "5 min brisk walk",
				Intervals: []WorkoutInterval{
					run("25 min", "Long continuous run"),
				},
				Cooldown: "5 min slow walk",
				Tips:     "25 minutes of continuous running! You're almost ready for 5K distance.",
				Duration: 35,
			},
		},
	},
	{
		Week:           7,
		Title:          "Final Preparation",
		Description:    "Preparing for 5K distance with consistent 25-minute runs",
		Focus:          "Consistency and pace management for 5K distance",
		SafetyReminder: "Focus on consistency rather than speed",
		Workouts: []Workout{
			{
				Day:       1,
				Warmup:    "5 min brisk walk",
				Intervals: []WorkoutInterval{run("25 min", "Steady continuous run")},
				Cooldown:  "5 min slow walk",
				Tips:      "Consistent 25-minute runs. Focus on finding your sustainable pace.",
				Duration:  35,
			},
			{
				Day:       2,
				Warmup:    "5 min brisk walk",
				Intervals: []WorkoutInterval{run("25 min", "Steady continuous run")},
				Cooldown:  "5 min slow walk",
				Tips:      "Second 25-minute run this week. Notice how much easier it feels now!",
				Duration:  35,
			},
			{
				Day:       3,
				Warmup:    "5 min brisk walk",
				Intervals: []WorkoutInterval{run("25 min", "Steady continuous run")},
				Cooldown:  "5 min slow walk",
				Tips:      "Third 25-minute run! You're building the endurance base for 5K.",
				Duration:  35,
			},
		},
	},
	{
		Week:           8,
		Title:          "Building to 5K",
		Description:    "Extending to 28-30 minutes to reach 5K distance",
		Focus:          "Reaching and maintaining 5K distance",
		SafetyReminder: "You're close to the goal - maintain good form and pace",
		Workouts: []Workout{
			{
				Day:       1,
				Warmup:    "5 min brisk walk",
				Intervals: []WorkoutInterval{run("28 min", "Extended run approaching 5K")},
				Cooldown:  "5 min slow walk",
				Tips:      "28 minutes of running! You're very close to completing a full 5K distance.",
				Duration:  38,
			},
			{
				Day:       2,
				Warmup:    "5 min brisk walk",
				Intervals: []WorkoutInterval{run("28 min", "Extended run approaching 5K")},
				Cooldown:  "5 min slow walk",
				Tips:      "Consistency is key. Your body is adapting to sustained running.",
				Duration:  38,
			},
			{
				Day:       3,
				Warmup:    "5 min brisk walk",
				Intervals: []WorkoutInterval{run("30 min", "5K distance run!")},
				Cooldown:  "5 min slow walk",
				Tips:      "30 minutes of continuous running! You've likely covered 5K distance. Amazing achievement!",
				Duration:  40,
			},
		},
	},
	{
		Week:           9,
		Title:          "5K Achievement",
		Description:    "Completing and mastering the 5K distance",
		Focus:          "Consolidating 5K achievement and building confidence",
		SafetyReminder: "Celebrate your achievement while maintaining good running habits",
		Workouts: []Workout{
			{
				Day:       1,
				Warmup:    "5 min brisk walk",
				Intervals: []WorkoutInterval{run("30 min", "5K continuous run")},
				Cooldown:  "5 min slow walk",
				Tips:      "You're now a 5K runner! Focus on enjoying the achievement and your new fitness level.",
				Duration:  40,
			},
			{
				Day:       2,
				Warmup:    "5 min brisk walk",
				Intervals: []WorkoutInterval{run("30 min", "5K continuous run")},
				Cooldown:  "5 min slow walk",
				Tips:      "Second 5K of the week. Notice how your confidence and enjoyment have grown!",
				Duration:  40,
			},
			{
				Day:         3,
				Warmup:      "5 min brisk walk",
				Intervals:   []WorkoutInterval{run("30 min", "Graduation 5K run!")},
				Cooldown:    "5 min slow walk",
				Tips:        "CONGRATULATIONS! You've completed the Couch to 5K program. You're now a runner!",
				Duration:    40,
				SafetyNotes: "Celebrate your achievement! Consider setting new running goals.",
			},
		},
	},
}

func week3Intervals() []WorkoutInterval {
	return []WorkoutInterval{
		run("90 sec", "Warm-up jog"),
		walk("90 sec", "Recovery walk"),
		run("3 min", "Longer steady run"),
		walk("3 min", "Full recovery walk"),
		run("90 sec", "Steady jog"),
		walk("90 sec", "Recovery walk"),
		run("3 min", "Longer steady run"),
		walk("3 min", "Full recovery walk"),
	}
}

func week4Intervals() []WorkoutInterval {
	return []WorkoutInterval{
		run("3 min", "Steady run"),
		walk("90 sec", "Recovery walk"),
		run("5 min", "Extended run"),
		walk("2.5 min", "Recovery walk"),
		run("3 min", "Steady run"),
		walk("90 sec", "Recovery walk"),
		run("5 min", "Extended run"),
	}
}
