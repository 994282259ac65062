package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/c25k/internal/adaptive"
	"github.com/claude/c25k/internal/export"
	"github.com/claude/c25k/internal/models"
	"github.com/claude/c25k/internal/program"
	"github.com/claude/c25k/internal/progress"
	"github.com/claude/c25k/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetProgram = mcp.NewTool("get_program",
	mcp.WithDescription("Retrieve the unadapted 9-week Couch to 5K program, or a single workout from it."),
	mcp.WithNumber("week", mcp.Description("Week number (1-9). When set together with day, returns only that workout.")),
	mcp.WithNumber("day", mcp.Description("Day number (1-3). Requires week.")),
)

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Retrieve the user's personalized plan: the 9-week program adapted to their profile (age, weight, fitness level, medical conditions), plus the adaptation settings that were applied."),
)

var toolGetTips = mcp.NewTool("get_tips",
	mcp.WithDescription("Get personalized coaching tips and the target heart rate zone for a given program week."),
	mcp.WithNumber("week", mcp.Description("Week number (1-9). Defaults to the user's current week.")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Get the user's training progress: current position, workout counts, total running time, and unlocked achievements."),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("List the user's recorded workout sessions in recording order."),
)

var toolRecordSession = mcp.NewTool("record_session",
	mcp.WithDescription("Record a workout session for the user. Marks every interval of the named workout as done and folds the session into progress, unlocking any earned achievements."),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week number (1-9)")),
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Day number (1-3)")),
	mcp.WithBoolean("completed", mcp.Description("Whether the workout was fully completed. Defaults to true.")),
	mcp.WithString("notes", mcp.Description("Free-form session notes")),
)

var toolExportWorkouts = mcp.NewTool("export_workouts",
	mcp.WithDescription("Build a fitness platform export payload from the user's recorded sessions."),
	mcp.WithString("platform", mcp.Required(),
		mcp.Description("Target platform"),
		mcp.Enum("strava", "garmin", "intervals", "applehealth", "googlefit", "runkeeper")),
)

// --- Tool handlers ---

func (h *handlers) getProgram(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week := req.GetInt("week", 0)
	day := req.GetInt("day", 0)

	if week == 0 && day == 0 {
		return toolJSON(program.Weeks())
	}
	wo, found := program.Find(week, day)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("no workout at week %d day %d", week, day)), nil
	}
	return toolJSON(wo)
}

func (h *handlers) getPlan(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := h.profile(ctx)
	if errResult != nil {
		return errResult, nil
	}

	weeks, err := adaptive.AdaptForProfile(p)
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("adapting program failed: " + err.Error()), nil
	}
	return toolJSON(map[string]any{
		"settings": adaptive.Calculate(p),
		"weeks":    weeks,
	})
}

func (h *handlers) getTips(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := h.profile(ctx)
	if errResult != nil {
		return errResult, nil
	}

	week := req.GetInt("week", 0)
	if week == 0 {
		week = 1
		if prog, err := h.store.GetProgress(ctx, p.ID); err == nil {
			week = prog.CurrentWeek
		}
	}
	if week < 1 || week > 9 {
		return mcp.NewToolResultError("week must be 1-9"), nil
	}

	return toolJSON(map[string]any{
		"week":          week,
		"tips":          adaptive.PersonalizedTips(p, week),
		"heartRateZone": adaptive.TargetHeartRate(p),
	})
}

func (h *handlers) getProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	prog, err := h.store.GetProgress(ctx, uid)
	if errors.Is(err, storage.ErrNotFound) {
		prog = models.NewProgress(uid)
	} else if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(prog)
}

func (h *handlers) getSessions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.store.ListSessions(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	return toolJSON(sessions)
}

func (h *handlers) recordSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	day, err := req.RequireInt("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	completed := req.GetBool("completed", true)

	wo, found := program.Find(week, day)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("no workout at week %d day %d", week, day)), nil
	}

	intervals, err := sessionIntervals(wo, completed)
	if err != nil {
		return mcp.NewToolResultError("building intervals: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	now := time.Now().UTC()
	session := models.WorkoutSession{
		ID:        uuid.New(),
		UserID:    uid,
		Week:      week,
		Day:       day,
		StartTime: now,
		Completed: completed,
		Intervals: intervals,
		Notes:     req.GetString("notes", ""),
	}

	prog, err := h.store.GetProgress(ctx, uid)
	if errors.Is(err, storage.ErrNotFound) {
		prog = models.NewProgress(uid)
	} else if err != nil {
		h.log.Error("mcp record_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	updated := progress.RecordSession(prog, session)
	if err := h.store.AppendSession(ctx, session); err != nil {
		h.log.Error("mcp record_session append", "error", err)
		return mcp.NewToolResultError("saving session failed: " + err.Error()), nil
	}
	if err := h.store.SaveProgress(ctx, updated); err != nil {
		h.log.Error("mcp record_session progress", "error", err)
		return mcp.NewToolResultError("saving progress failed: " + err.Error()), nil
	}

	return toolJSON(map[string]any{
		"session":  session,
		"progress": updated,
		"unlocked": updated.Achievements[len(prog.Achievements):],
	})
}

func (h *handlers) exportWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform, err := req.RequireString("platform")
	if err != nil {
		return mcp.NewToolResultError("platform parameter is required"), nil
	}

	p, errResult := h.profile(ctx)
	if errResult != nil {
		return errResult, nil
	}

	sessions, err := h.store.ListSessions(ctx, p.ID)
	if err != nil {
		h.log.Error("mcp export_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	data, err := export.Export(export.Platform(platform), sessions, p)
	if err != nil {
		return mcp.NewToolResultError("export failed: " + err.Error()), nil
	}
	return toolJSON(data)
}

// profile loads the context user's profile, returning a ready error result
// when that fails.
func (h *handlers) profile(ctx context.Context) (models.UserProfile, *mcp.CallToolResult) {
	uid := UserIDFromContext(ctx)
	p, err := h.store.GetProfile(ctx, uid)
	if errors.Is(err, storage.ErrNotFound) {
		return models.UserProfile{}, mcp.NewToolResultError("no profile found for user " + uid.String())
	}
	if err != nil {
		h.log.Error("mcp profile load", "error", err)
		return models.UserProfile{}, mcp.NewToolResultError("query failed: " + err.Error())
	}
	return p, nil
}

// sessionIntervals turns a workout's planned intervals into recorded results.
func sessionIntervals(wo program.Workout, completed bool) ([]models.IntervalResult, error) {
	results := make([]models.IntervalResult, 0, len(wo.Intervals))
	for _, iv := range wo.Intervals {
		secs, err := program.ParseDuration(iv.Duration)
		if err != nil {
			return nil, fmt.Errorf("interval %q: %w", iv.Duration, err)
		}
		results = append(results, models.IntervalResult{
			Type:                   iv.Type,
			PlannedDurationSeconds: secs,
			Completed:              completed,
		})
	}
	return results, nil
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
