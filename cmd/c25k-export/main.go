// c25k-export is the offline companion CLI. It keeps profiles, sessions, and
// progress in a local SQLite database and produces calendar files and fitness
// platform exports without needing the server. It can also expose the same
// data to MCP clients over stdio.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/c25k/internal/adaptive"
	"github.com/claude/c25k/internal/calendar"
	"github.com/claude/c25k/internal/export"
	"github.com/claude/c25k/internal/mcp"
	"github.com/claude/c25k/internal/models"
	"github.com/claude/c25k/internal/program"
	"github.com/claude/c25k/internal/progress"
	"github.com/claude/c25k/internal/storage"
	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	dataDir := flag.String("data", "", "data directory (default ~/.c25k)")
	profilePath := flag.String("profile", "", "create or update a profile from a JSON file and print its ID")
	userStr := flag.String("user", "", "profile ID to operate on")
	record := flag.String("record", "", "record a session as week:day (e.g. 3:2)")
	incomplete := flag.Bool("incomplete", false, "mark the recorded session as not completed")
	format := flag.String("format", "", "plan export format: ics, csv, json, markdown, xlsx, strava, garmin, intervals")
	platform := flag.String("platform", "", "workout export platform: strava, garmin, intervals, applehealth, googlefit, runkeeper")
	startStr := flag.String("start", "", "program start date (YYYY-MM-DD, default today)")
	hour := flag.Int("hour", 9, "workout hour (0-23)")
	minute := flag.Int("minute", 0, "workout minute (0-59)")
	alert := flag.Int("alert", calendar.DefaultAlertMinutes, "calendar reminder lead time in minutes, 0 disables")
	outDir := flag.String("out", ".", "output directory for export files")
	serveMCP := flag.Bool("mcp", false, "serve MCP over stdio for the given user")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("c25k-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	dir := *dataDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".c25k")
	}

	store, err := storage.OpenSQLite(dir)
	if err != nil {
		log.Error("failed to open data directory", "dir", dir, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	if *profilePath != "" {
		if err := saveProfile(ctx, store, *profilePath); err != nil {
			log.Error("saving profile failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if *userStr == "" {
		fmt.Fprintf(os.Stderr, "Usage: c25k-export -user <id> [-record W:D | -format F | -platform P | -mcp]\n")
		fmt.Fprintf(os.Stderr, "       c25k-export -profile profile.json\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	userID, err := uuid.Parse(*userStr)
	if err != nil {
		log.Error("invalid user ID", "user", *userStr)
		os.Exit(1)
	}

	if *serveMCP {
		s := mcp.New(store, Version, log)
		err := mcpserver.ServeStdio(s, mcpserver.WithStdioContextFunc(
			func(ctx context.Context) context.Context {
				return mcp.WithUserID(ctx, userID)
			}))
		if err != nil {
			log.Error("mcp server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if *record != "" {
		if err := recordSession(ctx, store, userID, *record, !*incomplete); err != nil {
			log.Error("recording session failed", "error", err)
			os.Exit(1)
		}
		return
	}

	startDay := time.Now().Truncate(24 * time.Hour)
	if *startStr != "" {
		startDay, err = time.Parse("2006-01-02", *startStr)
		if err != nil {
			log.Error("invalid start date", "start", *startStr)
			os.Exit(1)
		}
	}

	p, err := store.GetProfile(ctx, userID)
	if err != nil {
		log.Error("loading profile failed", "user", userID, "error", err)
		os.Exit(1)
	}

	switch {
	case *platform != "":
		err = exportWorkouts(ctx, store, p, *platform, *outDir)
	case *format != "":
		err = exportPlan(p, *format, startDay, *hour, *minute, *alert, *outDir)
	default:
		fmt.Fprintf(os.Stderr, "Error: one of -record, -format, -platform, or -mcp is required\n")
		os.Exit(1)
	}
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}
}

// saveProfile creates or updates a profile from a JSON file, initializing
// progress on first save, and prints the profile ID.
func saveProfile(ctx context.Context, store storage.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading profile file: %w", err)
	}
	var p models.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parsing profile file: %w", err)
	}

	now := time.Now().UTC()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return err
	}

	if err := store.SaveProfile(ctx, p); err != nil {
		return err
	}
	if _, err := store.GetProgress(ctx, p.ID); err != nil {
		if err := store.SaveProgress(ctx, models.NewProgress(p.ID)); err != nil {
			return err
		}
	}

	fmt.Println(p.ID)
	return nil
}

// recordSession records a full pass over the workout at week:day and folds
// it into progress, printing any newly unlocked achievements.
func recordSession(ctx context.Context, store storage.Store, userID uuid.UUID, arg string, completed bool) error {
	var week, day int
	if _, err := fmt.Sscanf(arg, "%d:%d", &week, &day); err != nil {
		return fmt.Errorf("invalid -record value %q, want week:day", arg)
	}
	wo, found := program.Find(week, day)
	if !found {
		return fmt.Errorf("no workout at week %d day %d", week, day)
	}

	intervals := make([]models.IntervalResult, 0, len(wo.Intervals))
	for _, iv := range wo.Intervals {
		secs, err := program.ParseDuration(iv.Duration)
		if err != nil {
			return fmt.Errorf("interval %q: %w", iv.Duration, err)
		}
		intervals = append(intervals, models.IntervalResult{
			Type:                   iv.Type,
			PlannedDurationSeconds: secs,
			Completed:              completed,
		})
	}

	session := models.WorkoutSession{
		ID:        uuid.New(),
		UserID:    userID,
		Week:      week,
		Day:       day,
		StartTime: time.Now().UTC(),
		Completed: completed,
		Intervals: intervals,
	}

	prog, err := store.GetProgress(ctx, userID)
	if err != nil {
		prog = models.NewProgress(userID)
	}
	updated := progress.RecordSession(prog, session)

	if err := store.AppendSession(ctx, session); err != nil {
		return err
	}
	if err := store.SaveProgress(ctx, updated); err != nil {
		return err
	}

	fmt.Printf("Recorded week %d day %d (%d workouts total)\n", week, day, updated.TotalWorkouts)
	for _, a := range updated.Achievements[len(prog.Achievements):] {
		fmt.Printf("Achievement unlocked: %s %s\n", a.Icon, a.Title)
	}
	return nil
}

// exportWorkouts writes the platform payload for the user's sessions.
func exportWorkouts(ctx context.Context, store storage.Store, p models.UserProfile, platform, outDir string) error {
	sessions, err := store.ListSessions(ctx, p.ID)
	if err != nil {
		return err
	}

	data, err := export.Export(export.Platform(platform), sessions, p)
	if err != nil {
		return err
	}

	var body []byte
	if rows, ok := data.Data.([]export.AppleHealthRow); ok {
		out, err := export.AppleHealthCSV(rows)
		if err != nil {
			return err
		}
		body = []byte(out)
	} else {
		body, err = json.MarshalIndent(data.Data, "", "  ")
		if err != nil {
			return err
		}
	}
	return writeExport(outDir, data.Filename, body)
}

// exportPlan writes the adapted plan in the requested format.
func exportPlan(p models.UserProfile, format string, startDay time.Time, hour, minute, alert int, outDir string) error {
	weeks, err := adaptive.AdaptForProfile(p)
	if err != nil {
		return fmt.Errorf("adapting program: %w", err)
	}
	entries := calendar.BuildSchedule(weeks, p.RestDays, startDay)

	switch strings.ToLower(format) {
	case "ics":
		ics := calendar.GenerateICS(entries, startDay, hour, minute, alert)
		return writeExport(outDir, "c25k_program.ics", []byte(ics))
	case "csv":
		out, err := export.PlanCSV(entries)
		if err != nil {
			return err
		}
		return writeExport(outDir, "c25k_program.csv", []byte(out))
	case "json":
		out, err := export.PlanJSON(entries)
		if err != nil {
			return err
		}
		return writeExport(outDir, "c25k_program.json", []byte(out))
	case "markdown":
		out := export.PlanMarkdown(entries, p, startDay)
		return writeExport(outDir, "c25k_program.md", []byte(out))
	case "xlsx":
		out, err := export.PlanXLSX(entries)
		if err != nil {
			return err
		}
		return writeExport(outDir, "c25k_program.xlsx", out)
	case "strava", "garmin", "intervals":
		data, err := export.CompleteProgram(export.Platform(format), entries, p, startDay, hour, minute)
		if err != nil {
			return err
		}
		body, err := json.MarshalIndent(data.Data, "", "  ")
		if err != nil {
			return err
		}
		return writeExport(outDir, data.Filename, body)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeExport(outDir, filename string, body []byte) error {
	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println(path)
	return nil
}
