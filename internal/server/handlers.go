package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/c25k/internal/adaptive"
	"github.com/claude/c25k/internal/calendar"
	"github.com/claude/c25k/internal/export"
	"github.com/claude/c25k/internal/models"
	"github.com/claude/c25k/internal/planner"
	"github.com/claude/c25k/internal/program"
	"github.com/claude/c25k/internal/progress"
	"github.com/claude/c25k/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, program.Weeks())
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := p.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.store.SaveProfile(r.Context(), p); err != nil {
		s.log.Error("saving profile", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := s.store.SaveProgress(r.Context(), models.NewProgress(p.ID)); err != nil {
		s.log.Error("initializing progress", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	p, err := s.store.GetProfile(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	existing, err := s.store.GetProfile(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var p models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	if err := p.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.store.SaveProfile(r.Context(), p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProfile(w, r)
	if !ok {
		return
	}

	weeks, err := adaptive.AdaptForProfile(p)
	if err != nil {
		s.log.Error("adapting program", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"settings": adaptive.Calculate(p),
		"weeks":    weeks,
	})
}

func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProfile(w, r)
	if !ok {
		return
	}

	week := 1
	if v := r.URL.Query().Get("week"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 9 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "week must be 1-9"})
			return
		}
		week = n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"week":          week,
		"tips":          adaptive.PersonalizedTips(p, week),
		"heartRateZone": adaptive.TargetHeartRate(p),
	})
}

func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	var session models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if _, found := program.Find(session.Week, session.Day); !found {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("no workout at week %d day %d", session.Week, session.Day)})
		return
	}
	session.UserID = id
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.StartTime.IsZero() {
		session.StartTime = time.Now().UTC()
	}

	mu := s.userLock(id)
	mu.Lock()
	defer mu.Unlock()

	prog, err := s.store.GetProgress(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		prog = models.NewProgress(id)
	} else if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	updated := progress.RecordSession(prog, session)

	if err := s.store.AppendSession(r.Context(), session); err != nil {
		s.log.Error("appending session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := s.store.SaveProgress(r.Context(), updated); err != nil {
		s.log.Error("saving progress", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"session":  session,
		"progress": updated,
		"unlocked": updated.Achievements[len(prog.Achievements):],
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	sessions, err := s.store.ListSessions(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	prog, err := s.store.GetProgress(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "progress not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProfile(w, r)
	if !ok {
		return
	}

	startDay, hour, minute, alert, err := scheduleParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	entries, err := s.schedule(p, startDay)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	ics := calendar.GenerateICS(entries, startDay, hour, minute, alert)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="c25k_program.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics))
}

func (s *Server) handleExportWorkouts(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProfile(w, r)
	if !ok {
		return
	}

	sessions, err := s.store.ListSessions(r.Context(), p.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// An explicit session ID narrows the export to that one session.
	if v := r.URL.Query().Get("session"); v != "" {
		sessionID, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
			return
		}
		var picked []models.WorkoutSession
		for _, ws := range sessions {
			if ws.ID == sessionID {
				picked = append(picked, ws)
				break
			}
		}
		if picked == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
			return
		}
		sessions = picked
	}

	platform := export.Platform(chi.URLParam(r, "platform"))
	data, err := export.Export(platform, sessions, p)
	if errors.Is(err, export.ErrUnsupportedPlatform) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	serveExport(w, data)
}

// handleExportPlan renders the full adapted plan in the requested format.
// The calendar formats are produced locally; anything else is forwarded to
// the external plan service when one is configured.
func (s *Server) handleExportPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProfile(w, r)
	if !ok {
		return
	}

	startDay, hour, minute, alert, err := scheduleParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	entries, err := s.schedule(p, startDay)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "ics":
		ics := calendar.GenerateICS(entries, startDay, hour, minute, alert)
		serveFile(w, "text/calendar; charset=utf-8", "c25k_program.ics", []byte(ics))
	case "csv":
		out, err := export.PlanCSV(entries)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		serveFile(w, "text/csv; charset=utf-8", "c25k_program.csv", []byte(out))
	case "json":
		out, err := export.PlanJSON(entries)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		serveFile(w, "application/json", "c25k_program.json", []byte(out))
	case "markdown":
		out := export.PlanMarkdown(entries, p, startDay)
		serveFile(w, "text/markdown; charset=utf-8", "c25k_program.md", []byte(out))
	case "xlsx":
		out, err := export.PlanXLSX(entries)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		serveFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"c25k_program.xlsx", out)
	case "strava", "garmin", "intervals":
		data, err := export.CompleteProgram(export.Platform(format), entries, p, startDay, hour, minute)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		serveExport(w, data)
	default:
		if s.planner == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("unknown export format %q", format)})
			return
		}
		blob, err := s.planner.ExportPlan(r.Context(), format, entries,
			planner.NewPlanRequest(p, startDay, hour, minute))
		if err != nil {
			s.log.Error("plan service export", "format", format, "error", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		serveFile(w, "application/octet-stream", "c25k_program."+format, blob)
	}
}

func (s *Server) handleExportFormats(w http.ResponseWriter, r *http.Request) {
	formats := planner.DefaultFormats()
	if s.planner != nil {
		formats = s.planner.ExportFormats(r.Context())
	}
	// Served locally regardless of what the plan service offers.
	formats["xlsx"] = "Excel workbook format"
	writeJSON(w, http.StatusOK, formats)
}

// schedule builds the profile-adapted calendar entries.
func (s *Server) schedule(p models.UserProfile, startDay time.Time) ([]calendar.Entry, error) {
	weeks, err := adaptive.AdaptForProfile(p)
	if err != nil {
		return nil, fmt.Errorf("adapting program: %w", err)
	}
	return calendar.BuildSchedule(weeks, p.RestDays, startDay), nil
}

// loadProfile resolves the {id} URL param to a stored profile, writing the
// error response itself when that fails.
func (s *Server) loadProfile(w http.ResponseWriter, r *http.Request) (models.UserProfile, bool) {
	id, ok := profileID(w, r)
	if !ok {
		return models.UserProfile{}, false
	}
	p, err := s.store.GetProfile(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return models.UserProfile{}, false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return models.UserProfile{}, false
	}
	return p, true
}

func profileID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile ID"})
		return uuid.Nil, false
	}
	return id, true
}

// scheduleParams parses the shared scheduling query parameters: start date
// (today when omitted), workout hour and minute, and the reminder lead time.
func scheduleParams(r *http.Request) (startDay time.Time, hour, minute, alert int, err error) {
	startDay = time.Now().Truncate(24 * time.Hour)
	if v := r.URL.Query().Get("start"); v != "" {
		startDay, err = time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, 0, 0, 0, fmt.Errorf("invalid start date %q", v)
		}
	}

	hour = 9
	if v := r.URL.Query().Get("hour"); v != "" {
		hour, err = strconv.Atoi(v)
		if err != nil || hour < 0 || hour > 23 {
			return time.Time{}, 0, 0, 0, fmt.Errorf("invalid hour %q", v)
		}
	}
	if v := r.URL.Query().Get("minute"); v != "" {
		minute, err = strconv.Atoi(v)
		if err != nil || minute < 0 || minute > 59 {
			return time.Time{}, 0, 0, 0, fmt.Errorf("invalid minute %q", v)
		}
	}

	alert = calendar.DefaultAlertMinutes
	if v := r.URL.Query().Get("alert"); v != "" {
		alert, err = strconv.Atoi(v)
		if err != nil || alert < 0 {
			return time.Time{}, 0, 0, 0, fmt.Errorf("invalid alert %q", v)
		}
	}
	return startDay, hour, minute, alert, nil
}

// serveExport writes a platform export payload, rendering CSV-format
// payloads as actual CSV and everything else as indented JSON.
func serveExport(w http.ResponseWriter, data export.Data) {
	if data.Format == "csv" {
		if rows, ok := data.Data.([]export.AppleHealthRow); ok {
			out, err := export.AppleHealthCSV(rows)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			serveFile(w, "text/csv; charset=utf-8", data.Filename, []byte(out))
			return
		}
	}

	out, err := json.MarshalIndent(data.Data, "", "  ")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	serveFile(w, "application/json", data.Filename, out)
}

func serveFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
