package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/c25k/internal/models"
	"github.com/claude/c25k/internal/planner"
	"github.com/claude/c25k/internal/progress"
	"github.com/claude/c25k/internal/storage"
	"github.com/google/uuid"
)

const testAPIKey = "test-key"

func testServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, nil, testAPIKey, log)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func createProfile(t *testing.T, srv *Server) models.UserProfile {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/profiles", models.UserProfile{
		Name:         "Test Runner",
		Age:          30,
		Weight:       70,
		WeightUnit:   models.WeightKg,
		FitnessLevel: models.FitnessBeginner,
		RestDays:     []string{"Sun"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create profile: %d %s", rec.Code, rec.Body.String())
	}
	return decode[models.UserProfile](t, rec)
}

func TestCreateAndGetProfile(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)
	if p.ID == uuid.Nil {
		t.Fatal("profile ID not assigned")
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+p.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get profile: %d", rec.Code)
	}
	got := decode[models.UserProfile](t, rec)
	if got.Name != "Test Runner" {
		t.Errorf("name = %q", got.Name)
	}

	// Creation also initializes progress at week 1 day 1.
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+p.ID.String()+"/progress", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get progress: %d", rec.Code)
	}
	prog := decode[models.UserProgress](t, rec)
	if prog.CurrentWeek != 1 || prog.CurrentDay != 1 || prog.TotalWorkouts != 0 {
		t.Errorf("initial progress = %+v", prog)
	}
}

func TestCreateProfileValidation(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/profiles", models.UserProfile{
		Name: "Too Young", Age: 12, Weight: 40, WeightUnit: models.WeightKg,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAPIKeyRequired(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key: %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/profiles", strings.NewReader("{}"))
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: %d, want 403", rec.Code)
	}

	// The format listing stays open.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/export-formats", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("export-formats: %d, want 200", rec.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)

	p.Weight = 90
	rec := doJSON(t, srv, http.MethodPut, "/api/v1/profiles/"+p.ID.String(), p)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}
	got := decode[models.UserProfile](t, rec)
	if got.Weight != 90 {
		t.Errorf("weight = %v", got.Weight)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/v1/profiles/"+uuid.NewString(), p)
	if rec.Code != http.StatusNotFound {
		t.Errorf("update missing profile: %d, want 404", rec.Code)
	}
}

func TestGetPlan(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+p.ID.String()+"/plan", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("plan: %d", rec.Code)
	}
	var resp struct {
		Settings struct {
			PaceReduction int `json:"paceReduction"`
		} `json:"settings"`
		Weeks []struct {
			Week     int `json:"week"`
			Workouts []struct {
				Warmup string `json:"warmup"`
			} `json:"workouts"`
		} `json:"weeks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Settings.PaceReduction != 20 {
		t.Errorf("paceReduction = %d, want beginner 20", resp.Settings.PaceReduction)
	}
	if len(resp.Weeks) != 9 {
		t.Fatalf("got %d weeks", len(resp.Weeks))
	}
	// Beginner warmup extension applied.
	if resp.Weeks[0].Workouts[0].Warmup != "6 min brisk walk" {
		t.Errorf("warmup = %q", resp.Weeks[0].Workouts[0].Warmup)
	}
}

func TestRecordSessionFlow(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)
	base := "/api/v1/profiles/" + p.ID.String()

	session := models.WorkoutSession{
		Week: 1, Day: 1, Completed: true,
		Intervals: []models.IntervalResult{
			{Type: "run", PlannedDurationSeconds: 60, Completed: true},
		},
	}
	rec := doJSON(t, srv, http.MethodPost, base+"/sessions", session)
	if rec.Code != http.StatusCreated {
		t.Fatalf("record: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Progress models.UserProgress  `json:"progress"`
		Unlocked []models.Achievement `json:"unlocked"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Progress.TotalWorkouts != 1 {
		t.Errorf("TotalWorkouts = %d", resp.Progress.TotalWorkouts)
	}
	if len(resp.Unlocked) != 1 || resp.Unlocked[0].Title != progress.TitleFirstSteps {
		t.Errorf("unlocked = %+v", resp.Unlocked)
	}

	rec = doJSON(t, srv, http.MethodGet, base+"/sessions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list sessions: %d", rec.Code)
	}
	sessions := decode[[]models.WorkoutSession](t, rec)
	if len(sessions) != 1 || sessions[0].UserID != p.ID {
		t.Errorf("sessions = %+v", sessions)
	}

	// Progress persisted.
	rec = doJSON(t, srv, http.MethodGet, base+"/progress", nil)
	prog := decode[models.UserProgress](t, rec)
	if prog.TotalWorkouts != 1 || len(prog.Achievements) != 1 {
		t.Errorf("stored progress = %+v", prog)
	}
}

func TestRecordSessionRejectsUnknownWorkout(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/profiles/"+p.ID.String()+"/sessions",
		models.WorkoutSession{Week: 12, Day: 1})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCalendarDownload(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)

	rec := doJSON(t, srv, http.MethodGet,
		"/api/v1/profiles/"+p.ID.String()+"/calendar?start=2026-03-02&hour=7&minute=30", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("calendar: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR\nVERSION:2.0\n") {
		t.Errorf("body starts %q", body[:40])
	}
	if !strings.Contains(body, "DTSTART:20260302T073000") {
		t.Error("start time not applied")
	}
	if !strings.Contains(body, "(Rest)") {
		t.Error("rest day events missing")
	}
	if strings.HasSuffix(body, "\n") {
		t.Error("trailing newline present")
	}
}

func TestExportPlanFormats(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)
	base := "/api/v1/profiles/" + p.ID.String() + "/export/plan?start=2026-03-02&format="

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"csv", "text/csv", "week,day,date,duration,workout,tip\n"},
		{"json", "application/json", "[\n  {\n"},
		{"markdown", "text/markdown", "# C25K Training Plan\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodGet, base+tt.format, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("content type = %q", ct)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body starts %q", rec.Body.String()[:40])
			}
		})
	}

	// Unknown format with no plan service configured.
	rec := doJSON(t, srv, http.MethodGet, base+"pdf", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format: %d, want 400", rec.Code)
	}
}

func TestExportWorkouts(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)
	base := "/api/v1/profiles/" + p.ID.String()

	// No sessions yet: unprocessable.
	rec := doJSON(t, srv, http.MethodGet, base+"/export/strava", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty export: %d, want 422", rec.Code)
	}

	doJSON(t, srv, http.MethodPost, base+"/sessions", models.WorkoutSession{
		Week: 1, Day: 1, Completed: true,
		Intervals: []models.IntervalResult{
			{Type: "run", PlannedDurationSeconds: 60, Completed: true},
		},
	})

	rec = doJSON(t, srv, http.MethodGet, base+"/export/strava", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("strava export: %d", rec.Code)
	}
	var activity struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &activity); err != nil {
		t.Fatal(err)
	}
	if activity.Name != "C25K Week 1 Day 1" || activity.Type != "Run" {
		t.Errorf("activity = %+v", activity)
	}

	rec = doJSON(t, srv, http.MethodGet, base+"/export/applehealth", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("applehealth export: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}

	rec = doJSON(t, srv, http.MethodGet, base+"/export/fitbit", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported platform: %d, want 400", rec.Code)
	}

	// Narrowing to a specific session.
	rec = doJSON(t, srv, http.MethodGet, base+"/sessions", nil)
	sessions := decode[[]models.WorkoutSession](t, rec)
	rec = doJSON(t, srv, http.MethodGet, base+"/export/strava?session="+sessions[0].ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("export by session ID: %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, base+"/export/strava?session="+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session ID: %d, want 404", rec.Code)
	}
}

func TestExportFormatsFallback(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/export-formats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	formats := decode[map[string]string](t, rec)
	for _, key := range []string{"ics", "csv", "json", "markdown", "xlsx"} {
		if formats[key] == "" {
			t.Errorf("format %q missing", key)
		}
	}
}

// TestExportFormatsDegenerateService covers a plan service that claims
// success but sends no formats table.
func TestExportFormatsDegenerateService(t *testing.T) {
	planSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer planSrv.Close()

	store, err := storage.OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(store, planner.New(planSrv.URL), testAPIKey, log)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/export-formats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	formats := decode[map[string]string](t, rec)
	for _, key := range []string{"ics", "csv", "json", "markdown", "xlsx"} {
		if formats[key] == "" {
			t.Errorf("format %q missing", key)
		}
	}
}

func TestTips(t *testing.T) {
	srv := testServer(t)
	p := createProfile(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+p.ID.String()+"/tips?week=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tips: %d", rec.Code)
	}
	var resp struct {
		Week int      `json:"week"`
		Tips []string `json:"tips"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Week != 2 {
		t.Errorf("week = %d", resp.Week)
	}
	// Beginner tips plus the early-weeks pacing tip.
	if len(resp.Tips) != 3 {
		t.Errorf("got %d tips: %v", len(resp.Tips), resp.Tips)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/profiles/"+p.ID.String()+"/tips?week=10", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("week 10: %d, want 400", rec.Code)
	}
}
