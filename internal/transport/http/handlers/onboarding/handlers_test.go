package onboardinghandler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"onboard/internal/directory"
	"onboard/internal/domain/wizard"
	"onboard/internal/session"
	"onboard/internal/submit"
	onboardinghandler "onboard/internal/transport/http/handlers/onboarding"
	"onboard/internal/transport/http/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

const testSecret = "test-secret"

func newTestServer(t *testing.T, inviteHash string) *httptest.Server {
	t.Helper()

	dir := directory.NewMemory()
	transport := &submit.Stub{}
	sessions := session.NewManager(time.Hour, func() *wizard.Controller {
		return wizard.NewController(dir, transport)
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Route("/api/v1", func(r chi.Router) {
		handler := onboardinghandler.NewHandler(sessions, dir, testSecret, time.Hour, inviteHash)
		handler.RegisterRoutes(r)
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func createSession(t *testing.T, client *http.Client, baseURL string) (string, string) {
	t.Helper()

	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/onboarding", "", nil)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 creating session, got %d", status)
	}
	var created struct {
		SessionID string `json:"sessionId"`
		Token     string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if created.SessionID == "" || created.Token == "" {
		t.Fatal("expected session id and token")
	}
	return created.SessionID, created.Token
}

func patchField(t *testing.T, client *http.Client, baseURL, token, path string, value any) {
	t.Helper()

	status, env := doJSON(t, client, http.MethodPatch, baseURL+"/api/v1/onboarding/fields", token, map[string]any{
		"path":  path,
		"value": value,
	})
	if status != http.StatusOK {
		t.Fatalf("patch %s: expected 200, got %d (%+v)", path, status, env.Error)
	}
}

func advance(t *testing.T, client *http.Client, baseURL, token string) wizard.StepInfo {
	t.Helper()

	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/onboarding/next", token, nil)
	if status != http.StatusOK {
		t.Fatalf("next: expected 200, got %d (%+v)", status, env.Error)
	}
	var step wizard.StepInfo
	if err := json.Unmarshal(env.Data, &step); err != nil {
		t.Fatalf("decode step: %v", err)
	}
	return step
}

func weekdayAhead(t *testing.T) string {
	t.Helper()
	day := time.Now().AddDate(0, 0, 1)
	for i := 0; i < 7; i++ {
		if day.Weekday() != time.Friday && day.Weekday() != time.Saturday {
			return day.Format("2006-01-02")
		}
		day = day.AddDate(0, 0, 1)
	}
	t.Fatal("no weekday found")
	return ""
}

func TestOnboardingJourney(t *testing.T) {
	ts := newTestServer(t, "")
	client := ts.Client()
	_, token := createSession(t, client, ts.URL)

	dob := time.Now().AddDate(-30, 0, -1).Format("2006-01-02")
	patchField(t, client, ts.URL, token, "personalInfo.fullName", "Jane Doe")
	patchField(t, client, ts.URL, token, "personalInfo.email", "jane.doe@example.com")
	patchField(t, client, ts.URL, token, "personalInfo.phoneNumber", "+1-555-123-4567")
	patchField(t, client, ts.URL, token, "personalInfo.dateOfBirth", dob)

	step := advance(t, client, ts.URL, token)
	if step.SectionName != "jobDetails" {
		t.Fatalf("expected jobDetails after personal info, got %s", step.SectionName)
	}

	patchField(t, client, ts.URL, token, "jobDetails.department", "Engineering")
	patchField(t, client, ts.URL, token, "jobDetails.positionTitle", "Backend Engineer")
	patchField(t, client, ts.URL, token, "jobDetails.startDate", weekdayAhead(t))
	patchField(t, client, ts.URL, token, "jobDetails.jobType", "Full-time")
	patchField(t, client, ts.URL, token, "jobDetails.salaryExpectation", 95000)
	patchField(t, client, ts.URL, token, "jobDetails.manager", "e1")

	step = advance(t, client, ts.URL, token)
	if step.SectionName != "skillsPreferences" {
		t.Fatalf("expected skillsPreferences, got %s", step.SectionName)
	}

	patchField(t, client, ts.URL, token, "skillsPreferences.primarySkills", []map[string]any{
		{"skill": "Go", "experience": 5},
		{"skill": "Python", "experience": 3},
		{"skill": "SQL", "experience": 4},
	})
	patchField(t, client, ts.URL, token, "skillsPreferences.workingHours.start", "09:00")
	patchField(t, client, ts.URL, token, "skillsPreferences.workingHours.end", "17:00")
	patchField(t, client, ts.URL, token, "skillsPreferences.remoteWorkPreference", 40)

	step = advance(t, client, ts.URL, token)
	if step.SectionName != "review" {
		t.Fatalf("expected review for an adult record, got %s", step.SectionName)
	}

	patchField(t, client, ts.URL, token, "confirmation", true)

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/onboarding/submit", token, nil)
	if status != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d (%+v)", status, env.Error)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/onboarding/current", token, nil)
	if status != http.StatusOK {
		t.Fatalf("current: expected 200, got %d", status)
	}
	var current struct {
		Submitted bool `json:"submitted"`
	}
	if err := json.Unmarshal(env.Data, &current); err != nil {
		t.Fatalf("decode current: %v", err)
	}
	if !current.Submitted {
		t.Fatal("expected submitted after submit")
	}
}

func TestOnboardingJourneyWithEmergencyContact(t *testing.T) {
	ts := newTestServer(t, "")
	client := ts.Client()
	_, token := createSession(t, client, ts.URL)

	dob := time.Now().AddDate(-20, 0, -1).Format("2006-01-02")
	patchField(t, client, ts.URL, token, "personalInfo.fullName", "Sam Lee")
	patchField(t, client, ts.URL, token, "personalInfo.email", "sam.lee@example.com")
	patchField(t, client, ts.URL, token, "personalInfo.phoneNumber", "+1-555-222-3333")
	patchField(t, client, ts.URL, token, "personalInfo.dateOfBirth", dob)

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/onboarding/current", token, nil)
	if status != http.StatusOK {
		t.Fatalf("current: expected 200, got %d", status)
	}
	var current struct {
		Step  wizard.StepInfo `json:"step"`
		Flags wizard.Flags    `json:"flags"`
	}
	if err := json.Unmarshal(env.Data, &current); err != nil {
		t.Fatalf("decode current: %v", err)
	}
	if !current.Flags.RequiresEmergencyContact {
		t.Fatal("expected a 20 year old to require an emergency contact")
	}
	if current.Step.TotalSteps != 5 {
		t.Fatalf("expected a 5 step plan, got %d", current.Step.TotalSteps)
	}

	step := advance(t, client, ts.URL, token)
	if step.SectionName != "jobDetails" {
		t.Fatalf("expected jobDetails, got %s", step.SectionName)
	}

	patchField(t, client, ts.URL, token, "jobDetails.department", "Engineering")
	patchField(t, client, ts.URL, token, "jobDetails.positionTitle", "Junior Engineer")
	patchField(t, client, ts.URL, token, "jobDetails.startDate", weekdayAhead(t))
	patchField(t, client, ts.URL, token, "jobDetails.jobType", "Full-time")
	patchField(t, client, ts.URL, token, "jobDetails.salaryExpectation", 60000)
	patchField(t, client, ts.URL, token, "jobDetails.manager", "e2")

	step = advance(t, client, ts.URL, token)
	if step.SectionName != "skillsPreferences" {
		t.Fatalf("expected skillsPreferences, got %s", step.SectionName)
	}

	patchField(t, client, ts.URL, token, "skillsPreferences.primarySkills", []map[string]any{
		{"skill": "Go", "experience": 1},
		{"skill": "JavaScript", "experience": 2},
		{"skill": "Docker", "experience": 1},
	})
	patchField(t, client, ts.URL, token, "skillsPreferences.workingHours.start", "10:00")
	patchField(t, client, ts.URL, token, "skillsPreferences.workingHours.end", "18:00")
	patchField(t, client, ts.URL, token, "skillsPreferences.remoteWorkPreference", 20)

	step = advance(t, client, ts.URL, token)
	if step.SectionName != "emergencyContact" {
		t.Fatalf("expected emergencyContact for a 20 year old, got %s", step.SectionName)
	}

	// An empty contact must block the step before it is filled in.
	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/onboarding/next", token, nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty emergency contact, got %d (%+v)", status, env.Error)
	}

	patchField(t, client, ts.URL, token, "emergencyContact.contactName", "Pat Lee")
	patchField(t, client, ts.URL, token, "emergencyContact.relationship", "Parent")
	patchField(t, client, ts.URL, token, "emergencyContact.phoneNumber", "+1-555-444-5555")

	step = advance(t, client, ts.URL, token)
	if step.SectionName != "review" {
		t.Fatalf("expected review after emergency contact, got %s", step.SectionName)
	}

	patchField(t, client, ts.URL, token, "confirmation", true)

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/onboarding/submit", token, nil)
	if status != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d (%+v)", status, env.Error)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/onboarding/record", token, nil)
	if status != http.StatusOK {
		t.Fatalf("record: expected 200, got %d", status)
	}
	var record wizard.Record
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.EmergencyContact == nil || record.EmergencyContact.ContactName != "Pat Lee" {
		t.Fatalf("expected the emergency contact to survive submission, got %+v", record.EmergencyContact)
	}
}

func TestNextRejectsInvalidSection(t *testing.T) {
	ts := newTestServer(t, "")
	client := ts.Client()
	_, token := createSession(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/onboarding/next", token, nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty personal info, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error code, got %+v", env.Error)
	}
	violations, ok := env.Error.Details["violations"].([]any)
	if !ok || len(violations) == 0 {
		t.Fatalf("expected violations in details, got %+v", env.Error.Details)
	}
	first, _ := violations[0].(map[string]any)
	if first["fieldPath"] != "personalInfo.fullName" {
		t.Fatalf("expected first violation on personalInfo.fullName, got %v", first["fieldPath"])
	}
}

func TestBackOnFirstStepConflicts(t *testing.T) {
	ts := newTestServer(t, "")
	client := ts.Client()
	_, token := createSession(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/onboarding/back", token, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for back on first step, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "invalid_transition" {
		t.Fatalf("expected invalid_transition code, got %+v", env.Error)
	}
}

func TestSessionAuthRequired(t *testing.T) {
	ts := newTestServer(t, "")
	client := ts.Client()

	status, _ := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/onboarding/current", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, _ = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/onboarding/current", "not-a-token", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", status)
	}
}

func TestInviteCodeGate(t *testing.T) {
	hash, err := session.HashInviteCode("join-us")
	if err != nil {
		t.Fatalf("hash invite code: %v", err)
	}
	ts := newTestServer(t, hash)
	client := ts.Client()

	status, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/onboarding", "", map[string]any{"inviteCode": "wrong"})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong invite code, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "invalid_invite" {
		t.Fatalf("expected invalid_invite code, got %+v", env.Error)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/onboarding", "", map[string]any{"inviteCode": "join-us"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 with valid invite code, got %d", status)
	}
}

func TestDepartmentLookups(t *testing.T) {
	ts := newTestServer(t, "")
	client := ts.Client()

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/departments/Engineering/managers", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 listing managers, got %d", status)
	}
	var managers struct {
		Managers []wizard.Manager `json:"managers"`
	}
	if err := json.Unmarshal(env.Data, &managers); err != nil {
		t.Fatalf("decode managers: %v", err)
	}
	if len(managers.Managers) == 0 {
		t.Fatal("expected seeded managers for Engineering")
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/departments/Astronomy/skills", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown department, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "unknown_department" {
		t.Fatalf("expected unknown_department code, got %+v", env.Error)
	}
}

func TestSummaryPDFGatedToReview(t *testing.T) {
	ts := newTestServer(t, "")
	client := ts.Client()
	_, token := createSession(t, client, ts.URL)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/onboarding/summary.pdf", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 before review, got %d", resp.StatusCode)
	}
}

func TestUnknownFieldPathIsRecoverable(t *testing.T) {
	ts := newTestServer(t, "")
	client := ts.Client()
	_, token := createSession(t, client, ts.URL)

	status, env := doJSON(t, client, http.MethodPatch, ts.URL+"/api/v1/onboarding/fields", token, map[string]any{
		"path":  "personalInfo.nope",
		"value": "x",
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown path, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error code, got %+v", env.Error)
	}
}
