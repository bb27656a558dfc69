package onboardinghandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"onboard/internal/directory"
	"onboard/internal/domain/wizard"
	"onboard/internal/export"
	"onboard/internal/session"
	"onboard/internal/transport/http/api"
	"onboard/internal/transport/http/middleware"
	"onboard/internal/transport/http/shared"
	"onboard/internal/validation"
)

type Handler struct {
	Sessions   *session.Manager
	Directory  *directory.Memory
	Secret     string
	TokenTTL   time.Duration
	InviteHash string
}

func NewHandler(sessions *session.Manager, dir *directory.Memory, secret string, tokenTTL time.Duration, inviteHash string) *Handler {
	return &Handler{
		Sessions:   sessions,
		Directory:  dir,
		Secret:     secret,
		TokenTTL:   tokenTTL,
		InviteHash: inviteHash,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/onboarding", func(r chi.Router) {
		r.Post("/", h.handleCreateSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(h.Secret))
			r.Get("/current", h.handleCurrentStep)
			r.Get("/record", h.handleRecordSnapshot)
			r.Get("/violations/{section}", h.handleViolations)
			r.Patch("/fields", h.handleMutateField)
			r.Post("/next", h.handleNext)
			r.Post("/back", h.handleBack)
			r.Post("/submit", h.handleSubmit)
			r.Post("/reset", h.handleReset)
			r.Get("/summary.pdf", h.handleSummaryPDF)
		})
	})

	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Get("/{department}/managers", h.handleListManagers)
		r.Get("/{department}/skills", h.handleListSkills)
	})
}

type createSessionRequest struct {
	InviteCode string `json:"inviteCode"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createSessionRequest
	if r.ContentLength > 0 {
		if err := shared.DecodeAndValidate(r, &payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "bad_request", err.Error(), reqID)
			return
		}
	}

	if h.InviteHash != "" {
		if err := session.CheckInviteCode(h.InviteHash, payload.InviteCode); err != nil {
			api.Fail(w, http.StatusForbidden, "invalid_invite", "a valid invite code is required", reqID)
			return
		}
	}

	id, controller := h.Sessions.Create()
	token, err := session.GenerateToken(h.Secret, id, h.TokenTTL)
	if err != nil {
		h.Sessions.Delete(id)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "could not create session", reqID)
		return
	}

	api.Created(w, map[string]any{
		"sessionId": id,
		"token":     token,
		"step":      controller.CurrentStep(),
	}, reqID)
}

// controller resolves the caller's wizard controller; a nil return means the
// response has already been written.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request) *wizard.Controller {
	reqID := middleware.GetRequestID(r.Context())
	sessionID := middleware.GetSessionID(r.Context())
	controller, ok := h.Sessions.Get(sessionID)
	if !ok {
		api.Fail(w, http.StatusNotFound, "session_not_found", "session expired or unknown", reqID)
		return nil
	}
	return controller
}

func (h *Handler) handleCurrentStep(w http.ResponseWriter, r *http.Request) {
	controller := h.controller(w, r)
	if controller == nil {
		return
	}
	api.Success(w, map[string]any{
		"step":       controller.CurrentStep(),
		"flags":      controller.Flags(),
		"submitting": controller.Submitting(),
		"submitted":  controller.Submitted(),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecordSnapshot(w http.ResponseWriter, r *http.Request) {
	controller := h.controller(w, r)
	if controller == nil {
		return
	}
	api.Success(w, controller.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleViolations(w http.ResponseWriter, r *http.Request) {
	controller := h.controller(w, r)
	if controller == nil {
		return
	}
	section := chi.URLParam(r, "section")
	violations := controller.Violations(section)
	if violations == nil {
		violations = []validation.Violation{}
	}
	api.Success(w, map[string]any{"violations": violations}, middleware.GetRequestID(r.Context()))
}

type mutateFieldRequest struct {
	Path  string `json:"path" validate:"required"`
	Value any    `json:"value"`
}

func (h *Handler) handleMutateField(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	controller := h.controller(w, r)
	if controller == nil {
		return
	}

	var payload mutateFieldRequest
	if err := shared.DecodeAndValidate(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", err.Error(), reqID)
		return
	}

	if err := controller.MutateField(payload.Path, payload.Value); err != nil {
		writeWizardError(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{
		"step":  controller.CurrentStep(),
		"flags": controller.Flags(),
	}, reqID)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	controller := h.controller(w, r)
	if controller == nil {
		return
	}
	if err := controller.Next(); err != nil {
		writeWizardError(w, err, reqID)
		return
	}
	api.Success(w, controller.CurrentStep(), reqID)
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	controller := h.controller(w, r)
	if controller == nil {
		return
	}
	if err := controller.Back(); err != nil {
		writeWizardError(w, err, reqID)
		return
	}
	api.Success(w, controller.CurrentStep(), reqID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	controller := h.controller(w, r)
	if controller == nil {
		return
	}
	if err := controller.Submit(r.Context()); err != nil {
		writeWizardError(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"submitted": true}, reqID)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	controller := h.controller(w, r)
	if controller == nil {
		return
	}
	if err := controller.Reset(); err != nil {
		writeWizardError(w, err, reqID)
		return
	}
	api.Success(w, controller.CurrentStep(), reqID)
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	controller := h.controller(w, r)
	if controller == nil {
		return
	}

	step := controller.CurrentStep()
	onReview := step.Index == step.TotalSteps-1
	if !onReview && !controller.Submitted() {
		api.Fail(w, http.StatusConflict, "not_ready", "summary is available from the review step", reqID)
		return
	}

	pdf, err := export.SummaryPDF(controller.Assembled(), controller.Flags())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "could not render summary", reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="onboarding-summary.pdf"`)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]any{"departments": wizard.Departments}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListManagers(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	department := chi.URLParam(r, "department")
	if !knownDepartment(department) {
		api.Fail(w, http.StatusNotFound, "unknown_department", "unknown department", reqID)
		return
	}
	api.Success(w, map[string]any{"managers": h.Directory.Managers(department)}, reqID)
}

func (h *Handler) handleListSkills(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	department := chi.URLParam(r, "department")
	if !knownDepartment(department) {
		api.Fail(w, http.StatusNotFound, "unknown_department", "unknown department", reqID)
		return
	}
	api.Success(w, map[string]any{"skills": h.Directory.Skills(department)}, reqID)
}

func knownDepartment(department string) bool {
	for _, d := range wizard.Departments {
		if d == department {
			return true
		}
	}
	return false
}

func writeWizardError(w http.ResponseWriter, err error, requestID string) {
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		api.FailWithDetails(
			w,
			http.StatusUnprocessableEntity,
			"validation_error",
			verr.Error(),
			map[string]any{"violations": verr.Violations},
			requestID,
		)
		return
	}

	var terr *wizard.TransitionError
	if errors.As(err, &terr) {
		api.Fail(w, http.StatusConflict, "invalid_transition", terr.Error(), requestID)
		return
	}

	if errors.Is(err, wizard.ErrSubmitting) {
		api.Fail(w, http.StatusConflict, "submitting", "submission in progress", requestID)
		return
	}

	var serr *wizard.SubmissionError
	if errors.As(err, &serr) {
		api.Fail(w, http.StatusBadGateway, "submission_failed", "submission failed, please retry", requestID)
		return
	}

	api.Fail(w, http.StatusInternalServerError, "internal_error", "unexpected error", requestID)
}
