package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"calendar-service/internal/middleware"
	"calendar-service/internal/model"
)

const defaultDurationMin = 30

type appointmentCreateRequest struct {
	ProviderID  int64     `json:"provider_id"`
	Start       time.Time `json:"start"`
	DurationMin int       `json:"duration_min"`
	Details     string    `json:"details"`
}

type appointmentResponse struct {
	ID           int64     `json:"id"`
	ClientID     int64     `json:"client_id"`
	ProviderID   int64     `json:"provider_id"`
	Start        time.Time `json:"start"`
	DurationMin  int       `json:"duration_min"`
	Details      string    `json:"details"`
	Status       string    `json:"status"`
	JobID        *int64    `json:"job_id,omitempty"`
	RatingID     *int64    `json:"rating_id,omitempty"`
	ClientName   string    `json:"client_name,omitempty"`
	ProviderName string    `json:"provider_name,omitempty"`
}

// CreateAppointment requests a new pending appointment against a provider's
// calendar.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	var req appointmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProviderID <= 0 || req.Start.IsZero() {
		writeError(w, http.StatusBadRequest, "provider_id and start are required")
		return
	}
	if req.ProviderID == user.ID {
		writeError(w, http.StatusBadRequest, "cannot book an appointment with yourself")
		return
	}
	if req.DurationMin == 0 {
		req.DurationMin = defaultDurationMin
	}
	if req.DurationMin < 0 {
		writeError(w, http.StatusBadRequest, "duration_min must be positive")
		return
	}

	appt := &model.Appointment{
		ClientID:    user.ID,
		ProviderID:  req.ProviderID,
		StartsAt:    req.Start,
		DurationMin: req.DurationMin,
		Details:     req.Details,
	}
	if err := h.store.CreateAppointment(r.Context(), appt); err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appointmentResponse{
		ID:          appt.ID,
		ClientID:    appt.ClientID,
		ProviderID:  appt.ProviderID,
		Start:       appt.StartsAt,
		DurationMin: appt.DurationMin,
		Details:     appt.Details,
		Status:      string(appt.Status),
	})
}

// MyAppointments lists the caller's appointments on either side of the
// booking, most recent start first.
func (h *Handler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	details, err := h.store.ListAppointmentsForUser(r.Context(), user.ID)
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]appointmentResponse, 0, len(details))
	for _, d := range details {
		out = append(out, appointmentResponse{
			ID:           d.ID,
			ClientID:     d.ClientID,
			ProviderID:   d.ProviderID,
			Start:        d.StartsAt,
			DurationMin:  d.DurationMin,
			Details:      d.Details,
			Status:       string(d.Status),
			JobID:        d.JobID,
			RatingID:     d.RatingID,
			ClientName:   d.ClientName,
			ProviderName: d.ProviderName,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// AcceptAppointment confirms a pending request owned by the caller and
// activates the chat between the two parties.
func (h *Handler) AcceptAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.store.AcceptAppointment, "appointment confirmed; chat activated")
}

// RejectAppointment declines a pending request owned by the caller.
func (h *Handler) RejectAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.store.RejectAppointment, "appointment rejected")
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id, providerID int64) error, msg string) {
	user := middleware.CurrentUser(r.Context())
	if !user.CanProvide() {
		writeError(w, http.StatusForbidden, "only service providers can manage appointment requests")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	if err := apply(r.Context(), id, user.ID); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}
