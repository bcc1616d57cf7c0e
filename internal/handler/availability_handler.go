package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"calendar-service/internal/middleware"
	"calendar-service/internal/model"
	"calendar-service/internal/schedule"
)

type availabilityCreateRequest struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Blocked bool      `json:"blocked"`
}

type availabilityBlockResponse struct {
	ID      int64     `json:"id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Blocked bool      `json:"blocked"`
}

type publicBlockResponse struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

// AddAvailability lets a provider declare a working block or a block-out.
func (h *Handler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if !user.CanProvide() {
		writeError(w, http.StatusForbidden, "only service providers can publish availability")
		return
	}

	var req availabilityCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Start.IsZero() || req.End.IsZero() {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}
	if !req.End.After(req.Start) {
		writeError(w, http.StatusBadRequest, "end must be after start")
		return
	}

	block := &model.AvailabilityBlock{
		ProviderID: user.ID,
		StartsAt:   req.Start,
		EndsAt:     req.End,
		Blocked:    req.Blocked,
	}
	if err := h.store.CreateAvailabilityBlock(r.Context(), block); err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, availabilityBlockResponse{
		ID:      block.ID,
		Start:   block.StartsAt,
		End:     block.EndsAt,
		Blocked: block.Blocked,
	})
}

// MyAvailability returns the caller's own declared blocks, earliest first.
func (h *Handler) MyAvailability(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	blocks, err := h.store.ListAvailabilityByProvider(r.Context(), user.ID)
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]availabilityBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, availabilityBlockResponse{
			ID:      b.ID,
			Start:   b.StartsAt,
			End:     b.EndsAt,
			Blocked: b.Blocked,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// PublicAvailability exposes a provider's calendar to anyone: available time
// is declared working blocks minus occupied time, occupied time is block-outs
// plus accepted appointments. Output blocks never overlap.
func (h *Handler) PublicAvailability(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || providerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid provider id")
		return
	}

	work, busy, err := h.store.ProviderCalendar(r.Context(), providerID)
	if err != nil {
		h.fail(w, err)
		return
	}

	blocks := schedule.PublicAvailability(work, busy)
	out := make([]publicBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, publicBlockResponse{Start: b.Start, End: b.End, Status: b.Status})
	}
	writeJSON(w, http.StatusOK, out)
}
