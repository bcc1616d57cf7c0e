package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"calendar-service/internal/model"
	"calendar-service/internal/schedule"
	"calendar-service/internal/store"
)

// Store is the persistence surface the handlers need.
type Store interface {
	CreateAvailabilityBlock(ctx context.Context, b *model.AvailabilityBlock) error
	ListAvailabilityByProvider(ctx context.Context, providerID int64) ([]model.AvailabilityBlock, error)
	ProviderCalendar(ctx context.Context, providerID int64) (work, busy []schedule.Block, err error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	ListAppointmentsForUser(ctx context.Context, userID int64) ([]model.AppointmentDetail, error)
	AcceptAppointment(ctx context.Context, id, providerID int64) error
	RejectAppointment(ctx context.Context, id, providerID int64) error
}

type Handler struct {
	store Store
	log   *zap.Logger
}

func New(st Store, log *zap.Logger) *Handler {
	return &Handler{store: st, log: log}
}

// Routes builds the service mux. authed wraps the endpoints that require a
// verified bearer token.
func (h *Handler) Routes(authed func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /prestadores/{id}/disponibilidad", h.PublicAvailability)
	mux.Handle("POST /disponibilidad", authed(http.HandlerFunc(h.AddAvailability)))
	mux.Handle("GET /disponibilidad/me", authed(http.HandlerFunc(h.MyAvailability)))
	mux.Handle("POST /citas", authed(http.HandlerFunc(h.CreateAppointment)))
	mux.Handle("GET /citas/me", authed(http.HandlerFunc(h.MyAppointments)))
	mux.Handle("POST /citas/{id}/aceptar", authed(http.HandlerFunc(h.AcceptAppointment)))
	mux.Handle("POST /citas/{id}/rechazar", authed(http.HandlerFunc(h.RejectAppointment)))
	return mux
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// fail maps store errors onto the HTTP taxonomy. Unknown failures surface as
// 500 with the underlying message passed through.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrSlotTaken):
		writeError(w, http.StatusConflict, "the requested start time is already taken")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment not found, already processed, or not yours")
	default:
		h.log.Error("store failure", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
