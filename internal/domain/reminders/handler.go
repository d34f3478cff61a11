package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-tasks/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/today", listTodayHandler(svc))
		rr.Post("/{reminderID}/complete", completeHandler(svc))
		rr.Patch("/{reminderID}", updateStatusHandler(svc))
	})

	// convive con el mount de /pets: chi prueba el param antes que el catch-all
	r.Post("/pets/{petID}/reminders", createReminderHandler(svc))
}

// createReminderRequest es el cuerpo para crear un recordatorio de una mascota.
type createReminderRequest struct {
	Title       string   `json:"title"`
	ScheduledAt string   `json:"scheduledAt"` // RFC3339 opcional
	DueAt       string   `json:"dueAt"`       // RFC3339 opcional
	Priority    Priority `json:"priority" enums:"low,medium,high,urgent"`
	Tags        []string `json:"tags"`
}

type updateStatusRequest struct {
	Status Status `json:"status" enums:"pending,done,completed,archived"`
}

// reminderResponse es el shape que consume el cliente móvil.
type reminderResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	PetID       *string  `json:"petId"`
	Status      Status   `json:"status"`
	ScheduledAt *string  `json:"scheduledAt,omitempty"`
	DueAt       *string  `json:"dueAt,omitempty"`
	SnoozeUntil *string  `json:"snoozeUntil,omitempty"`
	Priority    Priority `json:"priority"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
}

type envelope struct {
	Data any `json:"data"`
}

// listTodayHandler godoc
// @Summary Recordatorios de hoy
// @Description Devuelve los recordatorios del día del usuario más los pendientes vencidos de días anteriores.
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} envelope
// @Failure 401 {string} string "unauthorized"
// @Router /reminders/today [get]
func listTodayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListToday(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toReminderResponse(it))
		}
		writeJSON(w, http.StatusOK, envelope{Data: out})
	}
}

// completeHandler godoc
// @Summary Completar recordatorio
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} envelope
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "reminder not found"
// @Failure 409 {string} string "reminder is archived"
// @Router /reminders/{reminderID}/complete [post]
func completeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		rem, err := svc.Complete(r.Context(), userID, chi.URLParam(r, "reminderID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Data: toReminderResponse(rem)})
	}
}

// updateStatusHandler godoc
// @Summary Cambiar status de un recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param reminderID path string true "ID del recordatorio"
// @Param payload body updateStatusRequest true "Nuevo status"
// @Success 200 {object} envelope
// @Failure 400 {string} string "invalid json / status inválido"
// @Failure 404 {string} string "reminder not found"
// @Failure 409 {string} string "reminder is archived"
// @Router /reminders/{reminderID} [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		var req updateStatusRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rem, err := svc.UpdateStatus(r.Context(), userID, chi.URLParam(r, "reminderID"), req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Data: toReminderResponse(rem)})
	}
}

// createReminderHandler godoc
// @Summary Crear recordatorio para una mascota
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param petID path string true "ID de la mascota"
// @Param payload body createReminderRequest true "Datos del recordatorio"
// @Success 201 {object} envelope
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/reminders [post]
func createReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		scheduledAt, err := parseOptionalTime(req.ScheduledAt)
		if err != nil {
			http.Error(w, "scheduledAt must be RFC3339", http.StatusBadRequest)
			return
		}
		dueAt, err := parseOptionalTime(req.DueAt)
		if err != nil {
			http.Error(w, "dueAt must be RFC3339", http.StatusBadRequest)
			return
		}

		rem, err := svc.Create(r.Context(), userID, chi.URLParam(r, "petID"), CreateInput{
			Title:       req.Title,
			ScheduledAt: scheduledAt,
			DueAt:       dueAt,
			Priority:    req.Priority,
			Tags:        req.Tags,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, envelope{Data: toReminderResponse(rem)})
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return uid, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "reminder not found", http.StatusNotFound)
	case errors.Is(err, ErrArchived):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseOptionalTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toReminderResponse(r Reminder) reminderResponse {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return reminderResponse{
		ID:          r.ID,
		Title:       r.Title,
		PetID:       r.PetID,
		Status:      r.Status,
		ScheduledAt: formatOptional(r.ScheduledAt),
		DueAt:       formatOptional(r.DueAt),
		SnoozeUntil: formatOptional(r.SnoozeUntil),
		Priority:    r.Priority,
		Tags:        tags,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
