package pets

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
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

type createPetRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species" enums:"dog,cat,other"`
	Breed     string `json:"breed"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD opcional
	IsPrimary bool   `json:"isPrimary"`
}

type updatePetRequest struct {
	Name      *string `json:"name"`
	Breed     *string `json:"breed"`
	IsPrimary *bool   `json:"isPrimary"`
}

// petResponse es la forma que consume el directorio de mascotas del cliente.
type petResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	BirthDate string `json:"birthDate,omitempty"`
	Breed     string `json:"breed"`
	IsPrimary bool   `json:"isPrimary"`
}

type envelope struct {
	Data any `json:"data"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} envelope
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birthDate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			BirthDate: bd,
			IsPrimary: req.IsPrimary,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, envelope{Data: toPetResponse(p)})
	}
}

// listPetsHandler godoc
// @Summary Directorio de mascotas del usuario
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Success 200 {object} envelope
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, envelope{Data: out})
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		// un pet ajeno se reporta como inexistente
		if err != nil || p.OwnerUserID != claims.UserID {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, envelope{Data: toPetResponse(p)})
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateProfileInput{
			Name:      req.Name,
			Breed:     req.Breed,
			IsPrimary: req.IsPrimary,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, envelope{Data: toPetResponse(updated)})
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   string(p.Species),
		Breed:     p.Breed,
		IsPrimary: p.IsPrimary,
	}
	if p.BirthDate != nil {
		out.BirthDate = p.BirthDate.Format("2006-01-02")
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/reminders)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
