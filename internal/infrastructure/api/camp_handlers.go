package api

import (
	"encoding/json"
	"net/http"
	"time"

	"merchops/internal/domain"
	"merchops/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CampHandlers serves camp and registration read endpoints.
type CampHandlers struct {
	camps         ports.CampRepository
	registrations ports.RegistrationRepository
	logger        zerolog.Logger
}

// NewCampHandlers creates the camp endpoint handlers
func NewCampHandlers(camps ports.CampRepository, registrations ports.RegistrationRepository, logger zerolog.Logger) *CampHandlers {
	return &CampHandlers{
		camps:         camps,
		registrations: registrations,
		logger:        logger,
	}
}

type createCampRequest struct {
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// CreateCamp handles POST /api/camps
func (h *CampHandlers) CreateCamp(w http.ResponseWriter, r *http.Request) {
	var req createCampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	camp := &domain.Camp{
		Name:      req.Name,
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := h.camps.Create(r.Context(), camp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to create camp")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"camp": camp})
}

// ListCamps handles GET /api/camps
func (h *CampHandlers) ListCamps(w http.ResponseWriter, r *http.Request) {
	camps, err := h.camps.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list camps")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if camps == nil {
		camps = []*domain.Camp{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"camps": camps})
}

// GetCamp handles GET /api/camps/{id}
func (h *CampHandlers) GetCamp(w http.ResponseWriter, r *http.Request) {
	camp, err := h.camps.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get camp")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if camp == nil {
		writeError(w, http.StatusNotFound, "camp not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"camp": camp})
}

// ListRegistrations handles GET /api/camps/{id}/registrations
func (h *CampHandlers) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	campID := chi.URLParam(r, "id")
	camp, err := h.camps.GetByID(r.Context(), campID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get camp")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if camp == nil {
		writeError(w, http.StatusNotFound, "camp not found")
		return
	}

	registrations, err := h.registrations.ListByCamp(r.Context(), campID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list registrations")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if registrations == nil {
		registrations = []*domain.Registration{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"registrations": registrations})
}
