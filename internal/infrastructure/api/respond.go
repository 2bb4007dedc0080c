package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"merchops/internal/application"
	"merchops/internal/domain"
	"merchops/internal/infrastructure/shopify"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the gateway error taxonomy onto HTTP
// statuses: missing credentials and upstream failures both surface as
// 500 with the most specific message available, a missing camp as 404.
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var upstream *shopify.UpstreamError
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		writeError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, application.ErrCampNotFound):
		writeError(w, http.StatusNotFound, "camp not found")
	case errors.As(err, &upstream):
		writeError(w, http.StatusInternalServerError, upstream.Message)
	default:
		logger.Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
