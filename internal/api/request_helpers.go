package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/devlink-api/internal/api/shared"
	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/logger"
	"github.com/phrazzld/devlink-api/internal/service/auth"
	"github.com/phrazzld/devlink-api/internal/validation"
)

const invalidRequestFormat = "Invalid request format"

// requireClaims returns the authenticated identity placed in the context by
// the auth middleware, writing a 401 when it is missing.
func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := shared.ClaimsFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// getPathID extracts and validates an identifier path parameter.
func getPathID(r *http.Request, param string) (domain.ID, error) {
	raw := chi.URLParam(r, param)
	if err := validation.ID(param, raw); err != nil {
		return domain.ID{}, err
	}
	return domain.ParseID(raw)
}

// pathID is getPathID writing the 400 itself on failure.
func pathID(w http.ResponseWriter, r *http.Request, param string) (domain.ID, bool) {
	id, err := getPathID(r, param)
	if err != nil {
		HandleAPIError(w, r, err)
		return domain.ID{}, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into v, writing a 400 on
// malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, invalidRequestFormat, err)
		return false
	}
	return true
}

// validateBody runs the schema checks on v, writing a 400 carrying the first
// violation.
func validateBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := validation.Validate(v); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}
