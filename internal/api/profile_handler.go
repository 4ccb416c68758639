package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/devlink-api/internal/api/shared"
	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/service"
	"github.com/phrazzld/devlink-api/internal/validation"
)

// ProfileHandler serves the /profiles routes.
type ProfileHandler struct {
	profiles service.ProfileService
	users    service.UserService
}

// NewProfileHandler creates a ProfileHandler. The user service backs account
// deletion through DELETE /profiles.
func NewProfileHandler(profiles service.ProfileService, users service.UserService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users}
}

// profileInput decodes a profile body owned by the authenticated user.
func profileInput(w http.ResponseWriter, r *http.Request) (validation.ProfileInput, bool) {
	var in validation.ProfileInput
	claims, ok := requireClaims(w, r)
	if !ok || !decodeBody(w, r, &in) {
		return in, false
	}
	in.User = claims.UserID.Hex()
	return in, validateBody(w, r, in)
}

// Create handles POST /profiles.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := profileInput(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Create(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, profile)
}

// Update handles PUT /profiles. Experience and education entries are kept;
// they change only through their own routes, so any experience or education
// in the body is validated and then ignored.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := profileInput(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Update(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// Me handles GET /profiles/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	h.respondWithProfile(w, r, claims.UserID)
}

// List handles GET /profiles. An empty collection is a 204.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if len(profiles) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profiles)
}

// GetByUser handles GET /profiles/{user_id}.
func (h *ProfileHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	user, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}
	h.respondWithProfile(w, r, user)
}

// GetByHandle handles GET /profiles/handle/{handle}.
func (h *ProfileHandler) GetByHandle(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	if err := validation.Handle(handle); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	profile, err := h.profiles.GetByHandle(r.Context(), handle)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// Delete handles DELETE /profiles: it removes the profile and the account.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.users.DeleteAccount(r.Context(), claims.UserID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "User deleted"})
}

// AddExperience handles POST /profiles/experience.
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var in validation.ExperienceInput
	if !decodeBody(w, r, &in) || !validateBody(w, r, in) {
		return
	}

	profile, err := h.profiles.AddExperience(r.Context(), claims.UserID, in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, profile)
}

// RemoveExperience handles DELETE /profiles/experience/{exp_id}.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "exp_id")
	if !ok {
		return
	}

	profile, err := h.profiles.RemoveExperience(r.Context(), claims.UserID, id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// AddEducation handles POST /profiles/education.
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var in validation.EducationInput
	if !decodeBody(w, r, &in) || !validateBody(w, r, in) {
		return
	}

	profile, err := h.profiles.AddEducation(r.Context(), claims.UserID, in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, profile)
}

// RemoveEducation handles DELETE /profiles/education/{edu_id}.
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "edu_id")
	if !ok {
		return
	}

	profile, err := h.profiles.RemoveEducation(r.Context(), claims.UserID, id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

func (h *ProfileHandler) respondWithProfile(w http.ResponseWriter, r *http.Request, user domain.ID) {
	profile, err := h.profiles.GetByUser(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}
