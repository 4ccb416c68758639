package api

import (
	"net/http"

	"github.com/phrazzld/devlink-api/internal/api/shared"
	"github.com/phrazzld/devlink-api/internal/service"
	"github.com/phrazzld/devlink-api/internal/validation"
)

// PostHandler serves the /posts routes.
type PostHandler struct {
	posts service.PostService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(posts service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// postInput decodes a post or comment body written by the authenticated user.
func postInput(w http.ResponseWriter, r *http.Request) (validation.PostInput, bool) {
	var in validation.PostInput
	claims, ok := requireClaims(w, r)
	if !ok || !decodeBody(w, r, &in) {
		return in, false
	}
	in.User = claims.UserID.Hex()
	return in, validateBody(w, r, in)
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := postInput(w, r)
	if !ok {
		return
	}

	post, err := h.posts.Create(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, post)
}

// List handles GET /posts. An empty collection is a 204.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if len(posts) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, posts)
}

// Get handles GET /posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), id, claims.UserID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Post removed"})
}

// Like handles POST /posts/likes/{post_id}.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "post_id")
	if !ok {
		return
	}

	likes, err := h.posts.Like(r.Context(), id, claims.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, likes)
}

// Unlike handles DELETE /posts/likes/{post_id}.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "post_id")
	if !ok {
		return
	}

	likes, err := h.posts.Unlike(r.Context(), id, claims.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, likes)
}

// Comment handles POST /posts/comment/{post_id}.
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "post_id")
	if !ok {
		return
	}
	in, ok := postInput(w, r)
	if !ok {
		return
	}

	comments, err := h.posts.Comment(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, comments)
}

// DeleteComment handles DELETE /posts/comment/{post_id}/{comment_id}.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "post_id")
	if !ok {
		return
	}
	comment, ok := pathID(w, r, "comment_id")
	if !ok {
		return
	}

	comments, err := h.posts.DeleteComment(r.Context(), id, comment, claims.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, comments)
}
