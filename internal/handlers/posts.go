package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/store"
	"postboard/internal/utils"
)

type PostHandler struct {
	Posts PostStore
}

type postReq struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}

func (req *postReq) validate(w http.ResponseWriter) bool {
	if req.Title == "" {
		utils.JSONError(w, http.StatusUnprocessableEntity, "title is required")
		return false
	}
	if req.Content == "" {
		utils.JSONError(w, http.StatusUnprocessableEntity, "content is required")
		return false
	}
	return true
}

func (req *postReq) published() bool {
	if req.Published == nil {
		return true
	}
	return *req.Published
}

// ---------------------- LIST ----------------------

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUser(r.Context()); !ok {
		utils.JSONError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	limit := queryInt(r, "limit", 10)
	skip := queryInt(r, "skip", 0)
	search := r.URL.Query().Get("search")

	posts, err := h.Posts.ListPosts(r.Context(), search, limit, skip)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusOK, posts)
}

// ---------------------- GET ONE ----------------------

// GetPost returns any post with its vote count; ownership is not
// required to read.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid post id")
		return
	}

	post, err := h.Posts.GetPostWithVotes(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var req postReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if !req.validate(w) {
		return
	}

	post, err := h.Posts.CreatePost(r.Context(), models.Post{
		OwnerID:   user.ID,
		Title:     req.Title,
		Content:   req.Content,
		Published: req.published(),
	})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusCreated, post)
}

// ---------------------- UPDATE ----------------------

// UpdatePost replaces title/content/published. Existence is checked
// before ownership so a missing post is 404 even for non-owners.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	id, err := idParam(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid post id")
		return
	}

	var req postReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if !req.validate(w) {
		return
	}

	existing, err := h.Posts.GetPost(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !canModify(user, existing.OwnerID) {
		utils.JSONError(w, http.StatusForbidden, "not authorized to perform requested action")
		return
	}

	updated, err := h.Posts.UpdatePost(r.Context(), models.Post{
		ID:        id,
		Title:     req.Title,
		Content:   req.Content,
		Published: req.published(),
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusOK, updated)
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	id, err := idParam(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid post id")
		return
	}

	existing, err := h.Posts.GetPost(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !canModify(user, existing.OwnerID) {
		utils.JSONError(w, http.StatusForbidden, "not authorized to perform requested action")
		return
	}

	if err := h.Posts.DeletePost(r.Context(), id); err != nil && !errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
