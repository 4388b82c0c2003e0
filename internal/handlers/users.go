package handlers

import (
	"errors"
	"net/http"
	"strings"

	"postboard/internal/store"
	"postboard/internal/utils"
)

type UserHandler struct {
	Users  UserStore
	Hasher Hasher
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ---------------------- REGISTER ----------------------

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		utils.JSONError(w, http.StatusUnprocessableEntity, "a valid email is required")
		return
	}
	if req.Password == "" {
		utils.JSONError(w, http.StatusUnprocessableEntity, "password is required")
		return
	}

	digest, err := h.Hasher.Hash(req.Password)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.Email, digest)
	if errors.Is(err, store.ErrDuplicate) {
		utils.JSONError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// models.User never serializes the password hash
	utils.JSON(w, http.StatusCreated, user)
}

// ---------------------- GET ONE ----------------------

// GetUser is public; it only exposes fields the User JSON encoding
// allows (no hash).
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid user id")
		return
	}

	user, err := h.Users.GetUserByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
