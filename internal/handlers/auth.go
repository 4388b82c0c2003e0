package handlers

import (
	"errors"
	"net/http"

	"postboard/internal/store"
	"postboard/internal/utils"
)

type AuthHandler struct {
	Users  UserStore
	Tokens TokenIssuer
	Hasher Hasher
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates form credentials (username field carries the
// email) and answers with a bearer token. Unknown email and wrong
// password both return 403 with the same body, deliberately not 401,
// so callers cannot probe which emails are registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid form body")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		utils.JSONError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	user, err := h.Users.GetUserByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusForbidden, "invalid credentials")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !h.Hasher.Verify(password, user.Password) {
		utils.JSONError(w, http.StatusForbidden, "invalid credentials")
		return
	}

	access, err := h.Tokens.Issue(user.ID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "token error")
		return
	}

	utils.JSON(w, http.StatusOK, tokenResp{
		AccessToken: access,
		TokenType:   "bearer",
	})
}
