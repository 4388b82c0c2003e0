package handlers

import (
	"errors"
	"net/http"

	"postboard/internal/middleware"
	"postboard/internal/store"
	"postboard/internal/utils"
)

type VoteHandler struct {
	Posts PostStore
	Votes VoteStore
}

type voteReq struct {
	PostID int64 `json:"post_id"`
	Dir    *int  `json:"dir"`
}

// Vote casts or removes a like. dir=1 adds a vote (409 if the caller
// already voted), dir=0 removes it (404 if no vote exists). The
// composite (user_id, post_id) key resolves concurrent duplicates.
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var req voteReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Dir == nil || (*req.Dir != 0 && *req.Dir != 1) {
		utils.JSONError(w, http.StatusUnprocessableEntity, "dir must be 0 or 1")
		return
	}

	if _, err := h.Posts.GetPost(r.Context(), req.PostID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "post not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if *req.Dir == 1 {
		err := h.Votes.CreateVote(r.Context(), user.ID, req.PostID)
		if errors.Is(err, store.ErrDuplicate) {
			utils.JSONError(w, http.StatusConflict, "already voted on this post")
			return
		}
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "internal error")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]string{"message": "successfully added vote"})
		return
	}

	err := h.Votes.DeleteVote(r.Context(), user.ID, req.PostID)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "vote does not exist")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
