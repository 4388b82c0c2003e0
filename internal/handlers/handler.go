package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"postboard/internal/models"
)

// The handlers depend on these narrow interfaces rather than the
// concrete Postgres store, so they can be exercised against fakes.

type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type PostStore interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	GetPostWithVotes(ctx context.Context, id int64) (models.PostWithVotes, error)
	ListPosts(ctx context.Context, search string, limit, offset int) ([]models.PostWithVotes, error)
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

type VoteStore interface {
	CreateVote(ctx context.Context, userID, postID int64) error
	DeleteVote(ctx context.Context, userID, postID int64) error
}

// TokenIssuer mints a bearer token for a just-authenticated user.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// Hasher is the injected password-hashing capability.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

type Handler struct {
	Auth  *AuthHandler
	Users *UserHandler
	Posts *PostHandler
	Votes *VoteHandler
}

func New(users UserStore, posts PostStore, votes VoteStore, tokens TokenIssuer, hasher Hasher) *Handler {
	return &Handler{
		Auth:  &AuthHandler{Users: users, Tokens: tokens, Hasher: hasher},
		Users: &UserHandler{Users: users, Hasher: hasher},
		Posts: &PostHandler{Posts: posts},
		Votes: &VoteHandler{Posts: posts, Votes: votes},
	}
}

// idParam parses the {id} URL segment.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
