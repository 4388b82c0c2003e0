package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"postboard/internal/models"
)

// Store runs all persistence against Postgres. Callers see the
// ErrNotFound/ErrDuplicate sentinels instead of driver errors.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// ---------------------- users ----------------------

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	user := models.User{
		Email:    email,
		Password: passwordHash,
	}

	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, email, passwordHash).Scan(&user.ID, &user.CreatedAt)

	if isUniqueViolation(err) {
		return models.User{}, ErrDuplicate
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: create user: %w", err)
	}

	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: get user: %w", err)
	}

	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: get user by email: %w", err)
	}

	return user, nil
}

// ---------------------- posts ----------------------

func (s *Store) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO posts (owner_id, title, content, published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, post.OwnerID, post.Title, post.Content, post.Published).
		Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return models.Post{}, fmt.Errorf("store: create post: %w", err)
	}

	return post, nil
}

func (s *Store) GetPost(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post
	err := s.db.GetContext(ctx, &post, `
		SELECT id, owner_id, title, content, published, created_at
		FROM posts
		WHERE id = $1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("store: get post: %w", err)
	}

	return post, nil
}

// postVotesRow flattens the LEFT JOIN aggregate for sqlx scanning.
type postVotesRow struct {
	models.Post
	Votes int64 `db:"votes"`
}

const postWithVotesQuery = `
	SELECT p.id, p.owner_id, p.title, p.content, p.published, p.created_at,
	       COUNT(v.post_id) AS votes
	FROM posts p
	LEFT JOIN votes v ON v.post_id = p.id
`

func (s *Store) GetPostWithVotes(ctx context.Context, id int64) (models.PostWithVotes, error) {
	var row postVotesRow
	err := s.db.GetContext(ctx, &row, postWithVotesQuery+`
		WHERE p.id = $1
		GROUP BY p.id
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return models.PostWithVotes{}, ErrNotFound
	}
	if err != nil {
		return models.PostWithVotes{}, fmt.Errorf("store: get post with votes: %w", err)
	}

	return models.PostWithVotes{Post: row.Post, Votes: row.Votes}, nil
}

// ListPosts returns posts whose title contains search (empty matches
// everything), each with its vote count, paginated by limit/offset.
func (s *Store) ListPosts(ctx context.Context, search string, limit, offset int) ([]models.PostWithVotes, error) {
	var rows []postVotesRow
	err := s.db.SelectContext(ctx, &rows, postWithVotesQuery+`
		WHERE p.title LIKE '%' || $1 || '%'
		GROUP BY p.id
		ORDER BY p.id
		LIMIT $2 OFFSET $3
	`, search, limit, offset)

	if err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}

	out := make([]models.PostWithVotes, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.PostWithVotes{Post: row.Post, Votes: row.Votes})
	}
	return out, nil
}

func (s *Store) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	err := s.db.QueryRowxContext(ctx, `
		UPDATE posts
		SET title = $1, content = $2, published = $3
		WHERE id = $4
		RETURNING owner_id, created_at
	`, post.Title, post.Content, post.Published, post.ID).
		Scan(&post.OwnerID, &post.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("store: update post: %w", err)
	}

	return post, nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------- votes ----------------------

func (s *Store) CreateVote(ctx context.Context, userID, postID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO votes (user_id, post_id)
		VALUES ($1, $2)
	`, userID, postID)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("store: create vote: %w", err)
	}
	return nil
}

func (s *Store) DeleteVote(ctx context.Context, userID, postID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM votes
		WHERE user_id = $1 AND post_id = $2
	`, userID, postID)
	if err != nil {
		return fmt.Errorf("store: delete vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete vote: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
