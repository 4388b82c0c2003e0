package models

// Vote records that a user liked a post. (user_id, post_id) is the
// composite primary key, so a user can hold at most one vote per post.
type Vote struct {
	UserID int64 `db:"user_id" json:"user_id"`
	PostID int64 `db:"post_id" json:"post_id"`
}
