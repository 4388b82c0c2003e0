package models

import "time"

type Post struct {
	ID        int64     `db:"id" json:"id"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Published bool      `db:"published" json:"published"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PostWithVotes is the list/detail representation: the post plus its
// aggregated vote count. A post nobody voted on carries Votes 0.
type PostWithVotes struct {
	Post  Post  `json:"Post"`
	Votes int64 `json:"Votes"`
}
