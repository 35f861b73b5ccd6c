package domain

import "time"

// CommentEntry represents a single comment on a post.
// Entries live in the in-process comment registry only; they are never
// written to durable storage.
type CommentEntry struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
