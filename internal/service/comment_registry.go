package service

import (
	"iter"
	"sync"

	"github.com/pinwall/pinwall-core/internal/domain"
)

// CommentRegistry is the shared per-process registry of comment entries
// keyed by post id. Every post-rendering surface consults the same instance
// so counts stay consistent without each screen owning a copy.
//
// Entries are append-only and volatile: the registry is never persisted
// and starts empty on every launch.
type CommentRegistry interface {
	// Count returns the number of entries for a post, 0 when unknown
	Count(postID string) int
	// Append adds an entry to the post's ordered sequence, creating it
	// if absent. Duplicate entries are allowed.
	Append(postID string, entry domain.CommentEntry)
	// Entries returns a lazy, restartable view over the post's entries
	// in insertion order. Each restart observes the state at that moment.
	Entries(postID string) iter.Seq[domain.CommentEntry]
}

type commentRegistry struct {
	mu      sync.RWMutex
	entries map[string][]domain.CommentEntry
}

// NewCommentRegistry creates an empty registry. The application constructs
// exactly one and hands it to every consumer; see internal/app.
func NewCommentRegistry() CommentRegistry {
	return &commentRegistry{entries: make(map[string][]domain.CommentEntry)}
}

func (r *commentRegistry) Count(postID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[postID])
}

func (r *commentRegistry) Append(postID string, entry domain.CommentEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.PostID = postID
	r.entries[postID] = append(r.entries[postID], entry)
}

func (r *commentRegistry) Entries(postID string) iter.Seq[domain.CommentEntry] {
	return func(yield func(domain.CommentEntry) bool) {
		r.mu.RLock()
		snapshot := make([]domain.CommentEntry, len(r.entries[postID]))
		copy(snapshot, r.entries[postID])
		r.mu.RUnlock()

		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}
