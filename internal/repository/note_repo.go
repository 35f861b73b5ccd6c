package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pinwall/pinwall-core/internal/common"
	"github.com/pinwall/pinwall-core/internal/domain"
	"github.com/pinwall/pinwall-core/pkg/kv"
)

// NotesKey is the fixed blob key holding the whole note collection
const NotesKey = "bulletin_board:notes"

// SchemaVersion is written into every persisted envelope so future layouts
// can migrate old blobs
const SchemaVersion = 1

// notesEnvelope wraps the collection with a schema version tag
type notesEnvelope struct {
	Version int           `json:"version"`
	Notes   []domain.Note `json:"notes"`
}

// NoteRepository persists the full note collection as one blob
type NoteRepository interface {
	// Load returns the persisted collection, with found=false on first run.
	// A structurally unreadable blob yields a *common.DeserializationError.
	Load(ctx context.Context) (notes []domain.Note, found bool, err error)
	// Save overwrites the persisted collection (replace semantics, no merge)
	Save(ctx context.Context, notes []domain.Note) error
}

type kvNoteRepository struct {
	store kv.Store
}

// NewNoteRepository creates a NoteRepository over a blob store
func NewNoteRepository(store kv.Store) NoteRepository {
	return &kvNoteRepository{store: store}
}

func (r *kvNoteRepository) Load(ctx context.Context) ([]domain.Note, bool, error) {
	value, found, err := r.store.Get(ctx, NotesKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read notes blob: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	notes, err := DecodeNotes(value)
	if err != nil {
		return nil, true, &common.DeserializationError{Key: NotesKey, Err: err}
	}
	return notes, true, nil
}

func (r *kvNoteRepository) Save(ctx context.Context, notes []domain.Note) error {
	value, err := EncodeNotes(notes)
	if err != nil {
		return fmt.Errorf("failed to serialize notes: %w", err)
	}
	if err := r.store.Set(ctx, NotesKey, value); err != nil {
		return fmt.Errorf("failed to write notes blob: %w", err)
	}
	return nil
}

// DecodeNotes parses a persisted blob. Both the current versioned envelope
// and the legacy bare-array layout (pre-versioning clients) are accepted.
func DecodeNotes(value string) ([]domain.Note, error) {
	var env notesEnvelope
	if err := json.Unmarshal([]byte(value), &env); err == nil && env.Version >= 1 {
		return env.Notes, nil
	}

	var legacy []domain.Note
	if err := json.Unmarshal([]byte(value), &legacy); err != nil {
		return nil, err
	}
	return legacy, nil
}

// EncodeNotes serializes the collection in the current envelope layout
func EncodeNotes(notes []domain.Note) (string, error) {
	if notes == nil {
		notes = []domain.Note{}
	}
	data, err := json.Marshal(notesEnvelope{Version: SchemaVersion, Notes: notes})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
