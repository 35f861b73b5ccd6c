package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pinwall/pinwall-core/internal/common"
	"github.com/pinwall/pinwall-core/internal/domain"
	"github.com/pinwall/pinwall-core/internal/repository"
	"github.com/pinwall/pinwall-core/internal/seed"
	pkglogger "github.com/pinwall/pinwall-core/pkg/logger"
)

// createdAtLayout is the display date stamped onto new notes
const createdAtLayout = "Jan 2, 2006"

// NoteService owns the capacity-bounded note collection for one profile and
// keeps it synchronized with durable storage. The collection is append-only:
// there is deliberately no per-item delete or edit, ReplaceAll is the only
// bulk escape hatch.
type NoteService interface {
	// Load reads the persisted collection, seeding it on first run.
	// A corrupt blob falls back to seed data instead of failing.
	Load(ctx context.Context) ([]domain.Note, error)
	// Add validates the draft against capacity and field rules, assigns
	// id and creation date, prepends the note and persists the collection
	Add(ctx context.Context, draft domain.NoteDraft) (*domain.Note, error)
	// ReplaceAll overwrites the in-memory and persisted collection.
	// Intended for bulk import and tests only.
	ReplaceAll(ctx context.Context, notes []domain.Note) error
	// Notes returns a snapshot of the current collection
	Notes() ([]domain.Note, error)
}

type noteService struct {
	repo repository.NoteRepository

	// mu serializes every operation so overlapping Add calls cannot both
	// pass the capacity check against the same pre-mutation state
	mu     sync.Mutex
	notes  []domain.Note
	loaded bool

	now func() time.Time
}

// NewNoteService creates a NoteService; callers must Load before mutating
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo, now: time.Now}
}

func (s *noteService) Load(ctx context.Context) ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, found, err := s.repo.Load(ctx)
	if err != nil {
		var deserr *common.DeserializationError
		if !errors.As(err, &deserr) {
			return nil, err
		}
		// Corrupt local state must never block the UI: adopt seed data
		// without overwriting the blob, in case a later version can
		// still read it
		pkglogger.GetLogger().Warn().Err(err).Msg("notes blob unreadable, falling back to seed data")
		seeded, serr := seed.Notes()
		if serr != nil {
			return nil, serr
		}
		s.notes = seeded
		s.loaded = true
		return s.snapshot(), nil
	}

	if !found {
		// First run: persist the seed so subsequent loads are stable
		seeded, serr := seed.Notes()
		if serr != nil {
			return nil, serr
		}
		if werr := s.repo.Save(ctx, seeded); werr != nil {
			pkglogger.GetLogger().Warn().Err(werr).Msg("failed to persist seed notes")
		}
		s.notes = seeded
		s.loaded = true
		return s.snapshot(), nil
	}

	s.notes = notes
	s.loaded = true
	return s.snapshot(), nil
}

func (s *noteService) Add(ctx context.Context, draft domain.NoteDraft) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, common.ErrNotLoaded
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCapacity(draft.Category); err != nil {
		return nil, err
	}

	note := domain.Note{
		ID:         uuid.NewString(),
		Title:      draft.Title,
		SmallImage: draft.SmallImage,
		FullImage:  draft.FullImage,
		CreatedAt:  s.now().Format(createdAtLayout),
		Category:   draft.Category,
	}
	if draft.Amount != nil {
		amount := *draft.Amount
		note.Amount = &amount
	}

	// Newest first
	s.notes = append([]domain.Note{note}, s.notes...)

	if err := s.repo.Save(ctx, s.notes); err != nil {
		// At-least-once durability: the note stays in memory, storage
		// catches up on the next successful save
		pkglogger.GetLogger().Warn().Err(err).Str("note_id", note.ID).
			Msg("note added but persisting the collection failed")
	}

	return &note, nil
}

func (s *noteService) ReplaceAll(ctx context.Context, notes []domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return common.ErrNotLoaded
	}
	if err := validateCollection(notes); err != nil {
		return err
	}

	replacement := make([]domain.Note, len(notes))
	copy(replacement, notes)

	if err := s.repo.Save(ctx, replacement); err != nil {
		return err
	}
	s.notes = replacement
	return nil
}

func (s *noteService) Notes() ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, common.ErrNotLoaded
	}
	return s.snapshot(), nil
}

// checkCapacity enforces the per-category limits against the current state
func (s *noteService) checkCapacity(category domain.NoteCategory) error {
	var sticky, currency int
	for _, n := range s.notes {
		switch n.Category {
		case domain.CategorySticky:
			sticky++
		case domain.CategoryCurrency:
			currency++
		}
	}

	if category == domain.CategorySticky && sticky >= domain.MaxStickyNotes {
		return &common.CapacityError{Category: string(domain.CategorySticky), Limit: domain.MaxStickyNotes}
	}
	if category == domain.CategoryCurrency && currency >= domain.MaxCurrencyNotes {
		return &common.CapacityError{Category: string(domain.CategoryCurrency), Limit: domain.MaxCurrencyNotes}
	}
	return nil
}

// validateCollection checks the invariants a bulk import must not break
func validateCollection(notes []domain.Note) error {
	var sticky, currency int
	seen := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		if n.ID == "" {
			return &common.ValidationError{Field: "id", Reason: "required"}
		}
		if _, dup := seen[n.ID]; dup {
			return &common.ValidationError{Field: "id", Reason: "duplicate id " + n.ID}
		}
		seen[n.ID] = struct{}{}

		switch n.Category {
		case domain.CategorySticky:
			if n.Amount != nil {
				return &common.ValidationError{Field: "amount", Reason: "only allowed on currency notes"}
			}
			sticky++
		case domain.CategoryCurrency:
			if n.Amount == nil {
				return &common.ValidationError{Field: "amount", Reason: "required for currency notes"}
			}
			currency++
		default:
			return &common.ValidationError{Field: "type", Reason: "must be sticky or currency"}
		}
	}

	if sticky > domain.MaxStickyNotes {
		return &common.CapacityError{Category: string(domain.CategorySticky), Limit: domain.MaxStickyNotes}
	}
	if currency > domain.MaxCurrencyNotes {
		return &common.CapacityError{Category: string(domain.CategoryCurrency), Limit: domain.MaxCurrencyNotes}
	}
	return nil
}

// snapshot copies the collection so callers cannot mutate store state
func (s *noteService) snapshot() []domain.Note {
	out := make([]domain.Note, len(s.notes))
	copy(out, s.notes)
	return out
}
