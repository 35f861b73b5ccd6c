package domain

import (
	"github.com/pinwall/pinwall-core/internal/common"
)

// NoteCategory is the closed set of bulletin-board note variants
type NoteCategory string

const (
	CategorySticky   NoteCategory = "sticky"
	CategoryCurrency NoteCategory = "currency"
)

// Capacity limits per note category
const (
	MaxStickyNotes   = 7
	MaxCurrencyNotes = 1
	MaxTitleLength   = 100
)

// IsValid reports whether the category is one of the known variants
func (c NoteCategory) IsValid() bool {
	return c == CategorySticky || c == CategoryCurrency
}

// Note represents a bulletin-board scrapbook entry on a member profile.
// JSON field names match the blob layout written by earlier client versions
// (category serializes as "type").
type Note struct {
	ID         string       `json:"id" yaml:"id"`
	Title      string       `json:"title" yaml:"title"`
	SmallImage string       `json:"smallImage" yaml:"smallImage"`
	FullImage  string       `json:"fullImage" yaml:"fullImage"`
	CreatedAt  string       `json:"createdAt" yaml:"createdAt"` // display date, "Jan 2, 2006"
	Category   NoteCategory `json:"type" yaml:"type"`
	Amount     *int         `json:"amount,omitempty" yaml:"amount,omitempty"` // set iff Category == currency
}

// NoteDraft represents request data for creating a note.
// ID and CreatedAt are assigned by the store.
type NoteDraft struct {
	Title      string       `json:"title"`
	SmallImage string       `json:"smallImage"`
	FullImage  string       `json:"fullImage"`
	Category   NoteCategory `json:"type"`
	Amount     *int         `json:"amount,omitempty"`
}

// Validate checks required fields and the amount/category coupling
func (d *NoteDraft) Validate() error {
	if d.Title == "" {
		return &common.ValidationError{Field: "title", Reason: "required"}
	}
	if len([]rune(d.Title)) > MaxTitleLength {
		return &common.ValidationError{Field: "title", Reason: "must be 100 characters or fewer"}
	}
	if d.SmallImage == "" {
		return &common.ValidationError{Field: "smallImage", Reason: "required"}
	}
	if d.FullImage == "" {
		return &common.ValidationError{Field: "fullImage", Reason: "required"}
	}
	if !d.Category.IsValid() {
		return &common.ValidationError{Field: "type", Reason: "must be sticky or currency"}
	}
	if d.Category == CategoryCurrency {
		if d.Amount == nil {
			return &common.ValidationError{Field: "amount", Reason: "required for currency notes"}
		}
		if *d.Amount < 0 {
			return &common.ValidationError{Field: "amount", Reason: "must not be negative"}
		}
	} else if d.Amount != nil {
		return &common.ValidationError{Field: "amount", Reason: "only allowed on currency notes"}
	}
	return nil
}
