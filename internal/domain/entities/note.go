package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Note domain errors.
var ErrNoteNotFound = errors.New("note not found")

// Note is a user-owned record. Owner is the creator's email, set by the
// service from the authenticated principal and immutable thereafter. Titles
// are not unique.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNote creates a note owned by the given identity.
func NewNote(owner, title, description string) *Note {
	return &Note{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Owner:       owner,
		CreatedAt:   time.Now().UTC(),
	}
}
