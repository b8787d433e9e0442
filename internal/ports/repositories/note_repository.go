package repositories

import (
	"context"

	"notekeeper/internal/domain/access"
	"notekeeper/internal/domain/entities"
)

// NoteRepository is the record store for notes. Filters arrive already scoped
// by the access package; the repository translates them verbatim into queries.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	List(ctx context.Context, filter access.NoteFilter, limit, skip int) ([]*entities.Note, error)
	UpdateDescription(ctx context.Context, filter access.NoteFilter, description string) (*entities.Note, error)
	Delete(ctx context.Context, filter access.NoteFilter) error
	DeleteByOwner(ctx context.Context, owner string) (int64, error)
}
