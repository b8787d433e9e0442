package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notekeeper/internal/domain/access"
	"notekeeper/internal/domain/entities"
	"notekeeper/internal/ports/repositories"
	"notekeeper/pkg/logger"
)

// NoteRepository implements repositories.NoteRepository against Postgres.
// Ownership scoping arrives inside the filter and lands in the WHERE clause,
// never as a post-filter over fetched rows.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create inserts a new note.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))

	query := `
        INSERT INTO notes (id, title, description, owner, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, title, description, owner, created_at
    `

	var created entities.Note
	err := r.pool.QueryRow(ctx, query,
		note.ID,
		note.Title,
		note.Description,
		note.Owner,
		note.CreatedAt,
	).Scan(
		&created.ID,
		&created.Title,
		&created.Description,
		&created.Owner,
		&created.CreatedAt,
	)

	if err != nil {
		log.Error(ctx, "error creating note", zap.Error(err))
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return &created, nil
}

// List returns a page of notes matching the filter, in creation order. The
// title pattern matches by substring containment.
func (r *NoteRepository) List(ctx context.Context, filter access.NoteFilter, limit, skip int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "List"))

	var (
		rows pgx.Rows
		err  error
	)

	if filter.Owner != "" {
		query := `
            SELECT id, title, description, owner, created_at
            FROM notes
            WHERE title LIKE '%' || $1 || '%' AND owner = $2
            ORDER BY created_at, id
            LIMIT $3 OFFSET $4
        `
		rows, err = r.pool.Query(ctx, query, filter.TitlePattern, filter.Owner, limit, skip)
	} else {
		query := `
            SELECT id, title, description, owner, created_at
            FROM notes
            WHERE title LIKE '%' || $1 || '%'
            ORDER BY created_at, id
            LIMIT $2 OFFSET $3
        `
		rows, err = r.pool.Query(ctx, query, filter.TitlePattern, limit, skip)
	}

	if err != nil {
		log.Error(ctx, "error listing notes", zap.Error(err))
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Description, &note.Owner, &note.CreatedAt); err != nil {
			log.Error(ctx, "error scanning note", zap.Error(err))
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// UpdateDescription rewrites the description of the oldest note matching the
// exact title and owner. When nothing matches it returns (nil, nil): the
// repository does not distinguish an absent title from a foreign owner.
func (r *NoteRepository) UpdateDescription(ctx context.Context, filter access.NoteFilter, description string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "UpdateDescription"))

	// Single-record semantics: the subquery pins one row even when titles repeat.
	query := `
        UPDATE notes
        SET description = $1
        WHERE id = (
            SELECT id FROM notes
            WHERE title = $2 AND owner = $3
            ORDER BY created_at, id
            LIMIT 1
        )
        RETURNING id, title, description, owner, created_at
    `

	var updated entities.Note
	err := r.pool.QueryRow(ctx, query, description, filter.Title, filter.Owner).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Description,
		&updated.Owner,
		&updated.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "no note updated", zap.String("title", filter.Title))
			return nil, nil
		}
		log.Error(ctx, "error updating note", zap.Error(err))
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	return &updated, nil
}

// Delete removes the oldest note matching the exact title and owner.
func (r *NoteRepository) Delete(ctx context.Context, filter access.NoteFilter) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))

	query := `
        DELETE FROM notes
        WHERE id = (
            SELECT id FROM notes
            WHERE title = $1 AND owner = $2
            ORDER BY created_at, id
            LIMIT 1
        )
    `

	result, err := r.pool.Exec(ctx, query, filter.Title, filter.Owner)
	if err != nil {
		log.Error(ctx, "error deleting note", zap.Error(err))
		return fmt.Errorf("error deleting note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned", zap.String("title", filter.Title))
		return entities.ErrNoteNotFound
	}

	return nil
}

// DeleteByOwner removes every note owned by the given identity and returns
// the number of removed records. Zero is a valid outcome.
func (r *NoteRepository) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "DeleteByOwner"))

	query := `
        DELETE FROM notes
        WHERE owner = $1
    `

	result, err := r.pool.Exec(ctx, query, owner)
	if err != nil {
		log.Error(ctx, "error deleting notes by owner", zap.Error(err))
		return 0, fmt.Errorf("error deleting notes by owner: %w", err)
	}

	removed := result.RowsAffected()
	log.Debug(ctx, "notes removed", zap.Int64("count", removed), zap.String("owner", owner))
	return removed, nil
}
