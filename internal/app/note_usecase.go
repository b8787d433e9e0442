package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notekeeper/internal/domain/access"
	"notekeeper/internal/domain/entities"
	"notekeeper/internal/ports/repositories"
	"notekeeper/pkg/logger"
)

const (
	methodCreateNote = "CreateNote"
	methodListNotes  = "ListNotes"
	methodUpdateNote = "UpdateNote"
	methodDeleteNote = "DeleteNote"

	msgCreatingNote = "creating note"
	msgNoteCreated  = "note created"
	msgListingNotes = "listing notes"
	msgNotesListed  = "notes listed"
	msgUpdatingNote = "updating note"
	msgNoteUpdated  = "note updated"
	msgNoNoteMatch  = "no note updated"
	msgDeletingNote = "deleting note"
	msgNoteDeleted  = "note deleted"

	msgErrCreateNote = "failed to create note"
	msgErrListNotes  = "failed to list notes"
	msgErrUpdateNote = "failed to update note"
	msgErrDeleteNote = "failed to delete note"

	errCtxCreatingNote = "creating note"
	errCtxListingNotes = "listing notes"
	errCtxUpdatingNote = "updating note"
	errCtxDeletingNote = "deleting note"
)

// Paging defaults, applied when the boundary passes unusable values.
const (
	defaultListLimit = 10
)

// NoteUseCase orchestrates the note lifecycle. Every read goes through the
// access package so scoping is part of the query, and every write is pinned
// to the caller's own records.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase creates a new note lifecycle manager.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// CreateNote creates a note owned by the principal. Any client-supplied owner
// is ignored: ownership always comes from the authenticated identity.
func (uc *NoteUseCase) CreateNote(ctx context.Context, principal entities.Principal, title, description string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.String("owner", principal.Email))
	log.Debug(ctx, msgCreatingNote)

	note := entities.NewNote(principal.Email, title, description)

	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		log.Error(ctx, msgErrCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", created.ID))
	return created, nil
}

// ListNotes returns a page of notes whose title contains titlePattern,
// scoped by the caller's role: a plain user sees only its own notes,
// elevated roles see all owners.
func (uc *NoteUseCase) ListNotes(ctx context.Context, principal entities.Principal, titlePattern string, limit, skip int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListNotes), zap.String("email", principal.Email))
	log.Debug(ctx, msgListingNotes, zap.String("pattern", titlePattern), zap.Int("limit", limit), zap.Int("skip", skip))

	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}

	filter := access.EffectiveFilter(principal, access.NoteFilter{TitlePattern: titlePattern})

	notes, err := uc.noteRepo.List(ctx, filter, limit, skip)
	if err != nil {
		log.Error(ctx, msgErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	log.Debug(ctx, msgNotesListed, zap.Int("count", len(notes)))
	return notes, nil
}

// UpdateNote rewrites the description of the caller's note with the given
// title. The filter is owner-only regardless of role. When nothing matches,
// the result is (nil, nil) — "no record updated" — without distinguishing an
// absent title from a note owned by someone else.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, principal entities.Principal, title, description string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateNote), zap.String("email", principal.Email))
	log.Debug(ctx, msgUpdatingNote, zap.String("title", title))

	filter := access.OwnerOnlyFilter(principal, title)

	updated, err := uc.noteRepo.UpdateDescription(ctx, filter, description)
	if err != nil {
		log.Error(ctx, msgErrUpdateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	if updated == nil {
		log.Debug(ctx, msgNoNoteMatch, zap.String("title", title))
		return nil, nil
	}

	log.Info(ctx, msgNoteUpdated, zap.String("noteID", updated.ID))
	return updated, nil
}

// DeleteNote removes the caller's note with the given title. The filter is
// owner-only regardless of role; no match yields entities.ErrNoteNotFound.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, principal entities.Principal, title string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteNote), zap.String("email", principal.Email))
	log.Debug(ctx, msgDeletingNote, zap.String("title", title))

	filter := access.OwnerOnlyFilter(principal, title)

	if err := uc.noteRepo.Delete(ctx, filter); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return entities.ErrNoteNotFound
		}
		log.Error(ctx, msgErrDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted, zap.String("title", title))
	return nil
}
