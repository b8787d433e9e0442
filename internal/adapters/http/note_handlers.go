package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notekeeper/internal/adapters/http/middleware"
	"notekeeper/internal/app"
	"notekeeper/internal/domain/entities"
	"notekeeper/internal/ports/cache"
	"notekeeper/pkg/logger"
)

const (
	LogHandlerCreateNote = "note handler: create note"
	LogHandlerListNotes  = "note handler: list notes"
	LogHandlerUpdateNote = "note handler: update note"
	LogHandlerDeleteNote = "note handler: delete note"

	msgCacheHit         = "notes list served from cache"
	msgCacheStoreFailed = "failed to store notes list in cache"
	msgCacheBustFailed  = "failed to invalidate notes cache"
)

// NoteHandler serves the note routes. Listing responses are cached per
// principal under a generation key; any mutation by that principal rotates
// the generation, which invalidates every cached page at once.
type NoteHandler struct {
	notes *app.NoteUseCase
	cache cache.Cache
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(notes *app.NoteUseCase, listCache cache.Cache) *NoteHandler {
	return &NoteHandler{
		notes: notes,
		cache: listCache,
	}
}

// CreateNote creates a note owned by the caller.
func (h *NoteHandler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateNote)

	principal, ok := middleware.PrincipalFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidRequest)
	}

	var req CreateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Title == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "title is required")
	}

	note, err := h.notes.CreateNote(requestCtx, principal, req.Title, req.Description)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	h.bustListCache(ctx, principal)

	if err := ctx.Status(http.StatusCreated).JSON(note); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ListNotes returns a page of notes matching the title pattern, scoped by
// the caller's role.
func (h *NoteHandler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListNotes)

	principal, ok := middleware.PrincipalFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidRequest)
	}

	pattern := ctx.Query("title")
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	skip, _ := strconv.Atoi(ctx.Query("skip", "0"))

	cacheKey := h.listCacheKey(ctx, principal, pattern, limit, skip)
	if cached, err := h.cache.Get(requestCtx, cacheKey); err == nil && cached != "" {
		log.Debug(requestCtx, msgCacheHit)
		ctx.Set("Content-Type", "application/json")
		return ctx.Status(http.StatusOK).SendString(cached)
	}

	notes, err := h.notes.ListNotes(requestCtx, principal, pattern, limit, skip)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if payload, err := json.Marshal(notes); err == nil {
		if err := h.cache.Set(requestCtx, cacheKey, string(payload), 0); err != nil {
			log.Warn(requestCtx, msgCacheStoreFailed, zap.Error(err))
		}
	}

	if err := ctx.Status(http.StatusOK).JSON(notes); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateNote rewrites the description of the caller's note. A request that
// matches nothing is a successful no-op, not an error.
func (h *NoteHandler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateNote)

	principal, ok := middleware.PrincipalFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidRequest)
	}

	var req UpdateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Title == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "title is required")
	}

	note, err := h.notes.UpdateNote(requestCtx, principal, req.Title, req.Description)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	h.bustListCache(ctx, principal)

	if note == nil {
		if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
			"result": "no note updated",
		}); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		return nil
	}

	if err := ctx.Status(http.StatusOK).JSON(note); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// DeleteNote removes the caller's note with the given title.
func (h *NoteHandler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteNote)

	principal, ok := middleware.PrincipalFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidRequest)
	}

	title := ctx.Params("title")

	if err := h.notes.DeleteNote(requestCtx, principal, title); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	h.bustListCache(ctx, principal)

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"result": "note deleted",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// listCacheKey builds the per-principal cache key, embedding the current
// cache generation so stale pages fall away after mutations.
func (h *NoteHandler) listCacheKey(ctx fiber.Ctx, principal entities.Principal, pattern string, limit, skip int) string {
	generation, err := h.cache.Get(ctx.Context(), h.generationKey(principal))
	if err != nil || generation == "" {
		generation = "0"
	}
	return fmt.Sprintf("notes:%s:%s:%s:%d:%d", principal.Email, generation, pattern, limit, skip)
}

func (h *NoteHandler) generationKey(principal entities.Principal) string {
	return fmt.Sprintf("notes:gen:%s", principal.Email)
}

// bustListCache rotates the caller's cache generation after a mutation.
func (h *NoteHandler) bustListCache(ctx fiber.Ctx, principal entities.Principal) {
	requestCtx := ctx.Context()
	if err := h.cache.Set(requestCtx, h.generationKey(principal), uuid.New().String(), 0); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, msgCacheBustFailed, zap.Error(err))
	}
}
