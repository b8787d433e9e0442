package http

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/adapters/http/middleware"
	"notekeeper/internal/app"
	"notekeeper/internal/domain/entities"
	svc "notekeeper/internal/ports/services"
	"notekeeper/pkg/logger"
)

const (
	LogHandlerRegister       = "user handler: register"
	LogHandlerLogin          = "user handler: login"
	LogHandlerFindUser       = "user handler: find user"
	LogHandlerChangePassword = "user handler: change password"
	LogHandlerDeleteUser     = "user handler: delete user"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorElevatedRoleRequired = "elevated role required"
)

// sendErrorResponse writes a JSON error body with the given status.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UserHandler serves the account routes.
type UserHandler struct {
	accounts *app.AccountUseCase
	tokenSvc svc.TokenService
}

// NewUserHandler creates a new account handler.
func NewUserHandler(accounts *app.AccountUseCase, tokenSvc svc.TokenService) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		tokenSvc: tokenSvc,
	}
}

// Register handles user creation. The requester is taken from the bearer
// token when one is present; anonymous callers register plain accounts.
func (h *UserHandler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email and password are required")
	}
	if req.Role == "" {
		req.Role = string(entities.RoleUser)
	}

	var requester *entities.Principal
	if principal, ok := middleware.PrincipalFromCtx(ctx); ok {
		requester = &principal
	}

	profile, err := h.accounts.CreateUser(requestCtx, req.Email, req.Password, req.Role, requester)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(profile); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login verifies credentials and issues a bearer token.
func (h *UserHandler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email and password are required")
	}

	principal, err := h.accounts.Authenticate(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	token, expiresAt, err := h.tokenSvc.GenerateAccessToken(requestCtx, principal)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	if err := ctx.Status(http.StatusOK).JSON(LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// FindUser returns the sanitized profile for an identity.
func (h *UserHandler) FindUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerFindUser)

	email := ctx.Params("email")

	profile, err := h.accounts.FindUser(requestCtx, email)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(profile); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ChangePassword rotates the caller's own password.
func (h *UserHandler) ChangePassword(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerChangePassword)

	principal, ok := middleware.PrincipalFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidRequest)
	}

	var req ChangePasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "old_password and new_password are required")
	}

	if err := h.accounts.ChangePassword(requestCtx, principal, req.OldPassword, req.NewPassword); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"result": "password updated",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// DeleteUser removes an account and its notes. Restricted to elevated roles.
func (h *UserHandler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteUser)

	principal, ok := middleware.PrincipalFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorInvalidRequest)
	}
	if !principal.Role.Elevated() {
		return sendErrorResponse(ctx, http.StatusForbidden, ErrorElevatedRoleRequired)
	}

	email := ctx.Params("email")

	if err := h.accounts.DeleteUser(requestCtx, email); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"result": "user deleted",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
