// Package app implements the application business logic of the service.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"notekeeper/internal/domain/entities"
	"notekeeper/internal/ports/repositories"
	svc "notekeeper/internal/ports/services"
	"notekeeper/pkg/logger"
)

const (
	methodCreateUser     = "CreateUser"
	methodFindUser       = "FindUser"
	methodAuthenticate   = "Authenticate"
	methodChangePassword = "ChangePassword"
	methodDeleteUser     = "DeleteUser"

	msgCreatingUser           = "creating user"
	msgUserCreated            = "user created successfully"
	msgSuperAdminDenied       = "super_admin creation denied"
	msgUserExists             = "user already exists"
	msgLookingUpUser          = "looking up user"
	msgUserFound              = "user found"
	msgAuthAttempt            = "authentication attempt"
	msgAuthNonExistent        = "authentication attempt for non-existent user"
	msgAuthWrongPassword      = "authentication with wrong password"
	msgAuthenticated          = "user authenticated"
	msgChangingPassword       = "changing password"
	msgWrongOldPassword       = "wrong old password provided"
	msgPasswordChanged        = "password changed successfully"
	msgDeletingUser           = "deleting user"
	msgUserDeleted            = "user deleted"
	msgCascadeComplete        = "cascade note removal complete"
	msgErrHashPassword        = "failed to hash password"
	msgErrCreateUser          = "failed to create user"
	msgErrFindingUser         = "error finding user"
	msgErrVerifyingPassword   = "error verifying password"
	msgErrUpdatingPassword    = "failed to update password"
	msgErrDeletingUser        = "failed to delete user"
	msgErrCascadeNotes        = "failed to remove owned notes after user deletion"

	errCtxValidatingEmail    = "validating email"
	errCtxValidatingRole     = "validating role"
	errCtxCheckingRequester  = "checking requester policy"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxWrongOldPassword   = "verifying old password"
	errCtxUpdatingPassword   = "updating password"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxDeletingUser       = "deleting user"
	errCtxCascadingNotes     = "cascading note deletion"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AccountUseCase orchestrates the user lifecycle: creation, lookup,
// credential changes, and deletion with cascading note cleanup.
type AccountUseCase struct {
	userRepo       repositories.UserRepository
	noteRepo       repositories.NoteRepository
	passwordSvc    svc.PasswordService
	bootstrapActor string
}

// NewAccountUseCase creates a new account lifecycle manager. bootstrapActor
// is the only identity allowed to mint super_admin users.
func NewAccountUseCase(
	userRepo repositories.UserRepository,
	noteRepo repositories.NoteRepository,
	passwordSvc svc.PasswordService,
	bootstrapActor string,
) *AccountUseCase {
	return &AccountUseCase{
		userRepo:       userRepo,
		noteRepo:       noteRepo,
		passwordSvc:    passwordSvc,
		bootstrapActor: bootstrapActor,
	}
}

// CreateUser registers a new account. Only the bootstrap actor may create a
// super_admin. A duplicate identity surfaces as entities.ErrUserAlreadyExists;
// the uniqueness decision itself is made by the storage constraint, so two
// concurrent creates of the same identity produce exactly one winner.
func (a *AccountUseCase) CreateUser(ctx context.Context, email, password, role string, requester *entities.Principal) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("email", email))
	log.Debug(ctx, msgCreatingUser)

	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
	}

	parsedRole, err := entities.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRole, err)
	}

	if parsedRole == entities.RoleSuperAdmin && !a.isBootstrapActor(requester) {
		log.Info(ctx, msgSuperAdminDenied)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingRequester, entities.ErrSuperAdminRestricted)
	}

	hashed, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         parsedRole,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := a.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, entities.ErrUserAlreadyExists) {
			log.Debug(ctx, msgUserExists)
			return nil, entities.ErrUserAlreadyExists
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("role", string(created.Role)))
	return created.Profile(), nil
}

// FindUser returns the sanitized profile for an identity. The stored digest
// never crosses this boundary.
func (a *AccountUseCase) FindUser(ctx context.Context, email string) (*entities.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFindUser), zap.String("email", email))
	log.Debug(ctx, msgLookingUpUser)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	log.Debug(ctx, msgUserFound)
	return user.Profile(), nil
}

// Authenticate verifies a credential pair and returns the principal on
// success. Both an unknown identity and a wrong password map to
// entities.ErrInvalidCredentials.
func (a *AccountUseCase) Authenticate(ctx context.Context, email, password string) (entities.Principal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate), zap.String("email", email))
	log.Debug(ctx, msgAuthAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgAuthNonExistent)
			return entities.Principal{}, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return entities.Principal{}, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return entities.Principal{}, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgAuthWrongPassword)
		return entities.Principal{}, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
	}

	log.Info(ctx, msgAuthenticated)
	return entities.Principal{Email: user.Email, Role: user.Role}, nil
}

// ChangePassword rotates the caller's own credential. The lookup and the
// update are keyed by the same identity, principal.Email; a failed
// verification leaves the stored digest untouched.
func (a *AccountUseCase) ChangePassword(ctx context.Context, principal entities.Principal, oldPassword, newPassword string) error {
	log := logger.Log(ctx).With(zap.String("method", methodChangePassword), zap.String("email", principal.Email))
	log.Debug(ctx, msgChangingPassword)

	user, err := a.userRepo.FindByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return entities.ErrUserNotFound
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, oldPassword, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgWrongOldPassword)
		return fmt.Errorf("%s: %w", errCtxWrongOldPassword, entities.ErrWrongOldPassword)
	}

	hashed, err := a.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	if err := a.userRepo.UpdatePassword(ctx, principal.Email, hashed); err != nil {
		log.Error(ctx, msgErrUpdatingPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpdatingPassword, err)
	}

	log.Info(ctx, msgPasswordChanged)
	return nil
}

// DeleteUser removes the account and then every note it owns, in that order.
// The two statements are sequential, not transactional: a crash between them
// can leave orphaned notes behind. Accepted gap, not masked.
func (a *AccountUseCase) DeleteUser(ctx context.Context, email string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.String("email", email))
	log.Debug(ctx, msgDeletingUser)

	if err := a.userRepo.Delete(ctx, email); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return entities.ErrUserNotFound
		}
		log.Error(ctx, msgErrDeletingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)

	removed, err := a.noteRepo.DeleteByOwner(ctx, email)
	if err != nil {
		log.Error(ctx, msgErrCascadeNotes, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCascadingNotes, err)
	}

	log.Info(ctx, msgCascadeComplete, zap.Int64("removed", removed))
	return nil
}

func (a *AccountUseCase) isBootstrapActor(requester *entities.Principal) bool {
	return requester != nil && requester.Email == a.bootstrapActor
}
