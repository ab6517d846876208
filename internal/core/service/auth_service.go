package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/myproject/todo-management/internal/core/domain"
	"github.com/myproject/todo-management/internal/core/ports"
)

// AuthService implements registration, login and user management.
type AuthService struct {
	users   ports.UserRepository
	photos  ports.PhotoStore
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	logger  zerolog.Logger
}

func NewAuthService(users ports.UserRepository, photos ports.PhotoStore, tokens ports.TokenIssuer, limiter ports.LoginLimiter, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, photos: photos, tokens: tokens, limiter: limiter, logger: logger}
}

// Register creates a new account with the default USER role. The photo, when
// present, is stored before the insert; an orphaned file on a failed insert is
// tolerated, the database row is what matters.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) error {
	if err := s.checkUsernameFree(ctx, input.Username, 0); err != nil {
		return err
	}
	if err := s.checkEmailFree(ctx, input.Email, 0); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	photoPath := ""
	if input.Photo != nil {
		photoPath, err = s.photos.Save(ctx, input.Photo)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhotoPath:    photoPath,
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		CreatedBy:    input.Username,
		UpdatedAt:    now,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Str("username", user.Username).Msg("user registered")
	return nil
}

// UpdateUser rewrites the profile of userID. Only the user itself or an admin
// may call it. The stored photo is replaced unconditionally: the old file is
// removed and the new upload (possibly absent) becomes the new state.
func (s *AuthService) UpdateUser(ctx context.Context, caller ports.Caller, userID int64, input ports.UpdateUserInput) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() && caller.Username != user.Username {
		return &domain.AccessError{Action: "update"}
	}

	if err := s.checkUsernameFree(ctx, input.Username, user.ID); err != nil {
		if errors.Is(err, domain.ErrUsernameExists) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	if err := s.checkEmailFree(ctx, input.Email, user.ID); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return domain.ErrEmailTaken
		}
		return err
	}

	user.Name = input.Name
	user.Username = input.Username
	user.Email = input.Email
	user.BirthDate = input.BirthDate
	user.JobTitle = input.JobTitle
	user.Location = input.Location
	user.UpdatedAt = time.Now().UTC()
	user.UpdatedBy = caller.Username

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}

	newPath := ""
	if input.Photo != nil {
		newPath, err = s.photos.Save(ctx, input.Photo)
		if err != nil {
			return err
		}
	}
	s.photos.Remove(user.PhotoPath)
	user.PhotoPath = newPath

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("updated_by", caller.Username).Msg("user updated")
	return nil
}

// DeleteUser removes the account, its todos and its photo file. The file
// removal is best-effort and never fails the delete.
func (s *AuthService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	s.photos.Remove(user.PhotoPath)

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user deleted")
	return nil
}

// Login authenticates by username or email. Unknown identifier and wrong
// password produce the same error so the endpoint leaks no account existence
// signal. Successful logins stamp the audit fields.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResult, error) {
	if s.limiter != nil {
		blocked, err := s.limiter.TooMany(ctx, input.UsernameOrEmail)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, input.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.failLogin(ctx, input.UsernameOrEmail)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, s.failLogin(ctx, input.UsernameOrEmail)
	}

	token, err := s.tokens.Issue(user.Username, user.PrimaryRole())
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, input.UsernameOrEmail); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	if err := s.users.TouchAudit(ctx, user.ID, user.Username); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.LoginResult{
		AccessToken:     token,
		TokenType:       "Bearer",
		Role:            user.PrimaryRole(),
		UsernameOrEmail: input.UsernameOrEmail,
	}, nil
}

func (s *AuthService) failLogin(ctx context.Context, identifier string) error {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, identifier); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter record failed")
		}
	}
	return domain.ErrInvalidCredentials
}

// UpdatePassword changes the caller's own password after verifying the old one.
func (s *AuthService) UpdatePassword(ctx context.Context, caller ports.Caller, input ports.UpdatePasswordInput) error {
	if input.NewPassword != input.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}

	user, err := s.users.FindByUsername(ctx, caller.Username)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)) != nil {
		return domain.ErrOldPasswordWrong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash), caller.Username); err != nil {
		return err
	}

	s.logger.Info().Str("username", user.Username).Msg("password updated")
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, page, size int) (*ports.UserPage, error) {
	page, size = normalizePaging(page, size)

	users, total, err := s.users.List(ctx, page, size)
	if err != nil {
		return nil, err
	}

	return &ports.UserPage{
		Data:          users,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages(total, size),
	}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, &domain.NotFoundError{Resource: "User", ID: id}
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	return s.users.FindByUsernameOrEmail(ctx, identifier)
}

// checkUsernameFree fails with ErrUsernameExists when another account (id !=
// excludeID) already uses the username.
func (s *AuthService) checkUsernameFree(ctx context.Context, username string, excludeID int64) error {
	existing, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != excludeID {
		return domain.ErrUsernameExists
	}
	return nil
}

func (s *AuthService) checkEmailFree(ctx context.Context, email string, excludeID int64) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != excludeID {
		return domain.ErrEmailExists
	}
	return nil
}

func normalizePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
