package service

import (
	"context"
	"errors"

	"github.com/engivid/engivid-backend/internal/model"
	"github.com/engivid/engivid-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// ErrUsernameTaken is returned when registration hits the username unique constraint.
var ErrUsernameTaken = errors.New("username already taken")

// AccountService handles user account lookup and registration.
type AccountService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repository.UserRepository, log zerolog.Logger) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		log:      log.With().Str("component", "account_service").Logger(),
	}
}

func (s *AccountService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AccountService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// Register creates a new account with an already-hashed password.
// Type defaults to student when empty.
func (s *AccountService) Register(ctx context.Context, username, passwordHash string, userType model.UserType) (*model.User, error) {
	if userType == "" {
		userType = model.UserTypeStudent
	}

	user := &model.User{
		Username:     username,
		PasswordHash: passwordHash,
		Type:         userType,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Str("type", string(user.Type)).Msg("Account registered")
	return user, nil
}
