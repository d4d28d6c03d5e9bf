package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/infrastructure/metrics"
)

// UserUseCase handles registration, authentication, and user details.
type UserUseCase struct {
	userRepo UserRepository
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, metrics *metrics.Metrics, logger zerolog.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register creates a new user with a bcrypt-hashed password.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.FirstName); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.LastName); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		uc.logger.Error().Err(err).Msg("user lookup failed")
		return nil, domain.ErrStorage
	}

	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.ErrEmailAlreadyExists
		}

		uc.logger.Error().Err(err).Msg("user insert failed")

		return nil, domain.ErrStorage
	}

	user.HashedPassword = ""

	return user, nil
}

// Authenticate verifies credentials and returns the user on success.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Error().Err(err).Msg("user lookup failed")
		return nil, domain.ErrStorage
	}

	if user == nil {
		uc.recordAuthAttempt("failure")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		uc.recordAuthAttempt("failure")
		return nil, domain.ErrInvalidCredentials
	}

	user.HashedPassword = ""

	uc.recordAuthAttempt("success")

	return user, nil
}

func (uc *UserUseCase) recordAuthAttempt(status string) {
	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues(status).Inc()
	}
}

// GetDetails returns a user's details joined with their account balance.
func (uc *UserUseCase) GetDetails(ctx context.Context, userID int64) (*domain.UserDetails, error) {
	details, err := uc.userRepo.GetDetails(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}

		uc.logger.Error().Err(err).Int64("user_id", userID).Msg("user details lookup failed")

		return nil, domain.ErrStorage
	}

	return details, nil
}
