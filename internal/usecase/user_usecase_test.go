package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/usecase"
	"github.com/fintra/corebank/internal/usecase/mocks"
)

func TestUserUseCase_Register(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.RegisterInput
		setupMocks  func(*mocks.MockUserRepository)
		expectError bool
		errorType   error
	}{
		{
			name: "successful registration",
			input: usecase.RegisterInput{
				Email:     "alice@example.com",
				FirstName: "Alice",
				LastName:  "Smith",
				Password:  "correct-horse-battery",
			},
			setupMocks:  func(userRepo *mocks.MockUserRepository) {},
			expectError: false,
		},
		{
			name: "reject duplicate email",
			input: usecase.RegisterInput{
				Email:     "bob@example.com",
				FirstName: "Bob",
				LastName:  "Jones",
				Password:  "correct-horse-battery",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.Create(context.Background(), &domain.User{Email: "bob@example.com"})
			},
			expectError: true,
			errorType:   domain.ErrEmailAlreadyExists,
		},
		{
			name: "reject malformed email",
			input: usecase.RegisterInput{
				Email:     "not-an-email",
				FirstName: "Carol",
				LastName:  "White",
				Password:  "correct-horse-battery",
			},
			setupMocks:  func(userRepo *mocks.MockUserRepository) {},
			expectError: true,
			errorType:   domain.ErrInvalidEmail,
		},
		{
			name: "reject short password",
			input: usecase.RegisterInput{
				Email:     "dan@example.com",
				FirstName: "Dan",
				LastName:  "Brown",
				Password:  "short",
			},
			setupMocks:  func(userRepo *mocks.MockUserRepository) {},
			expectError: true,
			errorType:   domain.ErrPasswordTooWeak,
		},
		{
			name: "reject empty first name",
			input: usecase.RegisterInput{
				Email:     "eve@example.com",
				FirstName: "",
				LastName:  "Black",
				Password:  "correct-horse-battery",
			},
			setupMocks:  func(userRepo *mocks.MockUserRepository) {},
			expectError: true,
			errorType:   domain.ErrInvalidName,
		},
		{
			name: "storage failure is masked",
			input: usecase.RegisterInput{
				Email:     "frank@example.com",
				FirstName: "Frank",
				LastName:  "Green",
				Password:  "correct-horse-battery",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return nil, errors.New("connection reset")
				}
			},
			expectError: true,
			errorType:   domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)

			uc := usecase.NewUserUseCase(userRepo, nil, zerolog.Nop())
			user, err := uc.Register(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if user == nil {
					t.Fatal("expected user, got nil")
				}
				if user.ID == 0 {
					t.Error("expected user ID to be populated")
				}
				if user.HashedPassword != "" {
					t.Error("expected hashed password to be cleared from the result")
				}
			}
		})
	}
}

func TestUserUseCase_Register_HashesPassword(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(userRepo, nil, zerolog.Nop())

	const password = "correct-horse-battery"

	if _, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  password,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := userRepo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil || stored == nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.HashedPassword == password {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte(password)); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(userRepo, nil, zerolog.Nop())

	if _, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "correct-horse-battery",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), "alice@example.com", "correct-horse-battery")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected alice@example.com, got %s", user.Email)
		}
		if user.HashedPassword != "" {
			t.Error("expected hashed password to be cleared")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), "alice@example.com", "wrong-password")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), "nobody@example.com", "correct-horse-battery")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestUserUseCase_GetDetails(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.GetDetailsFunc = func(ctx context.Context, userID int64) (*domain.UserDetails, error) {
		if userID != 1 {
			return nil, domain.ErrUserNotFound
		}
		return &domain.UserDetails{
			UserID:    1,
			Email:     "alice@example.com",
			FirstName: "Alice",
			LastName:  "Smith",
			AccountID: 10,
			Balance:   decimal.NewFromInt(250),
		}, nil
	}

	uc := usecase.NewUserUseCase(userRepo, nil, zerolog.Nop())

	details, err := uc.GetDetails(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.AccountID != 10 || !details.Balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("unexpected details: account=%d balance=%s", details.AccountID, details.Balance)
	}

	_, err = uc.GetDetails(context.Background(), 2)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
