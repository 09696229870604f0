package usecase_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/akarpov/walletsvc/internal/identity/domain"
	"github.com/akarpov/walletsvc/internal/identity/usecase"
)

type stubUserRepo struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
	deleteFn     func(ctx context.Context, id string) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubIDGen struct{ id string }

func (s *stubIDGen) Generate() string { return s.id }

func TestUserUseCase_Register_Success(t *testing.T) {
	t.Parallel()

	var stored *domain.User
	repo := &stubUserRepo{
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return nil, nil
		},
		createFn: func(_ context.Context, user *domain.User) error {
			if user.HashedPassword == "" {
				t.Fatal("expected user to be persisted with hashed password")
			}
			copied := *user
			stored = &copied
			return nil
		},
	}

	uc := usecase.NewUserUseCase(repo, &stubIDGen{id: "user-1"})

	user, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "StrongPass1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected user to be stored")
	}
	if stored.ID != "user-1" {
		t.Fatalf("expected generated ID, got %s", stored.ID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("StrongPass1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.HashedPassword != "" {
		t.Fatal("expected returned user to hide hashed password")
	}
	if !stored.CreatedAt.Equal(stored.UpdatedAt) {
		t.Fatal("expected CreatedAt and UpdatedAt to match on registration")
	}
}

func TestUserUseCase_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	uc := usecase.NewUserUseCase(&stubUserRepo{}, &stubIDGen{id: "user-1"})

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "invalid-email",
		Password: "StrongPass1",
	})
	if !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	_, err = uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "weak",
	})
	if !errors.Is(err, domain.ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
}

func TestUserUseCase_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: "existing"}, nil
		},
	}

	uc := usecase.NewUserUseCase(repo, &stubIDGen{id: "user-1"})

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "StrongPass1",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	known := &domain.User{
		ID:             "user-1",
		Email:          "alice@example.com",
		HashedPassword: string(hashed),
	}

	repo := &stubUserRepo{
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			copied := *known
			return &copied, nil
		},
	}

	uc := usecase.NewUserUseCase(repo, &stubIDGen{})

	user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "alice@example.com",
		Password: "StrongPass1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID != known.ID {
		t.Fatalf("expected user ID %s, got %s", known.ID, user.ID)
	}
	if user.HashedPassword != "" {
		t.Fatal("expected returned user to hide hashed password")
	}
}

func TestUserUseCase_AuthenticateErrors(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	tests := []struct {
		name     string
		repo     *stubUserRepo
		password string
	}{
		{
			name: "unknown email",
			repo: &stubUserRepo{
				getByEmailFn: func(context.Context, string) (*domain.User, error) {
					return nil, nil
				},
			},
			password: "StrongPass1",
		},
		{
			name: "wrong password",
			repo: &stubUserRepo{
				getByEmailFn: func(context.Context, string) (*domain.User, error) {
					return &domain.User{ID: "user-1", HashedPassword: string(hashed)}, nil
				},
			},
			password: "WrongPass1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewUserUseCase(tt.repo, &stubIDGen{})

			_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
				Email:    "alice@example.com",
				Password: tt.password,
			})
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestUserUseCase_UpdateUser(t *testing.T) {
	t.Parallel()

	existing := &domain.User{
		ID:        "user-1",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	var updated *domain.User
	repo := &stubUserRepo{
		getByIDFn: func(context.Context, string) (*domain.User, error) {
			copied := *existing
			return &copied, nil
		},
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, user *domain.User) error {
			copied := *user
			updated = &copied
			return nil
		},
	}

	uc := usecase.NewUserUseCase(repo, &stubIDGen{})

	newEmail := "alice.new@example.com"
	newFirst := "Alicia"
	user, err := uc.UpdateUser(context.Background(), usecase.UpdateUserInput{
		ID:        "user-1",
		Email:     &newEmail,
		FirstName: &newFirst,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("expected user to be updated")
	}
	if updated.Email != newEmail {
		t.Fatalf("expected email %s, got %s", newEmail, updated.Email)
	}
	if updated.FirstName != newFirst {
		t.Fatalf("expected first name %s, got %s", newFirst, updated.FirstName)
	}
	if updated.LastName != "Smith" {
		t.Fatalf("expected last name to be unchanged, got %s", updated.LastName)
	}
	if user.HashedPassword != "" {
		t.Fatal("expected returned user to hide hashed password")
	}
}

func TestUserUseCase_UpdateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{
		getByIDFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: "alice@example.com"}, nil
		},
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: "user-2"}, nil
		},
	}

	uc := usecase.NewUserUseCase(repo, &stubIDGen{})

	taken := "bob@example.com"
	_, err := uc.UpdateUser(context.Background(), usecase.UpdateUserInput{
		ID:    "user-1",
		Email: &taken,
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserUseCase_Exists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repo    *stubUserRepo
		want    bool
		wantErr bool
	}{
		{
			name: "user exists",
			repo: &stubUserRepo{
				getByIDFn: func(context.Context, string) (*domain.User, error) {
					return &domain.User{ID: "user-1"}, nil
				},
			},
			want: true,
		},
		{
			name: "user not found",
			repo: &stubUserRepo{
				getByIDFn: func(context.Context, string) (*domain.User, error) {
					return nil, domain.ErrUserNotFound
				},
			},
			want: false,
		},
		{
			name: "storage error",
			repo: &stubUserRepo{
				getByIDFn: func(context.Context, string) (*domain.User, error) {
					return nil, domain.ErrStorage
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewUserUseCase(tt.repo, &stubIDGen{})

			exists, err := uc.Exists(context.Background(), "user-1")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exists != tt.want {
				t.Fatalf("expected exists=%v, got %v", tt.want, exists)
			}
		})
	}
}
