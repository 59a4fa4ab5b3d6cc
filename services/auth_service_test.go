package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matchday-app/championship-engine/docstore"
	"github.com/matchday-app/championship-engine/repositories"
	"github.com/matchday-app/championship-engine/services"
)

func newAuthService() services.AuthService {
	store := docstore.NewMemoryStore()
	return services.NewAuthService(repositories.NewDocstoreUserRepository(store))
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService()
	ctx := context.Background()

	user, err := auth.Register(ctx, services.RegisterInput{
		Name:     "Ana",
		Email:    "  Ana@Example.COM ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", user.Email)
	}
	if user.PasswordHash != "" {
		t.Error("Register leaked the password hash")
	}

	loggedIn, err := auth.Login(ctx, services.LoginInput{
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login returned user %s, want %s", loggedIn.ID, user.ID)
	}
	if loggedIn.PasswordHash != "" {
		t.Error("Login leaked the password hash")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	auth := newAuthService()

	_, err := auth.Register(context.Background(), services.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "short",
	})
	if !errors.Is(err, services.ErrPasswordTooShort) {
		t.Errorf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth := newAuthService()
	ctx := context.Background()

	input := services.RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "correct-horse"}
	if _, err := auth.Register(ctx, input); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := auth.Register(ctx, input); !errors.Is(err, services.ErrAuthEmailTaken) {
		t.Errorf("second Register: err = %v, want ErrAuthEmailTaken", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newAuthService()
	ctx := context.Background()

	if _, err := auth.Register(ctx, services.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "correct-horse",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []struct {
		name  string
		input services.LoginInput
	}{
		{"wrong password", services.LoginInput{Email: "ana@example.com", Password: "wrong-horse"}},
		{"unknown email", services.LoginInput{Email: "nobody@example.com", Password: "correct-horse"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := auth.Login(ctx, tc.input); !errors.Is(err, services.ErrAuthInvalidCredentials) {
				t.Errorf("Login: err = %v, want ErrAuthInvalidCredentials", err)
			}
		})
	}
}
