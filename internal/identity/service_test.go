package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	ctx := context.Background()
	user, err := svc.Register(ctx, "Ada@Example.com", "valid-password")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Role != RoleUser {
		t.Fatalf("expected role %q, got %q", RoleUser, user.Role)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	authed, err := svc.Authenticate(ctx, "ada@example.com", "valid-password")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}
}

func TestAuthenticateUniformFailure(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "known@example.com", "valid-password"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Authenticate(ctx, "unknown@example.com", "valid-password")
	_, mismatchErr := svc.Authenticate(ctx, "known@example.com", "wrong-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(mismatchErr, ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", mismatchErr)
	}
	if unknownErr.Error() != mismatchErr.Error() {
		t.Fatalf("failure messages differ: %q vs %q", unknownErr, mismatchErr)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Register(context.Background(), "a@b.c", "short"); err == nil {
		t.Fatalf("expected short password rejection")
	}
}

func TestConcurrentAuthentications(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	emails := []string{"one@example.com", "two@example.com", "three@example.com", "four@example.com"}
	for _, email := range emails {
		if _, err := svc.Register(ctx, email, "valid-password"); err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(emails))
	for _, email := range emails {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			if _, err := svc.Authenticate(ctx, email, "valid-password"); err != nil {
				errs <- err
			}
		}(email)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent authenticate: %v", err)
	}
}
