package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/FANATBEBRbl/booking-app/internal/lib/jwt"
	"github.com/FANATBEBRbl/booking-app/internal/storage/memory"
)

const testSecret = "secret-key"

func newTestAuth(t *testing.T, opts Options) *Auth {
	t.Helper()

	if opts.Secret == "" {
		opts.Secret = testSecret
	}
	if opts.AdminEmails == nil {
		opts.AdminEmails = []string{"admin@admin"}
	}

	repo := memory.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(log, repo, repo, opts)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	a := newTestAuth(t, Options{TokenTTL: time.Hour})

	id, err := a.RegisterNewUser(ctx, "user@example.com", "pa55word", "User")
	if err != nil {
		t.Fatalf("RegisterNewUser: %v", err)
	}

	token, err := a.Login(ctx, "user@example.com", "pa55word")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	got, err := jwt.ParseUserID(token, testSecret, nil)
	if err != nil {
		t.Fatalf("ParseUserID: %v", err)
	}
	if got != id {
		t.Fatalf("token userId = %d, want %d", got, id)
	}
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	a := newTestAuth(t, Options{})

	if _, err := a.RegisterNewUser(ctx, "user@example.com", "right", "User"); err != nil {
		t.Fatalf("RegisterNewUser: %v", err)
	}

	if _, err := a.Login(ctx, "nobody@example.com", "right"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown email error = %v, want ErrUserNotFound", err)
	}
	if _, err := a.Login(ctx, "user@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Login(ctx, "User@example.com", "right"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("email lookup must be case-sensitive, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("strict", func(t *testing.T) {
		a := newTestAuth(t, Options{})

		if _, err := a.RegisterNewUser(ctx, "dup@example.com", "p1", "A"); err != nil {
			t.Fatalf("RegisterNewUser: %v", err)
		}
		if _, err := a.RegisterNewUser(ctx, "dup@example.com", "p2", "B"); !errors.Is(err, ErrUserExists) {
			t.Fatalf("duplicate error = %v, want ErrUserExists", err)
		}
	})

	t.Run("allowed", func(t *testing.T) {
		a := newTestAuth(t, Options{AllowDuplicateEmails: true})

		first, err := a.RegisterNewUser(ctx, "dup@example.com", "p1", "A")
		if err != nil {
			t.Fatalf("RegisterNewUser: %v", err)
		}
		if _, err := a.RegisterNewUser(ctx, "dup@example.com", "p2", "B"); err != nil {
			t.Fatalf("duplicate RegisterNewUser: %v", err)
		}

		token, err := a.Login(ctx, "dup@example.com", "p1")
		if err != nil {
			t.Fatalf("Login as earliest user: %v", err)
		}
		if id, _ := jwt.ParseUserID(token, testSecret, nil); id != first {
			t.Fatalf("logged in as %d, want earliest %d", id, first)
		}
	})
}

func TestRegisterRequiresCredentials(t *testing.T) {
	a := newTestAuth(t, Options{})

	if _, err := a.RegisterNewUser(context.Background(), " ", "x", "n"); !errors.Is(err, ErrEmptyCredentials) {
		t.Errorf("empty email error = %v", err)
	}
	if _, err := a.RegisterNewUser(context.Background(), "a@b", "", "n"); !errors.Is(err, ErrEmptyCredentials) {
		t.Errorf("empty password error = %v", err)
	}
}

func TestIdentify(t *testing.T) {
	ctx := context.Background()
	a := newTestAuth(t, Options{TokenTTL: time.Hour, AdminEmails: []string{"boss@corp"}})

	adminID, _ := a.RegisterNewUser(ctx, "boss@corp", "p", "Boss")
	userID, _ := a.RegisterNewUser(ctx, "admin@admin", "p", "Not an admin here")

	adminToken, err := a.Login(ctx, "boss@corp", "p")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	userToken, err := a.Login(ctx, "admin@admin", "p")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	caller, err := a.Identify(ctx, adminToken)
	if err != nil {
		t.Fatalf("Identify admin: %v", err)
	}
	if caller.UserID != adminID || !caller.IsAdmin {
		t.Fatalf("admin caller = %+v", caller)
	}

	caller, err = a.Identify(ctx, userToken)
	if err != nil {
		t.Fatalf("Identify user: %v", err)
	}
	if caller.UserID != userID || caller.IsAdmin {
		t.Fatalf("user caller = %+v, admin list is injected", caller)
	}

	ghost, err := jwt.NewToken(999, testSecret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	for name, token := range map[string]string{
		"garbage":      "abc",
		"unknown user": ghost,
		"empty":        "",
	} {
		if _, err := a.Identify(ctx, token); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("%s: Identify error = %v, want ErrUnauthenticated", name, err)
		}
	}
}

func TestIdentifyRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	a := newTestAuth(t, Options{TokenTTL: time.Hour, Now: func() time.Time { return clock }})

	if _, err := a.RegisterNewUser(ctx, "u@x", "p", "U"); err != nil {
		t.Fatalf("RegisterNewUser: %v", err)
	}

	token, err := a.Login(ctx, "u@x", "p")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// expiry follows the injected clock, not the wall clock
	clock = clock.Add(59 * time.Minute)
	if _, err := a.Identify(ctx, token); err != nil {
		t.Fatalf("Identify before expiry: %v", err)
	}

	clock = clock.Add(2 * time.Minute)
	if _, err := a.Identify(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Identify expired error = %v, want ErrUnauthenticated", err)
	}
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()
	a := newTestAuth(t, Options{})

	adminID, _ := a.RegisterNewUser(ctx, "admin@admin", "p", "Admin")
	userID, _ := a.RegisterNewUser(ctx, "user@x", "p", "User")

	if ok, err := a.IsAdmin(ctx, adminID); err != nil || !ok {
		t.Errorf("IsAdmin(admin) = %v, %v", ok, err)
	}
	if ok, err := a.IsAdmin(ctx, userID); err != nil || ok {
		t.Errorf("IsAdmin(user) = %v, %v", ok, err)
	}
	if _, err := a.IsAdmin(ctx, 12345); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("IsAdmin(unknown) error = %v, want ErrUserNotFound", err)
	}
}
