package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/FANATBEBRbl/booking-app/internal/lib/jwt"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrEmptyCredentials   = errors.New("email and password are required")
)

type Auth struct {
	log         *slog.Logger
	usrSaver    UserSaver
	usrProvider UserProvider
	admins      AdminPolicy
	secret      string
	tokenTTL    time.Duration
	uniqueEmail bool
	now         func() time.Time
}

type UserSaver interface {
	SaveUser(
		ctx context.Context,
		email string,
		name string,
		passHash []byte,
		uniqueEmail bool,
	) (uid int64, err error)
}

type UserProvider interface {
	User(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, userID int64) (models.User, error)
}

type Options struct {
	Secret               string
	TokenTTL             time.Duration
	AdminEmails          []string
	AllowDuplicateEmails bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// * New returns a new instance of the Auth service
func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	opts Options,
) *Auth {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Auth{
		log:         log,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		admins:      NewAdminPolicy(opts.AdminEmails),
		secret:      opts.Secret,
		tokenTTL:    opts.TokenTTL,
		uniqueEmail: !opts.AllowDuplicateEmails,
		now:         now,
	}
}

// * Login checks if user with given credentials exists in the system.
// * If user doesn't exist, returns ErrUserNotFound.
// * If user exists, but password is incorrect, returns ErrInvalidCredentials.
func (a *Auth) Login(
	ctx context.Context,
	email string,
	password string,
) (string, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Info("attempting to login user")

	user, err := a.usrProvider.User(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")

			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		log.Error("failed to get user", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(user.ID, a.secret, a.tokenTTL, a.now())
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully", slog.Int64("user_id", user.ID))

	return token, nil
}

// * RegisterNewUser registers new user in the system and returns user ID.
// * If email uniqueness is enforced and the email is taken, returns ErrUserExists.
func (a *Auth) RegisterNewUser(
	ctx context.Context,
	email string,
	password string,
	name string,
) (int64, error) {
	const op = "auth.RegisterNewUser"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Info("registering new user")

	if strings.TrimSpace(email) == "" || password == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyCredentials)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.usrSaver.SaveUser(ctx, email, name, passHash, a.uniqueEmail)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists")

			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		log.Error("failed to save user", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int64("user_id", id))

	return id, nil
}

// Identify resolves a session token to the calling user. Admin status is
// derived from the stored email on every call, never from the token.
func (a *Auth) Identify(ctx context.Context, token string) (models.Caller, error) {
	const op = "auth.Identify"

	userID, err := jwt.ParseUserID(token, a.secret, a.now)
	if err != nil {
		return models.Caller{}, fmt.Errorf("%s: %w: %v", op, ErrUnauthenticated, err)
	}

	user, err := a.usrProvider.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.Caller{}, fmt.Errorf("%s: %w: unknown user %d", op, ErrUnauthenticated, userID)
		}

		return models.Caller{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Caller{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: a.admins.IsAdmin(user.Email),
	}, nil
}

func (a *Auth) GetUser(
	ctx context.Context,
	userID int64,
) (models.User, error) {
	const op = "auth.GetUser"

	user, err := a.usrProvider.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// * IsAdmin checks if user is admin.
func (a *Auth) IsAdmin(
	ctx context.Context,
	userID int64,
) (bool, error) {
	const op = "auth.IsAdmin"

	log := a.log.With(
		slog.String("op", op),
	)

	user, err := a.GetUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	isAdmin := a.admins.IsAdmin(user.Email)

	log.Debug("checked if user is admin", slog.Bool("is_admin", isAdmin))

	return isAdmin, nil
}
