package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/qrcontacts/internal/client/auth"
	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/users"
	"github.com/dmitrijs2005/qrcontacts/internal/cryptox"
	"github.com/dmitrijs2005/qrcontacts/internal/logging"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmptyPassword      = errors.New("password must not be empty")
)

const DefaultSessionTTL = 30 * 24 * time.Hour

// AuthService manages local accounts and the persisted session.
//
// Contract:
//   - Register: create an account and sign it in.
//   - Login: verify credentials and persist a session token.
//   - Current: resolve the persisted session, if any and still valid.
//   - Logout: forget the persisted session. Cached records stay on disk.
type AuthService interface {
	Register(ctx context.Context, email, name string, password []byte) (auth.Identity, error)
	Login(ctx context.Context, email string, password []byte) (auth.Identity, error)
	Current(ctx context.Context) (auth.Identity, bool)
	Logout(ctx context.Context) error
}

type authService struct {
	users  users.Repository
	store  *cache.Store
	secret []byte
	ttl    time.Duration
	log    logging.Logger
}

// NewAuthService binds the service to an account repository and the
// unscoped cache store that holds the session token.
func NewAuthService(repo users.Repository, store *cache.Store, secret []byte, ttl time.Duration, log logging.Logger) AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &authService{users: repo, store: store, secret: secret, ttl: ttl, log: log}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

// Register derives a salted verifier from password, stores the account and
// signs it in.
func (a *authService) Register(ctx context.Context, email, name string, password []byte) (auth.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return auth.Identity{}, err
	}
	if len(password) == 0 {
		return auth.Identity{}, ErrEmptyPassword
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return auth.Identity{}, fmt.Errorf("generate salt: %w", err)
	}

	u := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     strings.TrimSpace(name),
		Salt:     salt,
		Verifier: cryptox.NewVerifier(password, salt),
	}
	if err := a.users.Insert(ctx, u); err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			return auth.Identity{}, ErrUserExists
		}
		return auth.Identity{}, fmt.Errorf("save user: %w", err)
	}

	a.log.Info(ctx, "user registered", "user", u.ID)
	return a.startSession(ctx, u)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (auth.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return auth.Identity{}, ErrInvalidCredentials
	}

	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return auth.Identity{}, ErrInvalidCredentials
		}
		return auth.Identity{}, fmt.Errorf("find user: %w", err)
	}

	if !cryptox.CheckPassword(password, u.Salt, u.Verifier) {
		return auth.Identity{}, ErrInvalidCredentials
	}
	return a.startSession(ctx, u)
}

func (a *authService) startSession(ctx context.Context, u models.User) (auth.Identity, error) {
	id := auth.Identity{UserID: u.ID, Email: u.Email, Name: u.Name}

	token, err := auth.GenerateToken(id, a.secret, a.ttl)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("issue session: %w", err)
	}
	if err := a.store.Write(ctx, cache.KindSession, token); err != nil {
		return auth.Identity{}, fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// Current returns the signed-in identity. An expired or tampered token is
// discarded.
func (a *authService) Current(ctx context.Context) (auth.Identity, bool) {
	token, ok := cache.Read[string](ctx, a.store, cache.KindSession, nil)
	if !ok || token == "" {
		return auth.Identity{}, false
	}

	id, err := auth.ParseToken(token, a.secret)
	if err != nil {
		a.log.Warn(ctx, "discarding stored session", "err", err)
		if err := a.store.Remove(ctx, cache.KindSession); err != nil {
			a.log.Error(ctx, "failed to remove session", "err", err)
		}
		return auth.Identity{}, false
	}
	return id, true
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Remove(ctx, cache.KindSession)
}
