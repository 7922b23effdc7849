// Package service contains account and token workflows.
//
// Refresh tokens rotate on every use: the stored hash is consumed
// atomically, a new pair is issued, and presenting an already rotated
// token is a hard unauthorized, never silently accepted.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"cliptube/internal/modkit/repokit"
	perr "cliptube/internal/platform/errors"
	"cliptube/internal/services/api/auth/domain"
	"cliptube/internal/services/api/auth/repo"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Config carries token signing and lifetime settings
type Config struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Service defines the service contract for auth
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
	now    func() time.Time
	newID  func() string
}

// New creates a new auth service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	if len(cfg.Secret) == 0 {
		panic("auth.Service requires a signing secret")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		cfg:    cfg,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

func toUser(r repo.UserRow) domain.User {
	return domain.User{ID: r.ID, Username: r.Username, Email: r.Email, CreatedAt: r.CreatedAt}
}

// Register creates an account; a taken username or email surfaces as a
// conflict with the offending field attached
func (s *Svc) Register(ctx context.Context, in domain.RegisterInput) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, perr.Wrap(err, perr.ErrorCodeUnknown, "password hash failed")
	}

	row := repo.UserRow{
		ID:           s.newID(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.Repo.InsertUser(ctx, row); err != nil {
		return domain.User{}, err
	}
	return toUser(row), nil
}

// Login verifies credentials and issues a fresh token pair.
// Unknown user and wrong password produce the same error.
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.TokenPair, error) {
	u, err := s.Repo.UserByUsername(ctx, in.Username)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.TokenPair{}, perr.Unauthorizedf("invalid credentials")
	}
	if err != nil {
		return domain.TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return domain.TokenPair{}, perr.Unauthorizedf("invalid credentials")
	}
	return s.issuePair(ctx, u.ID)
}

// Refresh consumes the presented refresh token and rotates the pair.
// A token that was never issued, already rotated, or expired fails hard.
func (s *Svc) Refresh(ctx context.Context, in domain.RefreshInput) (domain.TokenPair, error) {
	userID, expiresAt, ok, err := s.Repo.ConsumeRefresh(ctx, hashToken(in.RefreshToken))
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !ok {
		return domain.TokenPair{}, perr.Unauthorizedf("refresh token invalid or already used")
	}
	if s.now().After(expiresAt) {
		return domain.TokenPair{}, perr.Unauthorizedf("refresh token expired")
	}
	return s.issuePair(ctx, userID)
}

// Logout revokes the presented refresh token. Revoking an unknown token is
// not an error; the caller ends up logged out either way.
func (s *Svc) Logout(ctx context.Context, in domain.RefreshInput) error {
	_, _, _, err := s.Repo.ConsumeRefresh(ctx, hashToken(in.RefreshToken))
	return err
}

// Me returns the caller's account
func (s *Svc) Me(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	return toUser(u), nil
}

// ParseAccess verifies an access token and returns the user id it carries.
// Shaped as a httpkit.TokenFunc for the auth middleware port.
func (s *Svc) ParseAccess(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, perr.Unauthorizedf("unexpected signing method")
		}
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return "", perr.Unauthorizedf("invalid access token")
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", perr.Unauthorizedf("invalid access token")
	}
	return sub, nil
}

func (s *Svc) issuePair(ctx context.Context, userID string) (domain.TokenPair, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return domain.TokenPair{}, perr.Wrap(err, perr.ErrorCodeUnknown, "access token sign failed")
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.Repo.InsertRefresh(ctx, hashToken(refresh), userID, now.Add(s.cfg.RefreshTTL)); err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// newRefreshToken returns 32 bytes of entropy, hex encoded.
// Only its sha256 hash is ever stored.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "refresh token generation failed")
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
