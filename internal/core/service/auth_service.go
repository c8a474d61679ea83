package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/secondbrain/bookmarks/internal/api/metrics"
	"github.com/secondbrain/bookmarks/internal/core/domain"
	"github.com/secondbrain/bookmarks/internal/core/ports"
)

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(id primitive.ObjectID, name string, ttl time.Duration) (string, error)
}

// AuthOptions holds the knobs of AuthService. Signup and login tokens have
// independent lifetimes; a zero LoginTTL issues tokens without expiry.
type AuthOptions struct {
	SignupTTL  time.Duration
	LoginTTL   time.Duration
	BcryptCost int
}

// AuthService implements signup and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens TokenIssuer
	opts   AuthOptions
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.UserRepository, tokens TokenIssuer, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		opts:   opts,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "duplicate_email").Inc()
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := s.now()
	user, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("signup", "duplicate_email").Inc()
			return nil, err
		}
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}

	tkn, err := s.tokens.Issue(user.ID, user.Name, s.opts.SignupTTL)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	s.log.Info().Str("user_id", user.ID.Hex()).Str("email", user.Email).Msg("user signed up")

	return &ports.AuthResult{Token: tkn, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "not_registered").Inc()
			return nil, err
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		s.log.Debug().Str("user_id", user.ID.Hex()).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.tokens.Issue(user.ID, user.Name, s.opts.LoginTTL)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	s.log.Info().Str("user_id", user.ID.Hex()).Msg("user logged in")

	return &ports.AuthResult{Token: tkn, User: user}, nil
}
