package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/abodeconnect/marketplace-api/internal/api/metrics"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

const (
	defaultSigninTTL    = 30 * 24 * time.Hour
	defaultFederatedTTL = 24 * time.Hour
)

// TokenClaims is the payload of a session token.
type TokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// AuthOptions tunes token lifetimes. Zero values fall back to defaults.
type AuthOptions struct {
	SigninTTL    time.Duration
	FederatedTTL time.Duration
}

// AuthService implements signup, signin and token verification.
type AuthService struct {
	repo         ports.UserRepository
	jwtSecret    []byte
	signinTTL    time.Duration
	federatedTTL time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, opts AuthOptions, logger zerolog.Logger) *AuthService {
	if opts.SigninTTL <= 0 {
		opts.SigninTTL = defaultSigninTTL
	}
	if opts.FederatedTTL <= 0 {
		opts.FederatedTTL = defaultFederatedTTL
	}
	return &AuthService{
		repo:         repo,
		jwtSecret:    []byte(jwtSecret),
		signinTTL:    opts.SigninTTL,
		federatedTTL: opts.FederatedTTL,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.Validation(domain.MsgMissingAuthFields)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "conflict").Inc()
		return nil, domain.Conflict(domain.MsgUserExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       domain.DefaultAvatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.AuthAttemptsTotal.WithLabelValues("signup", "conflict").Inc()
		}
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, nil
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.Validation(domain.MsgMissingAuthFields)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("signin", "not_found").Inc()
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signin", "wrong_password").Inc()
		return "", nil, domain.Unauthorized(domain.MsgWrongCredentials)
	}

	token, err := s.generateToken(user.ID, s.signinTTL)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signin", "success").Inc()
	return token, user, nil
}

func (s *AuthService) FederatedSignin(ctx context.Context, email, displayName, photoURL string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" || displayName == "" || photoURL == "" {
		return "", nil, domain.Validation("Missing required fields: email, name, or photo")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.createFederatedUser(ctx, email, displayName, photoURL)
		if err != nil {
			return "", nil, err
		}
	default:
		return "", nil, err
	}

	token, err := s.generateToken(user.ID, s.federatedTTL)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("federated", "success").Inc()
	return token, user, nil
}

func (s *AuthService) createFederatedUser(ctx context.Context, email, displayName, photoURL string) (*domain.User, error) {
	password, err := randomHex(16)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	suffix, err := randomBase36(4)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     derivedUsername(displayName) + suffix,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       photoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("federated user created")
	return created, nil
}

// Verify parses and validates a session token. An empty token is
// unauthorized; anything that fails parsing or has expired is forbidden.
func (s *AuthService) Verify(token string) (string, error) {
	if token == "" {
		return "", domain.Unauthorized(domain.MsgNoToken)
	}

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", domain.Forbidden(domain.MsgInvalidToken)
	}
	return claims.UserID, nil
}

func (s *AuthService) generateToken(userID string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

// derivedUsername lowercases a display name and strips its whitespace.
func derivedUsername(displayName string) string {
	return strings.ToLower(strings.Join(strings.Fields(displayName), ""))
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = base36[int(b[i])%len(base36)]
	}
	return string(b), nil
}
