// Package auth issues and verifies the bearer tokens used by the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/config"
	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service"
	"github.com/bwc/pos/internal/service/users"
)

// TokenType is the scheme returned with every token.
const TokenType = "Bearer"

// Claims is the JWT payload.
type Claims struct {
	UserID   int64         `json:"id"`
	Username string        `json:"username"`
	Roles    []models.Role `json:"roles"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	UserID   int64
	Username string
	Roles    []models.Role
}

// HasAnyRole reports whether the principal holds one of roles.
func (p Principal) HasAnyRole(roles ...models.Role) bool {
	return models.User{Roles: p.Roles}.HasAnyRole(roles...)
}

// Service signs users in and out of the API.
type Service struct {
	users  *users.Service
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new auth service.
func NewService(userSvc *users.Service, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:  userSvc,
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
		issuer: cfg.JWTIssuer,
		now:    time.Now,
		logger: logger,
	}
}

// Signin checks the credentials and returns a signed token.
func (s *Service) Signin(ctx context.Context, req models.LoginRequest) (models.JwtResponse, error) {
	user, err := s.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			s.logger.Info("rejected sign in", zap.String("username", req.Username))
		}
		return models.JwtResponse{}, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.JwtResponse{}, err
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r))
	}

	return models.JwtResponse{
		Token:    token,
		Type:     TokenType,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	}, nil
}

// Signup registers a user through the user service.
func (s *Service) Signup(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	return s.users.Create(ctx, req)
}

// IssueToken signs an HS256 token for user.
func (s *Service) IssueToken(user models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and returns its principal.
func (s *Service) ParseToken(tokenString string) (Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return Principal{}, fmt.Errorf("invalid token: %v: %w", err, service.ErrUnauthorized)
	}

	return Principal{UserID: claims.UserID, Username: claims.Username, Roles: claims.Roles}, nil
}
