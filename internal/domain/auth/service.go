package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
)

// Service issues and validates employee bearer tokens.
type Service interface {
	Issue(ctx context.Context, req IssueRequest) (Token, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
}

type service struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a Service instance.
func NewService(cfg Config, logger *slog.Logger) Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &service{
		cfg:    cfg,
		logger: logger.With("component", "auth.service"),
		now:    time.Now,
	}
}

func (s *service) Issue(_ context.Context, req IssueRequest) (Token, error) {
	if req.EmployeeID <= 0 {
		return Token{}, apperrors.Wrap("invalid_input", "employee id must be positive", nil)
	}
	if strings.TrimSpace(s.cfg.Secret) == "" {
		return Token{}, apperrors.Wrap("auth_error", "token secret is not configured", nil)
	}
	now := s.now()
	expires := now.Add(s.cfg.TokenTTL)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   strconv.FormatInt(req.EmployeeID, 10),
			ID:        newTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		EmployeeID: req.EmployeeID,
		Email:      strings.TrimSpace(strings.ToLower(req.Email)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return Token{}, apperrors.Wrap("auth_error", "failed to sign token", err)
	}
	s.logger.Info("token issued", "employeeId", req.EmployeeID, "expiresAt", expires)
	return Token{Token: signed, ExpiresAt: expires}, nil
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap("invalid_token", "token cannot be empty", nil)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap("invalid_token", "token invalid", nil)
	}
	if claims.EmployeeID <= 0 {
		return Claims{}, apperrors.Wrap("invalid_token", "token missing employee id", nil)
	}
	return Claims{
		EmployeeID: claims.EmployeeID,
		Email:      claims.Email,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
	EmployeeID int64  `json:"employeeId"`
	Email      string `json:"email,omitempty"`
}

func newTokenID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}
