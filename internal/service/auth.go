package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/leads-enricher/internal/auth"
	"github.com/octobees/leads-enricher/internal/config"
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// OperatorRole is the role carried by operator tokens.
const OperatorRole = "operator"

// AuthService validates the operator's credentials and issues tokens.
type AuthService struct {
	operator config.OperatorConfig
	jwt      *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(operator config.OperatorConfig, jwtManager *auth.JWTManager) *AuthService {
	operator.Email = strings.ToLower(strings.TrimSpace(operator.Email))
	return &AuthService{operator: operator, jwt: jwtManager}
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(_ context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("email and password must not be empty")
	}
	if s.operator.Email == "" || s.operator.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if strings.ToLower(strings.TrimSpace(email)) != s.operator.Email {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.operator.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(OperatorRole, s.operator.Email, OperatorRole)
}

// IssueToken creates an operator token for subject without a password,
// for trusted local tooling.
func (s *AuthService) IssueToken(subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", errors.New("subject must not be empty")
	}
	return s.jwt.GenerateToken(subject, s.operator.Email, OperatorRole)
}
