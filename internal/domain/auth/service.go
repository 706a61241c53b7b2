package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is the login view of an employee record.
type Credentials struct {
	EmployeeID   string
	Email        string
	Role         string
	Status       string
	PasswordHash string
}

type CredentialStore interface {
	CredentialsByEmail(ctx context.Context, email string) (Credentials, error)
}

type Service struct {
	store  CredentialStore
	secret string
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(store CredentialStore, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, secret: secret, ttl: ttl, logger: logger.Named("auth")}
}

type LoginResult struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// Login checks the password against the stored bcrypt hash and issues a token.
// Resigned employees cannot sign in.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	creds, err := s.store.CredentialsByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		s.logger.Debug("credential lookup failed", zap.String("email", email), zap.Error(err))
		return LoginResult{}, ErrInvalidCredentials
	}
	if creds.PasswordHash == "" || CheckPassword(creds.PasswordHash, password) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if creds.Status == "Resigned" {
		return LoginResult{}, ErrInvalidCredentials
	}

	session := Session{EmployeeID: creds.EmployeeID, Email: creds.Email, Role: creds.Role}
	token, err := GenerateToken(s.secret, Claims{EmployeeID: creds.EmployeeID, Email: creds.Email, Role: creds.Role}, s.ttl)
	if err != nil {
		return LoginResult{}, err
	}
	s.logger.Info("login succeeded", zap.String("employee_id", creds.EmployeeID), zap.String("role", creds.Role))
	return LoginResult{Token: token, Session: session}, nil
}
