package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service authenticates the gallery's administrators. The public site
// needs no accounts at all; only the admin role may hold a token.
type Service struct {
	users Repository
	jwt   tokenIssuer
}

func NewService(users Repository, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

type LoginResult struct {
	User  *User
	Token string
}

// Login verifies the credentials and issues a JWT. Non-admin users are
// rejected even with a correct password.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role != RoleAdmin {
		return nil, ErrNotAdmin
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, Token: token}, nil
}

// CreateUser registers a user with a freshly hashed password. Used by
// the seed command.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
