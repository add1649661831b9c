package auth

import (
	"context"
	"strings"

	domuser "example.com/trendy-store/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Claims struct {
	UserID  int64
	Email   string
	Name    string
	IsAdmin bool
}

type TokenService interface {
	GenerateToken(u *domuser.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Service struct {
	users     domuser.Repository
	passwords PasswordHasher
	tokens    TokenService
}

func NewService(users domuser.Repository, passwords PasswordHasher, tokens TokenService) *Service {
	return &Service{users: users, passwords: passwords, tokens: tokens}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *domuser.User
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domuser.ErrInvalidCredential
	}
	if err := s.passwords.Compare(u.PasswordHash, in.Password); err != nil {
		return nil, domuser.ErrInvalidCredential
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domuser.ErrEmailAlreadyUsed
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &domuser.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}
