package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/movie-catalog/internal/apperr"
	"github.com/iliyamo/movie-catalog/internal/auth"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/validator"
)

// AccountService implements registration, login and the currentUser lookup.
type AccountService struct {
	users      UserStore
	secret     string
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAccountService(users UserStore, secret string, tokenTTL time.Duration, bcryptCost int) *AccountService {
	return &AccountService{users: users, secret: secret, tokenTTL: tokenTTL, bcryptCost: bcryptCost}
}

// Register creates an account and returns it together with a fresh token.
// Both the username and the email are checked for collisions so whichever one
// is taken surfaces as a conflict.
func (s *AccountService) Register(ctx context.Context, in validator.RegisterInput) (model.User, string, error) {
	if errs, ok := validator.ValidateRegister(in); !ok {
		return model.User{}, "", apperr.InvalidInput("registration input errors", errs)
	}

	username := strings.TrimSpace(in.Username)
	if taken, err := s.users.UsernameTaken(ctx, username); err != nil {
		return model.User{}, "", apperr.Internal("lookup failed")
	} else if taken {
		return model.User{}, "", apperr.Conflict("username already used")
	}
	if taken, err := s.users.EmailTaken(ctx, in.Email); err != nil {
		return model.User{}, "", apperr.Internal("lookup failed")
	} else if taken {
		return model.User{}, "", apperr.Conflict("email already used")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return model.User{}, "", apperr.Internal("hash password failed")
	}
	u, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// A concurrent registration can still win the race to the unique index.
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return model.User{}, "", apperr.Conflict("username already used")
		case errors.Is(err, repository.ErrEmailExists):
			return model.User{}, "", apperr.Conflict("email already used")
		}
		return model.User{}, "", apperr.Internal("create user failed")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return model.User{}, "", apperr.Internal("issue token failed")
	}
	return u, token, nil
}

// Login verifies credentials and returns the account with a fresh token. An
// unknown username and a wrong password produce the same message so account
// existence does not leak.
func (s *AccountService) Login(ctx context.Context, in validator.LoginInput) (model.User, string, error) {
	if errs, ok := validator.ValidateLogin(in); !ok {
		return model.User{}, "", apperr.InvalidInput("login input errors", errs)
	}

	badCredentials := apperr.InvalidInput("username or password is incorrect",
		map[string]string{"general": "username or password is incorrect"})

	u, err := s.users.GetByUsername(ctx, in.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, "", badCredentials
	}
	if err != nil {
		return model.User{}, "", apperr.Internal("lookup failed")
	}
	if !auth.VerifyPassword(u.PasswordHash, in.Password) {
		return model.User{}, "", badCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return model.User{}, "", apperr.Internal("issue token failed")
	}
	return u, token, nil
}

// CurrentUser resolves the authenticated identity back to its account,
// confirming it still exists.
func (s *AccountService) CurrentUser(ctx context.Context, id auth.Identity) (model.User, error) {
	u, err := s.users.GetByID(ctx, id.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, apperr.Unauthenticated("not authenticated")
	}
	if err != nil {
		return model.User{}, apperr.Internal("lookup failed")
	}
	return u, nil
}

func (s *AccountService) issueToken(u model.User) (string, error) {
	return auth.NewAccessToken(s.secret, auth.Identity{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	}, s.tokenTTL)
}
