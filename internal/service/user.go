package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/repo"
)

type User struct {
	UserRepo *repo.User
}

func NewUser(userRepo *repo.User) *User {
	return &User{
		UserRepo: userRepo,
	}
}

func (s *User) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.UserRepo.GetUserByUsername(ctx, username)
}

func (s *User) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "service: failed to hash password")
	}

	user := &model.User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		IsStaff:      req.IsStaff,
		IsActive:     true,
		DateJoined:   time.Now().UTC(),
	}
	if err := s.UserRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials of an active user. Unknown users, wrong
// passwords and inactive accounts are indistinguishable to the caller.
func (s *User) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	invalid := limserr.ErrUnauthenticated.Msg("please enter valid credentials")

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if limserr.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	now := time.Now().UTC()
	if err := s.UserRepo.TouchLastLogin(ctx, user.UserID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return user, nil
}
