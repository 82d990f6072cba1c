package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/db"
)

// Register stores a new user and returns its id. A taken email or handle yields ErrConflict.
func (s *General) Register(ctx context.Context, email, handle, pass string) (uint64, error) {
	hash, err := s.bcryptGen(pass)
	if err != nil {
		return 0, errors.Wrap(err, "bcryptGen")
	}

	user := db.User{
		Email:    email,
		Handle:   handle,
		Password: hash,
	}
	res := s.db.WithContext(ctx).Create(&user)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error) {
			return 0, ErrConflict
		}
		return 0, errors.Wrap(res.Error, "create user")
	}
	s.logger.Debugw("user registered", "id", user.ID)
	return user.ID, nil
}

// Authenticate returns ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *General) Authenticate(ctx context.Context, email, pass string) (*db.User, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			_ = s.bcryptCheck(string(s.dummyHash), pass)
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(res.Error, "find user")
	}

	if err := s.bcryptCheck(user.Password, pass); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *General) UserGet(ctx context.Context, id uint64) (*db.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	user := db.User{}
	res := s.db.WithContext(ctx).First(&user, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "find user")
	}
	return &user, nil
}
