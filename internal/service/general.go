package service

import (
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/config"
)

var (
	Module = fx.Provide(
		NewGeneral,
	)

	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrUnknownTag         = errors.New("unknown tag")
)

type General struct {
	db         *gorm.DB
	logger     *zap.SugaredLogger
	bcryptCost int
	// compared against when the email is unknown so sign in costs the same either way
	dummyHash []byte
}

func NewGeneral(db *gorm.DB, l *zap.SugaredLogger, cfg *config.Config) (*General, error) {
	return New(db, l, cfg.BcryptCost)
}

func New(db *gorm.DB, l *zap.SugaredLogger, bcryptCost int) (*General, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "generate dummy hash")
	}
	return &General{
		db:         db,
		logger:     l,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}, nil
}

func (s *General) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), s.bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}

func (s *General) bcryptCheck(hash, pass string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
}
