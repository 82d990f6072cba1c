package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/config"
)

const signingMethod = "HS256"

var (
	Module = fx.Provide(
		NewFromConfig,
	)

	ErrUnauthorized = errors.New("unauthorized")
	ErrEmptySecret  = errors.New("empty signing secret")
)

type (
	Claims struct {
		UserID uint64 `json:"uid"`
		jwt.RegisteredClaims
	}

	// Authenticator issues and verifies the bearer tokens handed out on sign in.
	Authenticator struct {
		secret []byte
		ttl    time.Duration
		now    func() time.Time
	}
)

func New(secret []byte, ttl time.Duration) (*Authenticator, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &Authenticator{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func NewFromConfig(cfg *config.Config) (*Authenticator, error) {
	return New([]byte(cfg.JWTSecret), cfg.JWTTTL)
}

// Sign returns a token for the user. Tokens carry no expiry unless a TTL is configured.
func (a *Authenticator) Sign(userID uint64) (string, error) {
	now := a.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if a.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(a.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

func (a *Authenticator) Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, a.keyFunc)
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	if _, err := claims.owner(); err != nil {
		return nil, err
	}
	return claims, nil
}

// owner is the user the token was issued to. A token without one never authenticates.
func (c *Claims) owner() (uint64, error) {
	if c == nil || c.UserID == 0 {
		return 0, ErrUnauthorized
	}
	return c.UserID, nil
}

func (a *Authenticator) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != signingMethod {
		return nil, errors.Errorf("unexpected signing method %s", t.Method.Alg())
	}
	return a.secret, nil
}
