package auth

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

const (
	tokenKey = "token"
	ownerKey = "owner_id"

	msgNoToken      = "Unauthorized: Token not provided"
	msgInvalidToken = "Unauthorized: Invalid token"
)

// Middleware verifies the raw token in the authorization header. The header
// carries the token itself, without a "Bearer " scheme.
func (a *Authenticator) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:     a.keyFunc,
		TokenLookup: "header:" + fiber.HeaderAuthorization,
		AuthScheme:  "",
		ContextKey:  tokenKey,
		Claims:      &Claims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).SendString(msgInvalidToken)
			}
			claims, _ := token.Claims.(*Claims)
			owner, err := claims.owner()
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).SendString(msgInvalidToken)
			}
			c.Locals(ownerKey, owner)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if c.Get(fiber.HeaderAuthorization) == "" {
				return c.Status(fiber.StatusUnauthorized).SendString(msgNoToken)
			}
			return c.Status(fiber.StatusUnauthorized).SendString(msgInvalidToken)
		},
	})
}

// OwnerID returns the user id the middleware resolved for this request.
func OwnerID(c *fiber.Ctx) (uint64, bool) {
	id, ok := c.Locals(ownerKey).(uint64)
	return id, ok && id != 0
}
