package transport

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/db"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/models"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/service"
)

const censored = "$censored"

var censoredFields = []string{"password"}

// ErrorHandler maps errors returned by handlers to responses. Store errors are
// logged in full and answered with an opaque message.
func (s *HTTPServer) ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		vErr     *models.ValidationError
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrResp{
			Mesg:   "Validation error",
			Errors: vErr.Fields,
		})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(models.MessageResp{Mesg: fiberErr.Message})
	case errors.Is(err, db.ErrUnknownContentType):
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResp{Mesg: "Unknown content type"})
	case errors.Is(err, service.ErrUnknownTag):
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResp{Mesg: "Unknown tag"})
	case errors.Is(err, auth.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(models.MessageResp{Mesg: "Unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.MessageResp{Mesg: "Not found"})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(models.MessageResp{Mesg: "Conflict"})
	}

	s.logger.Errorw("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(models.MessageResp{Mesg: "Internal server error"})
}

func (s *HTTPServer) RequestLogger(c *fiber.Ctx) error {
	start := time.Now()

	if chainErr := c.Next(); chainErr != nil {
		if err := s.ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.logger.Infow("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start),
		"body", string(censorBody(c.Body())),
	)
	return nil
}

// censorBody hides credential fields of a JSON object body. Anything else is
// returned untouched.
func censorBody(body []byte) []byte {
	if len(body) == 0 {
		return body
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return body
	}

	changed := false
	for _, name := range censoredFields {
		if _, ok := fields[name]; ok {
			fields[name] = json.RawMessage(`"` + censored + `"`)
			changed = true
		}
	}
	if !changed {
		return body
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return body
	}
	return out
}
