package transport

import (
	"context"
	"net"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/config"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/db"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/models"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/service"
)

const shareLinkPrefix = "/content/share/"

var (
	Module = fx.Provide(
		NewHTTPServer,
	)
)

type HTTPServer struct {
	app       *fiber.App
	service   *service.General
	auth      *auth.Authenticator
	validator *models.Validator
	logger    *zap.SugaredLogger
	strict    bool
}

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, svc *service.General, a *auth.Authenticator, logger *zap.SugaredLogger) *HTTPServer {
	instance := New(svc, a, logger, cfg.ShareStrict)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listen := cfg.HTTPListen()
			ln, err := net.Listen("tcp", listen)
			if err != nil {
				return errors.Wrapf(err, "listen %s", listen)
			}
			go func() {
				if err := instance.app.Listener(ln); err != nil {
					logger.Fatalw("http server stopped", "error", err)
				}
			}()
			logger.Infow("HTTP server started", "listen", listen)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return instance.app.ShutdownWithContext(ctx)
		},
	})

	return instance
}

// New builds the router. strict turns unresolved share tokens into 404s instead
// of empty success bodies.
func New(svc *service.General, a *auth.Authenticator, logger *zap.SugaredLogger, strict bool) *HTTPServer {
	instance := &HTTPServer{
		service:   svc,
		auth:      a,
		validator: models.NewValidator(),
		logger:    logger,
		strict:    strict,
	}

	app := fiber.New(fiber.Config{
		AppName:               "brain-back",
		DisableStartupMessage: true,
		ErrorHandler:          instance.ErrorHandler,
	})

	// outermost so requests that panic are still logged
	app.Use(instance.RequestLogger)
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("Server Working Fine") })
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	app.Post("/Signup", instance.Signup)
	app.Post("/Signin", instance.Signin)
	app.Get("/user/details/:id", instance.UserDetails)
	app.Get(shareLinkPrefix+":sharelink", instance.SharedContent)

	protected := a.Middleware()

	contentG := app.Group("/content")
	contentG.Post("/put", protected, instance.ContentCreate)
	contentG.Get("/get", protected, instance.ContentGet)
	contentG.Delete("/delete", protected, instance.ContentDelete)
	contentG.Post("/share", protected, instance.Share)

	tagG := app.Group("/tags", protected)
	tagG.Get("", instance.TagGet)
	tagG.Post("", instance.TagCreate)
	tagG.Patch("/:id", instance.TagUpdate)
	tagG.Delete("/:id", instance.TagDelete)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	instance.app = app
	return instance
}

func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func (s *HTTPServer) Signup(c *fiber.Ctx) error {
	req := models.SignupReq{}
	if err := s.BindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := s.service.Register(c.UserContext(), req.Email, req.User, req.Password); err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(models.MessageResp{Mesg: "Email or user already exists"})
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.MessageResp{Mesg: "Signup successful"})
}

func (s *HTTPServer) Signin(c *fiber.Ctx) error {
	req := models.SigninReq{}
	if err := s.BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := s.service.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(models.SigninResp{
				Mesg: "Unauthorized access: Invalid email or password",
			})
		}
		return err
	}

	token, err := s.auth.Sign(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(models.SigninResp{Mesg: "Success", Token: token})
}

func (s *HTTPServer) ContentCreate(c *fiber.Ctx) error {
	owner, err := GetOwnerFromContext(c)
	if err != nil {
		return err
	}

	req := models.ContentReq{}
	if err := s.BindAndValidate(c, &req); err != nil {
		return err
	}

	contentType, err := db.ParseContentType(req.Type)
	if err != nil {
		return err
	}

	model, err := s.service.ContentCreate(c.UserContext(), owner, service.ContentInput{
		Type:        contentType,
		Link:        req.Link,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.ContentCreateResp{
		Mesg:      "Content added",
		ContentID: model.ID,
		UserID:    owner,
	})
}

func (s *HTTPServer) ContentGet(c *fiber.Ctx) error {
	owner, err := GetOwnerFromContext(c)
	if err != nil {
		return err
	}

	tags, err := ParseIDList(c.Query("tags"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query param 'tags'")
	}

	contents, err := s.service.ContentList(c.UserContext(), owner, tags)
	if err != nil {
		return err
	}
	return c.JSON(models.ContentListResp{Data: models.NewContentResps(contents)})
}

func (s *HTTPServer) ContentDelete(c *fiber.Ctx) error {
	owner, err := GetOwnerFromContext(c)
	if err != nil {
		return err
	}

	req := models.ContentDeleteReq{}
	if err := s.BindAndValidate(c, &req); err != nil {
		return err
	}

	deleted, err := s.service.ContentDelete(c.UserContext(), owner, req.ContentID)
	if err != nil {
		return err
	}
	return c.JSON(deleteResp(deleted))
}

func (s *HTTPServer) Share(c *fiber.Ctx) error {
	owner, err := GetOwnerFromContext(c)
	if err != nil {
		return err
	}

	req := models.ShareReq{}
	if err := s.BindAndValidate(c, &req); err != nil {
		return err
	}

	if !req.Share {
		if _, err := s.service.ShareDisable(c.UserContext(), owner); err != nil {
			return err
		}
		return c.JSON(models.ShareResp{Mesg: "Brain is Private"})
	}

	hash, created, err := s.service.ShareEnable(c.UserContext(), owner)
	if err != nil {
		return err
	}
	link := shareLinkPrefix + hash
	mesg := "link exist"
	if created {
		mesg = "link created"
	}
	return c.JSON(models.ShareResp{Mesg: mesg, Link: &link})
}

func (s *HTTPServer) UserDetails(c *fiber.Ctx) error {
	owner, err := s.service.OwnerByToken(c.UserContext(), c.Params("id"))
	switch {
	case err == nil:
		return c.JSON(models.UserDetailsResp{Response: models.NewUserResp(owner), Status: fiber.StatusOK})
	case errors.Is(err, service.ErrNotFound):
		if s.strict {
			return c.Status(fiber.StatusNotFound).JSON(models.UserDetailsResp{Status: fiber.StatusNotFound})
		}
		return c.JSON(models.UserDetailsResp{Status: fiber.StatusOK})
	default:
		s.logger.Errorw("user details", "error", err)
		return c.Status(fiber.StatusGatewayTimeout).JSON(models.UserDetailsErrResp{
			Error:  "Internal server error",
			Status: fiber.StatusGatewayTimeout,
		})
	}
}

func (s *HTTPServer) SharedContent(c *fiber.Ctx) error {
	contents, err := s.service.SharedContent(c.UserContext(), c.Params("sharelink"))
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			return err
		}
		if s.strict {
			return fiber.NewError(fiber.StatusNotFound, "Share link not found")
		}
	}
	return c.JSON(models.SharedContentResp{Content: models.NewContentResps(contents)})
}

func (s *HTTPServer) TagGet(c *fiber.Ctx) error {
	owner, err := GetOwnerFromContext(c)
	if err != nil {
		return err
	}

	tags, err := s.service.TagList(c.UserContext(), owner)
	if err != nil {
		return err
	}
	return c.JSON(models.TagListResp{Data: models.NewTagResps(tags)})
}

func (s *HTTPServer) TagCreate(c *fiber.Ctx) error {
	owner, err := GetOwnerFromContext(c)
	if err != nil {
		return err
	}

	req := models.TagReq{}
	if err := s.BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.service.TagCreate(c.UserContext(), owner, req.Title)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewTagResp(*tag))
}

func (s *HTTPServer) TagUpdate(c *fiber.Ctx) error {
	owner, err := GetOwnerFromContext(c)
	if err != nil {
		return err
	}
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.TagReq{}
	if err := s.BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.service.TagUpdate(c.UserContext(), owner, id, req.Title)
	if err != nil {
		return err
	}
	return c.JSON(models.NewTagResp(*tag))
}

func (s *HTTPServer) TagDelete(c *fiber.Ctx) error {
	owner, err := GetOwnerFromContext(c)
	if err != nil {
		return err
	}
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	deleted, err := s.service.TagDelete(c.UserContext(), owner, id)
	if err != nil {
		return err
	}
	return c.JSON(deleteResp(deleted))
}

func deleteResp(deleted bool) models.DeleteResp {
	if deleted {
		return models.DeleteResp{Mesg: "Deleted", Deleted: true}
	}
	return models.DeleteResp{Mesg: "Nothing deleted"}
}

////////

func (s *HTTPServer) BindAndValidate(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return s.validator.Validate(v)
}

func GetOwnerFromContext(c *fiber.Ctx) (uint64, error) {
	owner, ok := auth.OwnerID(c)
	if !ok {
		return 0, auth.ErrUnauthorized
	}
	return owner, nil
}

func GetAndParseParam(c *fiber.Ctx, name string) (uint64, error) {
	v := c.Params(name)
	if v == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid path param '"+name+"'")
	}
	vv, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return vv, nil
}

// ParseIDList parses a comma separated id list. An empty string is an empty list.
func ParseIDList(raw string) ([]uint64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
