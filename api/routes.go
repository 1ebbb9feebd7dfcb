package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/logging"
	"github.com/goliatone/go-bookquotes-auth/middleware/jwtware"
	"github.com/goliatone/go-bookquotes-auth/records"
	"github.com/sirupsen/logrus"
)

// Dependencies are the services the HTTP surface is built on
type Dependencies struct {
	Log           *logrus.Logger
	Config        auth.Config
	Tokens        auth.TokenValidator
	Registrar     Registrar
	Authenticator auth.Authenticator
	Books         *records.Service[*records.Book]
	Quotes        *records.Service[*records.Quote]
	// Prefix mounts a second copy of every route, e.g. "/api"
	Prefix string
}

// NewApp builds the fiber application with every route registered
func NewApp(deps Dependencies) *fiber.App {
	logger := auth.DefaultLogger()
	if deps.Log != nil {
		logger = logging.Wrap(deps.Log, "api")
	}

	app := fiber.New(fiber.Config{
		AppName:               "bookquotes",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger),
	})

	app.Use(recover.New())
	if deps.Log != nil {
		app.Use(logging.RequestLogger(deps.Log))
	}

	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	RegisterRoutes(app, deps, logger)
	if deps.Prefix != "" && deps.Prefix != "/" {
		RegisterRoutes(app.Group(deps.Prefix), deps, logger)
	}

	return app
}

// RegisterRoutes mounts the auth, books and quotes routes on router
func RegisterRoutes(router fiber.Router, deps Dependencies, logger auth.Logger) {
	authController := NewAuthController(deps.Registrar, deps.Authenticator).WithLogger(logger)
	router.Post(authController.Routes.Register, authController.Register)
	router.Post(authController.Routes.Login, authController.Login)

	protected := jwtware.New(jwtConfig(deps.Config, deps.Tokens))

	books := NewRecordController(deps.Books, "my-books", BookBinding()).WithLogger(logger)
	books.Register(router.Group("/books", protected))

	quotes := NewRecordController(deps.Quotes, "my-quotes", QuoteBinding()).WithLogger(logger)
	quotes.Register(router.Group("/quotes", protected))
}

func jwtConfig(cfg auth.Config, tokens auth.TokenValidator) jwtware.Config {
	out := jwtware.Config{
		TokenValidator: tokens,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if !auth.IsUnauthorized(err) {
				err = auth.ErrTokenMalformed
			}
			return err
		},
	}

	if cfg != nil {
		out.ContextKey = cfg.GetContextKey()
		out.TokenLookup = cfg.GetTokenLookup()
		out.AuthScheme = cfg.GetAuthScheme()
	}

	return out
}
