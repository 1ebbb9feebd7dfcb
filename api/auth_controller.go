package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-errors"
)

type AuthControllerRoutes struct {
	Login    string
	Register string
}

// Registrar creates user accounts
type Registrar interface {
	Execute(ctx context.Context, msg auth.RegisterUserMessage) (*auth.User, error)
}

type AuthController struct {
	Logger        auth.Logger
	Registrar     Registrar
	Authenticator auth.Authenticator
	Routes        *AuthControllerRoutes
}

func NewAuthController(registrar Registrar, authenticator auth.Authenticator) *AuthController {
	return &AuthController{
		Logger:        auth.DefaultLogger(),
		Registrar:     registrar,
		Authenticator: authenticator,
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
		},
	}
}

func (a *AuthController) WithLogger(logger auth.Logger) *AuthController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// Register creates an account and returns its public fields
func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("register parse payload: %s", err)
		return errBadPayload(err)
	}

	user, err := a.Registrar.Execute(c.UserContext(), auth.RegisterUserMessage{
		Username:        payload.Username,
		Email:           payload.Email,
		Password:        payload.Password,
		ConfirmPassword: payload.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(newRegisterResponse(user))
}

// Login exchanges credentials for a bearer token
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("login parse payload: %s", err)
		return errBadPayload(err)
	}

	if err := payload.Validate(); err != nil {
		return auth.NewValidationError(err)
	}

	res, err := a.Authenticator.Login(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func errBadPayload(err error) error {
	return errors.Wrap(err, errors.CategoryBadInput, "Request body could not be parsed.").
		WithCode(errors.CodeBadRequest).
		WithTextCode(auth.TextCodeValidation)
}
