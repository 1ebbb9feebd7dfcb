package auth

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

var errBlank = goerrors.New("cannot be blank", goerrors.CategoryValidation)

type RegisterUserMessage struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks the registration payload
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Username, validation.Required, validation.Length(3, 20)),
		validation.Field(&e.Email, validation.Length(0, 50), is.Email),
		validation.Field(&e.Password, validation.Required, validation.Length(6, 20)),
		validation.Field(&e.ConfirmPassword, validation.By(ValidateStringEquals(e.Password))),
	)
}

type RegisterUserHandler struct {
	repo         RepositoryManager
	hasher       Hasher
	logger       Logger
	activitySink ActivitySink
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{
		repo:         repo,
		hasher:       NewHMACHasher(),
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (h *RegisterUserHandler) WithLogger(l Logger) *RegisterUserHandler {
	if l != nil {
		h.logger = l
	}
	return h
}

func (h *RegisterUserHandler) WithHasher(hasher Hasher) *RegisterUserHandler {
	if hasher != nil {
		h.hasher = hasher
	}
	return h
}

func (h *RegisterUserHandler) WithActivitySink(sink ActivitySink) *RegisterUserHandler {
	h.activitySink = normalizeActivitySink(sink)
	return h
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	event.Email = strings.TrimSpace(event.Email)

	blank := validation.Errors{}
	if strings.TrimSpace(event.Username) == "" {
		blank["username"] = errBlank
	}
	if strings.TrimSpace(event.Password) == "" {
		blank["password"] = errBlank
	}
	if len(blank) > 0 {
		return nil, NewValidationError(blank)
	}

	if err := event.Validate(); err != nil {
		return nil, NewValidationError(err)
	}

	var user *User
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		users := h.repo.Users()

		taken, err := users.UsernameTakenTx(ctx, tx, event.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		if event.Email != "" {
			if taken, err = users.EmailTakenTx(ctx, tx, event.Email); err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
		}

		hash, salt, err := h.hasher.Hash(event.Password)
		if err != nil {
			return err
		}

		user, err = users.RegisterTx(ctx, tx, &User{
			Username:     event.Username,
			Email:        event.Email,
			PasswordHash: hash,
			PasswordSalt: salt,
		})
		return err
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, err
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	recordActivity(ctx, h.activitySink, h.logger, ActivityEvent{
		EventType: ActivityEventUserRegistered,
		UserID:    user.ID,
		Username:  user.Username,
	})

	return user, nil
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != str {
			return goerrors.New("Passwords do not match.", goerrors.CategoryValidation)
		}
		return nil
	}
}
