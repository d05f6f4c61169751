package commands

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/domain/session"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

// LoginCommand exchanges phone and password for a session token
type LoginCommand struct {
	Phone    string `validate:"required,len=11,numeric,startswith=1"`
	Password string `validate:"required"`
}

// LoginResponse represents the stored session
type LoginResponse struct {
	Session *session.Session
}

// LoginHandler handles the Login command
type LoginHandler struct {
	client      ports.GameClient
	sessionRepo session.SessionRepository
	clock       shared.Clock
	validate    *validator.Validate
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(client ports.GameClient, sessionRepo session.SessionRepository, clock shared.Clock) *LoginHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &LoginHandler{
		client:      client,
		sessionRepo: sessionRepo,
		clock:       clock,
		validate:    validator.New(),
	}
}

// Handle executes the Login command
func (h *LoginHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*LoginCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoginCommand")
	}

	if err := h.validate.Struct(cmd); err != nil {
		return nil, toValidationError(err)
	}

	result, err := h.client.Login(ctx, cmd.Phone, cmd.Password)
	if err != nil {
		return nil, err
	}

	s := &session.Session{
		Phone:     cmd.Phone,
		Token:     result.Token,
		User:      result.User,
		CreatedAt: h.clock.Now(),
	}

	if err := h.sessionRepo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Logged in", map[string]interface{}{
		"user_id": result.User.ID,
	})

	return &LoginResponse{Session: s}, nil
}

// toValidationError reports the first failing field
func toValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return err
	}

	first := validationErrs[0]
	switch first.Field() {
	case "Phone":
		if first.Tag() == "required" {
			return shared.NewValidationError("phone", "phone number is required")
		}
		return shared.NewValidationError("phone", "phone number must be 11 digits starting with 1")
	case "Password":
		return shared.NewValidationError("password", "password is required")
	default:
		return shared.NewValidationError(first.Field(), first.Tag())
	}
}
