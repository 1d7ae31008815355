package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"

	"github.com/logintest/login-api/internal/core/domain"
)

// requiredErrors maps request fields to the error reported when they are blank.
var requiredErrors = map[string]error{
	"Email":    domain.ErrEmailRequired,
	"Password": domain.ErrPasswordRequired,
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echo.Validator with the notblank tag registered.
func NewValidator() echo.Validator {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("handler: register notblank: %v", err))
	}
	return &echoValidator{v: v}
}

// Validate reports the first failing field. Blank email or password map to
// their domain errors so the response matches the service's messages.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	if fe.Tag() == "notblank" || fe.Tag() == "required" {
		if derr, ok := requiredErrors[fe.Field()]; ok {
			return derr
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, fieldError(fe))
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	default:
		return fmt.Sprintf("%s failed validation (%s)", strings.ToLower(field), fe.Tag())
	}
}
