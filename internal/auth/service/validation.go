package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/webmovie/backend/internal/common/constants"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type RegisterInput struct {
	Email       string `validate:"required,email,max=254"`
	Password    string `validate:"required,min=8,max=72"`
	DisplayName string `validate:"required,min=1,max=64"`
}

type LoginInput struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required"`
}

// Emails are stored and matched exactly as supplied, modulo surrounding
// whitespace. No case folding: "A@x.com" and "a@x.com" are distinct accounts.
func (in RegisterInput) normalized() RegisterInput {
	in.Email = strings.TrimSpace(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	return in
}

func (in LoginInput) normalized() LoginInput {
	in.Email = strings.TrimSpace(in.Email)
	return in
}

func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	ok := false
	if e, isValidation := err.(validator.ValidationErrors); isValidation {
		verrs = e
		ok = true
	}
	if !ok {
		return ErrValidation.WithCause(err)
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describeFieldError(fe))
	}

	return ErrValidation.WithCause(fmt.Errorf("%s", strings.Join(details, "; ")))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if field == "password" {
			return fmt.Sprintf("password must be at least %d characters", constants.PasswordMinLength)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
