package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// playerNameRule is the tag chain applied to lookup identifiers
	playerNameRule = fmt.Sprintf("required,max=%d,player_name", constants.MaxPlayerNameLength)
)

// InitValidator initializes the validator with custom validations
func InitValidator() {
	validate = validator.New()

	// Register function to get json tag names instead of struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations(validate)

	log.Debug().Msg("Validator initialized")
}

// GetValidator returns the singleton validator instance
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidatePlayerName checks a lookup identifier taken from the URL.
func ValidatePlayerName(name string) error {
	if err := GetValidator().Var(name, playerNameRule); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationError(constants.ParamPlayerName, getErrorMessage(validationErrors[0]))
		}
		return NewValidationError(constants.ParamPlayerName, err.Error())
	}
	return nil
}

// getErrorMessage returns a user-friendly error message for a validation error
func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", e.Param())
		}
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "player_name":
		return "Must not contain control characters"
	default:
		return fmt.Sprintf("Failed validation on the '%s' tag", e.Tag())
	}
}

// registerCustomValidations adds custom validation functions to the validator
func registerCustomValidations(v *validator.Validate) {
	if err := v.RegisterValidation("player_name", validatePlayerName); err != nil {
		log.Error().Err(err).Msg("Failed to register player_name validation")
	}
}

// validatePlayerName rejects identifiers carrying control or invalid characters.
func validatePlayerName(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r == unicode.ReplacementChar || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
