package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Booking type validation
	validate.RegisterValidation("booking_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		validTypes := []string{"GAME", "EVENT"}
		for _, v := range validTypes {
			if t == v {
				return true
			}
		}
		return false
	})

	// Game area validation
	validate.RegisterValidation("game_area", func(fl validator.FieldLevel) bool {
		area := fl.Field().String()
		validAreas := []string{"ACTIVE", "LASER", "MIX", ""}
		for _, a := range validAreas {
			if area == a {
				return true
			}
		}
		return false
	})

	// Event type validation
	validate.RegisterValidation("event_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		validTypes := []string{"event_active", "event_laser", "event_mix", ""}
		for _, v := range validTypes {
			if t == v {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "uuid":
			errors[field] = "Invalid UUID format"
		case "oneof":
			errors[field] = "Must be one of: " + err.Param()
		case "booking_type":
			errors[field] = "Invalid booking type. Must be: GAME or EVENT"
		case "game_area":
			errors[field] = "Invalid game area. Must be: ACTIVE, LASER, or MIX"
		case "event_type":
			errors[field] = "Invalid event type. Must be: event_active, event_laser, or event_mix"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
