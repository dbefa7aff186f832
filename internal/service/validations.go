package service

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		// Exactly seven days, Sunday first
		validate.RegisterValidation("weekmask", func(fl validator.FieldLevel) bool {
			days, ok := fl.Field().Interface().([]bool)
			return ok && len(days) == entity.DaysInWeek
		})
	})
}

// validateStruct runs the validator and wraps field errors into ErrInvalidInput.
func validateStruct(v any) error {
	InitValidator()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		joined := make([]error, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			joined = append(joined, fieldErr)
		}
		return fmt.Errorf("%w: validation error: %w", errorvalues.ErrInvalidInput, errors.Join(joined...))
	}
	return fmt.Errorf("%w: validation unexpected error: %w", errorvalues.ErrInvalidInput, err)
}
