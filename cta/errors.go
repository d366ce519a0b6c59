package cta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidArgument is wrapped by every argument error
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a caller contract violation
type ArgumentError struct {
	Resource string
	Problems []string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Resource, ErrInvalidArgument, strings.Join(e.Problems, "; "))
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkArguments runs the struct tags of q and translates failures into an ArgumentError
func checkArguments(resource string, q any) error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ArgumentError{Resource: resource, Problems: []string{err.Error()}}
	}

	seen := map[string]bool{}
	var problems []string
	for _, fe := range fieldErrs {
		msg := describe(fe)
		if !seen[msg] {
			seen[msg] = true
			problems = append(problems, msg)
		}
	}
	return &ArgumentError{Resource: resource, Problems: problems}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required_without":
		return oneOf(fe.Field(), fe.Param()) + " is required"
	case "excluded_with":
		return "only one of " + oneOf(fe.Field(), fe.Param()) + " may be set"
	case "required", "min":
		return fe.Field() + " is required"
	case "numeric":
		return fe.Field() + " must be numeric"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// oneOf names a field pair in a stable order regardless of which side reported it
func oneOf(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + " or " + b
}
