package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
)

// NewValidator returns a validator that reports fields by their configuration key
// and understands the regexp tag.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})
	// Cannot fail: the tag name is valid and the function is not nil.
	_ = validate.RegisterValidation("regexp", isRegexp)
	return validate
}

func isRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

// LogValidationErrors logs every problem of an aggregated validation failure on its own line.
func LogValidationErrors(err error) {
	var problems *multierror.Error
	if !errors.As(err, &problems) {
		log.Errorf("ConfigError: %s", err)
		return
	}
	for _, problem := range problems.Errors {
		log.Errorf("ConfigError: %s", problem)
	}
}

// FieldErrors converts struct tag validation failures into one ErrInvalidArgument per field.
// Errors of any other type are returned unchanged.
func FieldErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	var result *multierror.Error
	for _, fieldErr := range validationErrors {
		result = multierror.Append(result, errors.WithStack(&farmerrors.ErrInvalidArgument{
			Name:    stripPrefix(fieldErr.Namespace()),
			Value:   fieldErr.Value(),
			Message: describe(fieldErr),
		}))
	}
	return result.ErrorOrNil()
}

func describe(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "required but was not found"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", err.Param())
	case "regexp":
		return "not a valid regular expression"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}

func stripPrefix(s string) string {
	if idx := strings.Index(s, "."); idx != -1 {
		return s[idx+1:]
	}
	return s
}
