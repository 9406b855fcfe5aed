package utils

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	validatorv10 "github.com/go-playground/validator/v10"

	"petclinic-client/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validatorv10.Validate
)

// Validator returns the shared, lazily configured validator.
func Validator() *validatorv10.Validate {
	validateOnce.Do(func() {
		validate = validatorv10.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs struct tags and flattens failures into one error
// wrapping domain.ErrValidation, e.g. "validation failed: email: must be a valid email".
func ValidateStruct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "numeric":
		return "must be numeric"
	case "datetime":
		return "must match " + fe.Param()
	case "url":
		return "must be a URL"
	default:
		return "failed " + fe.Tag()
	}
}
