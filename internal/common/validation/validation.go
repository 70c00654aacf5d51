package validation

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the process-wide validator. validator.Validate caches
// struct metadata and is safe for concurrent use.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

func Struct(v any) error {
	return Validator().Struct(v)
}

// FailedFields lists the struct fields that failed validation, in order.
func FailedFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// FirstFailure returns the field and tag of the first failed rule.
func FirstFailure(err error) (field, tag string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	return verrs[0].Field(), verrs[0].Tag(), true
}
