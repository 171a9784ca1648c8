package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// Checker is implemented by forms with rules that struct tags cannot express.
type Checker interface {
	Check() map[string]string
}

// Validate struct fields. The result maps the JSON path of each failing
// field to the rule it broke, or is nil when v is valid.
func Validate(v interface{}) map[string]string {
	errs := make(map[string]string)

	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			errs["_"] = err.Error()
			return errs
		}
		for _, fe := range fieldErrs {
			errs[fieldPath(fe.Namespace())] = fe.Tag()
		}
	}

	if c, ok := v.(Checker); ok {
		for field, rule := range c.Check() {
			if _, exists := errs[field]; !exists {
				errs[field] = rule
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// fieldPath strips the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
