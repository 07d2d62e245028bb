package validator

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBreakpoint - the largest finite value accepted by the "breakpoint" tag
const maxBreakpoint = 1000.0

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Errors report the wire name (json, then yaml) instead of the Go field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "yaml"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	// breakpoint: a step-schedule boundary, finite in [0, 1000] or +Inf as the terminal bracket
	err := validate.RegisterValidation("breakpoint", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		if math.IsInf(v, 1) {
			return true
		}
		return v >= 0 && v <= maxBreakpoint
	})
	if err != nil {
		panic(fmt.Sprintf("register breakpoint validation: %v", err))
	}
}

// Validate - validates a struct against its tags
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - returns the validator for custom configuration
func GetValidator() *validator.Validate {
	return validate
}
