package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// egyptianMobile matches local Egyptian mobile numbers, e.g. 01012345678.
var egyptianMobile = regexp.MustCompile(`^(010|011|012|015)\d{8}$`)

// v is the package-level singleton validator. It is initialised once at
// package load time. Custom rules are registered in init before the first call to Struct.
var v = validator.New()

func init() {
	_ = v.RegisterValidation("egphone", func(fl validator.FieldLevel) bool {
		return egyptianMobile.MatchString(fl.Field().String())
	})
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// Phone reports whether s is a valid Egyptian mobile number.
func Phone(s string) bool {
	return egyptianMobile.MatchString(s)
}
