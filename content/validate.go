package content

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("image_name", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			return name != "." && name != ".." && path.Base(name) == name && !strings.ContainsRune(name, '\\')
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks identifier uniqueness and field constraints across the
// catalog. The first violation is returned as a *ValidationError.
func Validate(c *Catalog) error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Namespace(), Message: describe(fe)}
	}
	return &ValidationError{Message: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "unique":
		return fmt.Sprintf("duplicate %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "ne":
		return fmt.Sprintf("must not be %q", fe.Param())
	case "url", "email":
		return fmt.Sprintf("is not a valid %s", fe.Tag())
	case "datetime":
		return fmt.Sprintf("must use layout %s", fe.Param())
	case "image_name":
		return "must be a bare file name"
	}
	return fmt.Sprintf("failed %s", fe.Tag())
}
