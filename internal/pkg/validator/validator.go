package validator

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("hhmm", isClock)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	return FieldErrors(validate.Struct(v))
}

// FieldErrors maps validation failures to field -> failed tag. Errors that are
// not validation errors (malformed JSON) are reported under "_".
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = e.Tag()
	}
	return out
}

// RegisterGinValidations installs the custom tags on gin's binding engine so that
// `binding:"hhmm"` works in request DTOs.
func RegisterGinValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return v.RegisterValidation("hhmm", isClock)
}

// isClock accepts a 24h "HH:MM" time of day.
func isClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
