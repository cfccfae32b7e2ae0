package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var isbnRe = regexp.MustCompile(`^97[89]\d{9}[\dX]$`)

type CustomValidator struct {
	validator *validator.Validate
}

type Option func(v *validator.Validate)

// WithEnum registers tag that accepts only the listed values.
func WithEnum(tag string, values []string) Option {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			_, ok := allowed[fl.Field().String()]
			return ok
		})
	}
}

func NewCustomValidator(opts ...Option) *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("book_isbn", func(fl validator.FieldLevel) bool {
		return isbnRe.MatchString(fl.Field().String())
	})
	for _, op := range opts {
		op(v)
	}
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var vErrs validator.ValidationErrors
		if !asValidationErrors(err, &vErrs) {
			return err
		}
		return Errors(messages(vErrs))
	}
	return nil
}

// Errors lists every failed rule of a request.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	vErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if ok {
		*target = vErrs
	}
	return ok
}

func messages(vErrs validator.ValidationErrors) []string {
	out := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		out = append(out, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("The field %s must be at least %s.", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("The field %s must be at most %s.", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("The %s field is not a valid e-mail address.", fe.Field())
	case "book_isbn":
		return "Invalid ISBN format."
	case "genre":
		return "Invalid genre specified."
	default:
		return fmt.Sprintf("The field %s is invalid (%s).", fe.Field(), fe.Tag())
	}
}
