package records

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	rutPattern        = regexp.MustCompile(`^\d{1,2}\.\d{3}\.\d{3}-[\dkK]$`)
	localPhonePattern = regexp.MustCompile(`^\d{9,12}$`)
	intlPhonePattern  = regexp.MustCompile(`^\+?\d{9,15}$`)
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator es el validador compartido: nombres de campo según el tag form y
// reglas propias (letters, rut, localphone, intlphone).
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("letters", func(fl validator.FieldLevel) bool {
			for _, r := range fl.Field().String() {
				if !unicode.IsLetter(r) && r != ' ' {
					return false
				}
			}
			return true
		})
		_ = v.RegisterValidation("rut", matches(rutPattern))
		_ = v.RegisterValidation("localphone", matches(localPhonePattern))
		_ = v.RegisterValidation("intlphone", matches(intlPhonePattern))
		validate = v
	})
	return validate
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Struct valida v y traduce cada falla a un mensaje por campo. messages permite
// reemplazar el texto por campo ("email") o por campo y regla ("email.email").
func Struct(v any, messages map[string]string) FieldErrors {
	errs := FieldErrors{}

	err := Validator().Struct(v)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("_", err.Error())
		return errs
	}

	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			errs.Add(field, msg)
			continue
		}
		if msg, ok := messages[field]; ok {
			errs.Add(field, msg)
			continue
		}
		errs.Add(field, describe(fe))
	}
	return errs
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "this field is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "letters":
		return "only letters and spaces are allowed"
	case "rut":
		return "must have the format 12.345.678-9"
	case "localphone":
		return "must contain between 9 and 12 digits"
	case "intlphone":
		return "must be a phone number of 9 to 15 digits, optionally starting with +"
	case "datetime":
		return "must be a date in the format YYYY-MM-DD"
	default:
		return "is invalid"
	}
}
