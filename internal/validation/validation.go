// Package validation checks entity state against the field rules declared
// in the model struct tags. Every check is pure: it reads the value it is
// given and returns the violations as (field, kind) pairs.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/hbnb/internal/errs"
	"github.com/iliyamo/hbnb/internal/model"
)

var emailPattern = regexp.MustCompile(`^[\w\.-]+@[\w\.-]+\.\w+$`)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so field errors match request payload keys.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("email_address", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

func ValidateUser(u *model.User) []errs.FieldError { return check(u) }

func ValidateAmenity(a *model.Amenity) []errs.FieldError { return check(a) }

func ValidatePlace(p *model.Place) []errs.FieldError { return check(p) }

func ValidateReview(r *model.Review) []errs.FieldError { return check(r) }

// ValidatePlaceInput reports create fields that must be present even when
// their zero value would pass ValidatePlace.
func ValidatePlaceInput(in model.PlaceInput) []errs.FieldError {
	var out []errs.FieldError
	if in.Latitude == nil {
		out = append(out, errs.FieldError{Field: "latitude", Kind: errs.ViolationRequired, Message: "Latitude is required"})
	}
	if in.Longitude == nil {
		out = append(out, errs.FieldError{Field: "longitude", Kind: errs.ViolationRequired, Message: "Longitude is required"})
	}
	return out
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(plain string) []errs.FieldError {
	if strings.TrimSpace(plain) == "" {
		return []errs.FieldError{{Field: "password", Kind: errs.ViolationRequired, Message: "Password is required"}}
	}
	if len(plain) > MaxPasswordBytes {
		return []errs.FieldError{{
			Field:   "password",
			Kind:    errs.ViolationTooLong,
			Message: fmt.Sprintf("Password must be %d bytes or less", MaxPasswordBytes),
		}}
	}
	return nil
}

func check(v any) []errs.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return []errs.FieldError{{Field: "", Kind: errs.ViolationInvalidFormat, Message: err.Error()}}
	}
	out := make([]errs.FieldError, 0, len(ves))
	for _, fe := range ves {
		out = append(out, toFieldError(fe))
	}
	return out
}

func toFieldError(fe validator.FieldError) errs.FieldError {
	field := fe.Field()
	label := humanize(field)
	out := errs.FieldError{Field: field}

	switch fe.Tag() {
	case "required", "notblank":
		out.Kind = errs.ViolationRequired
		out.Message = label + " is required"
	case "max":
		out.Kind = errs.ViolationTooLong
		out.Message = fmt.Sprintf("%s must be %s characters or less", label, fe.Param())
	case "email_address":
		out.Kind = errs.ViolationInvalidFormat
		out.Message = "Invalid email format"
	case "gt":
		out.Kind = errs.ViolationOutOfRange
		if fe.Param() == "0" {
			out.Message = label + " must be a positive number"
		} else {
			out.Message = fmt.Sprintf("%s must be greater than %s", label, fe.Param())
		}
	case "gte":
		out.Kind = errs.ViolationOutOfRange
		out.Message = fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "lte":
		out.Kind = errs.ViolationOutOfRange
		out.Message = fmt.Sprintf("%s must be at most %s", label, fe.Param())
	default:
		out.Kind = errs.ViolationInvalidFormat
		out.Message = fmt.Sprintf("%s is invalid", label)
	}
	return out
}

// humanize turns "first_name" into "First name".
func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
