// Package schema validates raw form input into the payloads sent to the backend.
//
// Each schema is a pure function: it either returns the validated value or a set of
// field-level messages keyed by the field's wire name.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	OTPLength         = 6
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("password", strongPassword); err != nil {
		panic("schema: register password rule: " + err.Error())
	}
	return v
}

// strongPassword requires upper case, lower case, a digit and a symbol.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit, symbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// FieldErrors maps a field's wire name to the first message for that field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Result is either a validated value or the reasons it was rejected.
type Result[T any] struct {
	Value  T
	Errors FieldErrors
}

func (r Result[T]) OK() bool { return len(r.Errors) == 0 }

// OTP validates a one-time code submission for email.
func OTP(email, otp string) Result[models.OTPSubmission] {
	sub := models.OTPSubmission{
		Email: strings.TrimSpace(email),
		OTP:   strings.TrimSpace(otp),
	}
	return check(sub)
}

// Password validates a password submission for email. Passwords are taken verbatim.
func Password(email, password, confirm string) Result[models.PasswordSubmission] {
	sub := models.PasswordSubmission{
		Email:           strings.TrimSpace(email),
		Password:        password,
		ConfirmPassword: confirm,
	}
	return check(sub)
}

func check[T any](v T) Result[T] {
	err := validate.Struct(v)
	if err == nil {
		return Result[T]{Value: v}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result[T]{Value: v, Errors: FieldErrors{"": err.Error()}}
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		if _, seen := fe[e.Field()]; seen {
			continue
		}
		fe[e.Field()] = message(e)
	}
	return Result[T]{Value: v, Errors: fe}
}

var labels = map[string]string{
	"email":            "Email",
	"otp":              "OTP",
	"password":         "Password",
	"confirm_password": "Confirm password",
}

func message(e validator.FieldError) string {
	label, ok := labels[e.Field()]
	if !ok {
		label = e.Field()
	}

	switch e.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Email address is invalid"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", label, e.Param())
	case "number":
		return label + " must contain only digits"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	case "password":
		return "Password must contain upper and lower case letters, a digit and a symbol"
	case "eqfield":
		return "Passwords do not match"
	default:
		return label + " is invalid"
	}
}
