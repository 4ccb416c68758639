package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	objectIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)
	handlePattern   = regexp.MustCompile(`^[a-zA-Z0-9]*[a-zA-Z][a-zA-Z0-9]*$`)

	socialPatterns = map[string]*regexp.Regexp{
		"youtube":   regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/(channel/|c/|user/|@)[\w\-.]+/?$`),
		"twitter":   regexp.MustCompile(`^(https?://)?(www\.)?(twitter|x)\.com/@?[A-Za-z0-9_]{1,15}/?$`),
		"facebook":  regexp.MustCompile(`^(https?://)?(www\.|m\.)?(facebook|fb)\.com/[\w\-.]+/?$`),
		"linkedin":  regexp.MustCompile(`^(https?://)?([a-z]{2,3}\.)?linkedin\.com/(in|company)/[\w\-%]+/?$`),
		"instagram": regexp.MustCompile(`^(https?://)?(www\.)?instagram\.com/[\w.]+/?$`),
	}
)

// Error is the first rule violation found in an input. Field is the JSON path
// of the offending value, e.g. "experience[0].to".
type Error struct {
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries an *Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

var validate = newValidator()

// now is the clock the date range rule compares against.
var now = time.Now

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names so messages match what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "objectid", func(fl validator.FieldLevel) bool {
		return objectIDPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "social", func(fl validator.FieldLevel) bool {
		re, ok := socialPatterns[fl.Param()]
		return ok && re.MatchString(fl.Field().String())
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(ExperienceInput)
		checkDateRange(sl, in.From, in.To)
	}, ExperienceInput{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(EducationInput)
		checkDateRange(sl, in.From, in.To)
	}, EducationInput{})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		// ALLOW-PANIC: registration only fails on programmer error
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// checkDateRange enforces from < to <= now when to is present.
func checkDateRange(sl validator.StructLevel, from, to *Date) {
	if from == nil || to == nil {
		return
	}
	if !to.After(from.Time) {
		sl.ReportError(to, "to", "To", "gtfield", "from")
		return
	}
	if to.After(now()) {
		sl.ReportError(to, "to", "To", "lte", "now")
	}
}

// Validate validates v against its `validate` tags and returns the first
// violation as an *Error, or nil.
func Validate(v any) error {
	return firstViolation(validate.Struct(v), "")
}

// ID checks that s is a well-formed identifier. name labels the value in the
// resulting message.
func ID(name, s string) error {
	return firstViolation(validate.Var(s, "required,objectid"), name)
}

// Handle checks s against the profile handle rules.
func Handle(s string) error {
	return firstViolation(validate.Var(s, "required,max=40,handle"), "handle")
}

func firstViolation(err error, name string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	path := name
	if path == "" {
		path = fieldPath(fe.Namespace())
	}
	return &Error{
		Field:   path,
		Rule:    fe.Tag(),
		Message: message(fe, path),
	}
}

// fieldPath drops the top-level struct name from a namespace such as
// "ProfileInput.social.twitter".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError, path string) string {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", path)
	case "min":
		if isList {
			return fmt.Sprintf("%q must contain at least %s items", path, fe.Param())
		}
		return fmt.Sprintf("%q length must be at least %s characters long", path, fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("%q must contain less than or equal to %s items", path, fe.Param())
		}
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", path, fe.Param())
	case "notblank":
		return fmt.Sprintf("%q is not allowed to be empty", path)
	case "email":
		return fmt.Sprintf("%q must be a valid email", path)
	case "url":
		return fmt.Sprintf("%q must be a valid uri", path)
	case "objectid":
		return fmt.Sprintf("%q with value %q fails to match the required pattern: %s",
			path, fmt.Sprint(fe.Value()), objectIDPattern.String())
	case "handle":
		return fmt.Sprintf("%q with value %q fails to match the handle pattern", path, fmt.Sprint(fe.Value()))
	case "social":
		return fmt.Sprintf("%q with value %q fails to match the %s pattern", path, fmt.Sprint(fe.Value()), fe.Param())
	case "gtfield":
		return fmt.Sprintf("%q must be greater than %q", path, fe.Param())
	case "lte":
		return fmt.Sprintf("%q must be less than or equal to %q", path, fe.Param())
	default:
		return fmt.Sprintf("%q failed on the %s rule", path, fe.Tag())
	}
}
