// Package form validates write projections and collects field-level errors.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NonField keys messages that do not belong to a single field.
const NonField = "form"

var (
	validate = newValidator()

	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
)

// ValidationError maps a field name to the messages describing what is wrong with it.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Add appends a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no messages were added.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Err returns e as an error, or nil when it holds no messages.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Messages flattens all messages, ordered by field name.
func (e *ValidationError) Messages() []string {
	if e.Empty() {
		return []string{}
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var result []string
	for _, field := range fields {
		result = append(result, e.Fields[field]...)
	}

	return result
}

// AsValidation unwraps err into a *ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Validate checks v against its `validate` struct tags.
// Failures are returned as *ValidationError keyed by the json field name.
func Validate(v any) *ValidationError {
	ve := &ValidationError{}

	err := validate.Struct(v)
	if err == nil {
		return ve
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		ve.Add(NonField, err.Error())
		return ve
	}

	for _, fe := range fieldErrors {
		ve.Add(fe.Field(), message(fe))
	}

	return ve
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Select at least %s item(s).", fe.Param())
		}
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "The two password fields didn't match."
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}

	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}
