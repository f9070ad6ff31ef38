// Package validation wraps go-playground/validator so that every failure is
// reported as a field -> human message map.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messager is implemented by request types that know how to phrase their
// own failures. Keys are "<field>.<tag>", e.g. "username.min". The "type"
// tag is used when the JSON value has the wrong type.
type Messager interface {
	ValidationMessages() map[string]string
}

// Errors maps a field name to the message shown to the client.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation: " + strings.Join(parts, "; ")
}

const fallbackMessage = "Invalid value"

// Validator satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return &Validator{v: v}
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "query", "param"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Validate returns nil or an Errors value.
func (v *Validator) Validate(i any) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := messagesOf(i)
	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = lookup(msgs, fe.Field(), fe.Tag())
	}
	return out
}

// FromDecode turns a JSON type mismatch into Errors using the messages of
// target. Other decode failures are returned as they are.
func FromDecode(err error, target any) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return err
	}
	field := typeErr.Field
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	if field == "" {
		return Errors{"body": "Request body must be a JSON object"}
	}
	return Errors{field: lookup(messagesOf(target), field, "type")}
}

func messagesOf(i any) map[string]string {
	if m, ok := i.(Messager); ok {
		return m.ValidationMessages()
	}
	return nil
}

func lookup(msgs map[string]string, field, tag string) string {
	if msg, ok := msgs[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := msgs[field]; ok {
		return msg
	}
	return fallbackMessage
}
