package controller

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgRequired     = "This field is required."
	msgEmailInvalid = "Please enter a valid email address."
	msgEmailExists  = "This email is already in use."
	msgSelectDate   = "Please select a date."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures under the json field name the form renders next to.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors maps struct validation failures to per-field inline messages.
func fieldErrors(input any) map[string]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	issues, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": msgGenericError}
	}
	out := make(map[string]string, len(issues))
	for _, issue := range issues {
		message := msgRequired
		if issue.Tag() == "email" {
			message = msgEmailInvalid
		}
		out[issue.Field()] = message
	}
	return out
}
