package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"booklog/internal/book"
	"booklog/internal/httpx"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("calendar_date", validateCalendarDate)
}

// validateCalendarDate accepts what a date input can submit: nothing, or a
// real YYYY-MM-DD date.
func validateCalendarDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(book.DateLayout, s)
	return err == nil
}

// ValidateStruct returns one detail per failed rule, keyed by JSON name.
func ValidateStruct(s any) []httpx.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []httpx.ErrorDetail{{Field: "body", Message: err.Error()}}
	}

	details := make([]httpx.ErrorDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()

		message := fmt.Sprintf("%s is invalid", field)
		if fe.Tag() == "calendar_date" {
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field)
		}

		details = append(details, httpx.ErrorDetail{Field: field, Message: message})
	}
	return details
}
