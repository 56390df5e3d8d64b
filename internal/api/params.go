/**
 * @description
 * This file parses the subscription listing query string. Missing values fall back
 * to the pagination defaults and bound violations are reported per field.
 */
package api

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/flowlytix/subscription-service/internal/app"
	"github.com/flowlytix/subscription-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseListSubscriptionsParams reads page, page_size, status and search from the
// query string and validates the pagination bounds.
func parseListSubscriptionsParams(query url.Values) (domain.ListSubscriptionsParams, []FieldError) {
	params := domain.ListSubscriptionsParams{
		Page:     app.DefaultPage,
		PageSize: app.DefaultPageSize,
		Status:   query.Get("status"),
		Search:   query.Get("search"),
	}

	var fieldErrors []FieldError
	if raw, ok := lookup(query, "page"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, FieldError{Field: "page", Message: "must be an integer", Value: raw})
		} else {
			params.Page = n
		}
	}
	if raw, ok := lookup(query, "page_size"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, FieldError{Field: "page_size", Message: "must be an integer", Value: raw})
		} else {
			params.PageSize = n
		}
	}
	if len(fieldErrors) > 0 {
		return params, fieldErrors
	}

	return params, validationErrors(validate.Struct(params))
}

func lookup(query url.Values, key string) (string, bool) {
	if _, ok := query[key]; !ok {
		return "", false
	}
	return strings.TrimSpace(query.Get(key)), true
}

func validationErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "query", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: describe(fe),
			Value:   fmt.Sprint(fe.Value()),
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
