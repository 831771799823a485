package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/axd-platform/catalog/infrastructure/api/middleware"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeBody reads a JSON body into dst and validates its struct tags.
// An empty body decodes to the zero value before validation.
func decodeBody(req *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err)
	}
	if err := validate.Struct(dst); err != nil {
		return middleware.NewAPIError(http.StatusBadRequest, validationMessage(err), err)
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", jsonName(fe)))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", jsonName(fe), fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", jsonName(fe), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", jsonName(fe)))
		}
	}
	return strings.Join(parts, "; ")
}

// jsonName converts a Go field name such as PurposeCategory to purpose_category.
func jsonName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// queryInt parses an integer query parameter. A missing parameter yields
// fallback.
func queryInt(req *http.Request, name string, fallback int) (int, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, middleware.NewAPIError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name), err)
	}
	return n, nil
}
