package lindle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report wire field names so errors match what the server sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeObject unmarshals a JSON object body into v and, unless the client is
// lenient, validates it.
func (c *Client) decodeObject(endpoint string, data []byte, v any) error {
	if err := checkShape(data, '{', c.lenient); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	if c.lenient {
		return nil
	}
	if err := validateStruct(v); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// decodeList unmarshals a JSON array body into a slice of wire structs and,
// unless the client is lenient, validates every element. All element
// failures are reported together.
func decodeList[T any](c *Client, endpoint string, data []byte) ([]T, error) {
	if err := checkShape(data, '[', c.lenient); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if c.lenient {
		return items, nil
	}
	if err := validateList(items); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return items, nil
}

func validateList[T any](items []T) error {
	var result *multierror.Error
	for i := range items {
		if err := validateStruct(&items[i]); err != nil {
			result = multierror.Append(result, fmt.Errorf("[%d]: %w", i, err))
		}
	}
	return result.ErrorOrNil()
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var result *multierror.Error
	for _, fe := range validationErrors {
		result = multierror.Append(result,
			fmt.Errorf("field %q failed on %q", fe.Field(), fe.Tag()))
	}
	return result.ErrorOrNil()
}

// checkShape verifies that the body holds a top-level JSON value of the
// expected kind. A lenient client accepts null for arrays.
func checkShape(data []byte, want byte, lenient bool) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrEmptyBody
	}
	if trimmed[0] == want {
		return nil
	}
	if lenient && want == '[' && bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return fmt.Errorf("%w: expected %s", ErrUnexpectedShape, shapeName(want))
}

func shapeName(b byte) string {
	if b == '[' {
		return "array"
	}
	return "object"
}
