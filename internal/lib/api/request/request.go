package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// Common errors
var (
	ErrEmptyBody  = errors.New("request body is empty")
	ErrValidation = errors.New("validation failed")
)

// Binder is an interface for entities that can validate themselves
type Binder interface {
	Bind(*http.Request) error
}

// Decode decodes the JSON request body into target. When target implements
// Binder, it is validated after decoding.
func Decode[T any](r *http.Request, target *T) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if binder, ok := any(target).(Binder); ok {
		if err := binder.Bind(r); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}

// QueryString returns the trimmed query parameter or def when absent.
func QueryString(r *http.Request, name, def string) string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return def
	}
	return v
}

// QueryInt parses an integer query parameter; absent means def.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}
