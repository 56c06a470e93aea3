package shortener

import (
	"fmt"

	"github.com/zaz600/go-shortener-cli/internal/entity"
)

// DecodeError тело ответа API не является корректным JSON
type DecodeError struct {
	Action entity.Action
	Body   []byte
	err    error
}

func NewDecodeError(action entity.Action, body []byte, err error) *DecodeError {
	return &DecodeError{Action: action, Body: body, err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("can't decode %s response: %v", e.Action, e.err)
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// MalformedResponseError в ответе API нет поля, обязательного для действия,
// или у поля неожиданный тип.
// Field путь к полю через точку, например analytics.allTime.
type MalformedResponseError struct {
	Action entity.Action
	Field  string
	err    error
}

func NewMissingFieldError(action entity.Action, field string) *MalformedResponseError {
	return &MalformedResponseError{Action: action, Field: field}
}

func NewMalformedResponseError(action entity.Action, field string, err error) *MalformedResponseError {
	return &MalformedResponseError{Action: action, Field: field, err: err}
}

func (e *MalformedResponseError) Error() string {
	switch {
	case e.err == nil:
		return fmt.Sprintf("malformed %s response: field %q is missing", e.Action, e.Field)
	case e.Field == "":
		return fmt.Sprintf("malformed %s response: %v", e.Action, e.err)
	}
	return fmt.Sprintf("malformed %s response: field %q: %v", e.Action, e.Field, e.err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.err
}
