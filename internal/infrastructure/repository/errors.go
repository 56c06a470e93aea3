package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrLinkExists длинная ссылка уже сокращена
	ErrLinkExists = errors.New("link already exists")
	// ErrLinkIDTaken идентификатор короткой ссылки уже занят другой длинной ссылкой
	ErrLinkIDTaken = errors.New("link id already taken")
)

// LinkExistsError говорит о том, что длинную ссылку пытаются сократить повторно.
// Содержит идентификатор уже существующей короткой ссылки, errors.Is(err, ErrLinkExists) == true
type LinkExistsError struct {
	LinkID string
}

func NewLinkExistsError(linkID string) *LinkExistsError {
	return &LinkExistsError{LinkID: linkID}
}

func (e *LinkExistsError) Error() string {
	return fmt.Sprintf("%s. short link id: %s", ErrLinkExists, e.LinkID)
}

func (e *LinkExistsError) Unwrap() error {
	return ErrLinkExists
}
