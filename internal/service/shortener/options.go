package shortener

import (
	"errors"
	"io"
)

type Option func(*Service) error

// WithTransport указание клиента, через который отправляются запросы к API
func WithTransport(t Transport) Option {
	return func(s *Service) error {
		if t == nil {
			return errors.New("transport is nil")
		}
		s.transport = t
		return nil
	}
}

// WithOutput куда печатать результаты. По умолчанию os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Service) error {
		if w == nil {
			return errors.New("output is nil")
		}
		s.output = w
		return nil
	}
}
