package transport

import (
	"fmt"
)

// TransportError запрос к API не выполнен: нет соединения, истек таймаут
// или сервер вернул код ответа, отличный от 2xx.
// StatusCode равен 0, если ответа от сервера не было.
type TransportError struct {
	Method     string
	Endpoint   string
	StatusCode int
	// Body тело ответа с ошибкой, если сервер его прислал
	Body []byte
	err  error
}

func NewTransportError(method, endpoint string, err error) *TransportError {
	return &TransportError{Method: method, Endpoint: endpoint, err: err}
}

func NewStatusError(method, endpoint string, statusCode int, body []byte) *TransportError {
	return &TransportError{Method: method, Endpoint: endpoint, StatusCode: statusCode, Body: body}
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected http status %d", e.Method, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.err)
}

func (e *TransportError) Unwrap() error {
	return e.err
}
