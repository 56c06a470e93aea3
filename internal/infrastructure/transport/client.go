package transport

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-shortener-cli/internal/entity"
)

// Client отправляет запросы к API сокращателя ссылок.
// Повторных попыток не делает: любая ошибка сразу возвращается вызывающему.
type Client struct {
	resty *resty.Client
}

type Option func(*Client)

// WithTimeout таймаут одного запроса. 0 - без таймаута.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.resty.SetTimeout(timeout)
	}
}

// WithDebug включает вывод подробностей запросов и ответов в лог
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.resty.SetDebug(debug)
	}
}

// WithInsecure отключает проверку сертификата сервера
func WithInsecure(insecure bool) Option {
	return func(c *Client) {
		if insecure {
			c.resty.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		resty: resty.New().
			SetRetryCount(0).
			SetLogger(restyLogger{logger: log.Logger}),
	}
	c.resty.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		log.Debug().
			Str("method", r.Method).
			Str("url", r.URL).
			Interface("headers", r.Header).
			Msg("request details")
		return nil
	})
	c.resty.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		log.Debug().
			Str("method", r.Request.Method).
			Str("url", r.Request.URL).
			Int("status", r.StatusCode()).
			Dur("elapsed", r.Time()).
			Msg("response received")
		return nil
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send выполняет запрос и возвращает тело ответа.
// Адрес из req.Endpoint используется как есть.
// При ошибке соединения или коде ответа не 2xx возвращает *TransportError.
func (c *Client) Send(ctx context.Context, req entity.RequestSpec) ([]byte, error) {
	r := c.resty.R().
		SetContext(ctx).
		SetHeaders(req.Headers)
	if req.HasBody() {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Endpoint)
	if err != nil {
		return nil, NewTransportError(req.Method, req.Endpoint, err)
	}
	if !resp.IsSuccess() {
		log.Warn().
			Str("method", req.Method).
			Str("url", req.Endpoint).
			Int("status", resp.StatusCode()).
			Bytes("body", resp.Body()).
			Msg("unexpected response status")
		return nil, NewStatusError(req.Method, req.Endpoint, resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}
