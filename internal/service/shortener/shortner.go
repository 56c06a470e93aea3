package shortener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-shortener-cli/internal/entity"
	"github.com/zaz600/go-shortener-cli/internal/infrastructure/transport"
)

var ErrUnknownAction = errors.New("unknown action")

// Transport отправляет запрос к API и возвращает тело успешного ответа
type Transport interface {
	Send(ctx context.Context, req entity.RequestSpec) ([]byte, error)
}

// Service выполняет выбранное действие над списком ссылок:
// строит запрос, отправляет его, разбирает ответ и печатает результат.
type Service struct {
	apiURL    string
	apiKey    string
	transport Transport
	output    io.Writer
}

// NewService apiURL - базовый адрес API, apiKey - необязательный ключ API.
func NewService(apiURL string, apiKey string, opts ...Option) *Service {
	s := &Service{
		apiURL: apiURL,
		apiKey: apiKey,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			log.Panic().Err(err).Msg("")
		}
	}

	if s.transport == nil {
		s.transport = transport.NewClient()
	}
	if s.output == nil {
		s.output = os.Stdout
	}
	return s
}

// Run обрабатывает ссылки строго по порядку, по одной.
// Первая же ошибка прерывает обработку оставшихся ссылок,
// результаты уже обработанных к этому моменту напечатаны.
func (s *Service) Run(ctx context.Context, action entity.Action, rawOutput bool, inputURLs []string) error {
	h, err := handlerFor(action)
	if err != nil {
		return err
	}

	for _, inputURL := range inputURLs {
		req, err := h.build(s, inputURL)
		if err != nil {
			return fmt.Errorf("%s %s: %w", action, inputURL, err)
		}

		body, err := s.transport.Send(ctx, req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", action, inputURL, err)
		}

		result, err := h.parse(body)
		if err != nil {
			return fmt.Errorf("%s %s: %w", action, inputURL, err)
		}

		if err := s.render(h, rawOutput, result); err != nil {
			return err
		}
		log.Debug().Str("action", action.String()).Str("url", inputURL).Msg("url processed")
	}
	return nil
}

// Send отправляет запрос и разбирает ответ согласно действию
func (s *Service) Send(ctx context.Context, action entity.Action, req entity.RequestSpec) (entity.Result, error) {
	h, err := handlerFor(action)
	if err != nil {
		return nil, err
	}
	body, err := s.transport.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return h.parse(body)
}

// actionHandler построитель запроса, разборщик ответа и печать результата для одного действия
type actionHandler struct {
	build  func(s *Service, inputURL string) (entity.RequestSpec, error)
	parse  func(body []byte) (entity.Result, error)
	render renderFunc
}

func handlerFor(action entity.Action) (actionHandler, error) {
	switch action {
	case entity.ActionCreate:
		return actionHandler{
			build:  (*Service).createRequest,
			parse:  parseCreate,
			render: renderAs(renderCreate),
		}, nil
	case entity.ActionExpand:
		return actionHandler{
			build:  (*Service).expandRequest,
			parse:  parseExpand,
			render: renderAs(renderExpand),
		}, nil
	case entity.ActionStats:
		return actionHandler{
			build:  (*Service).statsRequest,
			parse:  parseStats,
			render: renderAs(renderStats),
		}, nil
	}
	return actionHandler{}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
}
