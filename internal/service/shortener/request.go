package shortener

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/zaz600/go-shortener-cli/internal/entity"
)

const (
	shortURLParam  = "shortUrl="
	projectionFull = "projection=FULL"
	keyParam       = "key="
)

// createRequestBody тело запроса на сокращение ссылки
type createRequestBody struct {
	LongURL string `json:"longUrl"`
}

// BuildRequest строит запрос к API для одной ссылки.
// Ссылка не проверяется и не экранируется: попадает в адрес или тело запроса как есть.
func (s *Service) BuildRequest(action entity.Action, inputURL string) (entity.RequestSpec, error) {
	h, err := handlerFor(action)
	if err != nil {
		return entity.RequestSpec{}, err
	}
	return h.build(s, inputURL)
}

func (s *Service) createRequest(longURL string) (entity.RequestSpec, error) {
	body, err := encodeCreateBody(longURL)
	if err != nil {
		return entity.RequestSpec{}, err
	}
	return entity.NewJSONRequest(s.withKey(s.apiURL), body), nil
}

func (s *Service) expandRequest(shortURL string) (entity.RequestSpec, error) {
	return entity.NewGetRequest(s.withKey(s.apiURL + "?" + shortURLParam + shortURL)), nil
}

func (s *Service) statsRequest(shortURL string) (entity.RequestSpec, error) {
	return entity.NewGetRequest(s.withKey(s.apiURL + "?" + shortURLParam + shortURL + "&" + projectionFull)), nil
}

// withKey дописывает к адресу ключ API, если он задан
func (s *Service) withKey(endpoint string) string {
	if s.apiKey == "" {
		return endpoint
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + keyParam + s.apiKey
}

func encodeCreateBody(longURL string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(createRequestBody{LongURL: longURL}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
