package entity

import "net/http"

// RequestSpec описание одного исходящего запроса к API сокращателя ссылок
type RequestSpec struct {
	// Method http-метод. Задается явно для каждого действия.
	Method string
	// Endpoint полный адрес запроса вместе с query string
	Endpoint string
	// Headers дополнительные заголовки. Для запросов с телом - Content-Type.
	Headers map[string]string
	// Body тело запроса. nil для запросов без тела.
	Body []byte
}

// HasBody true, если у запроса есть тело
func (r RequestSpec) HasBody() bool {
	return r.Body != nil
}

// NewGetRequest запрос без тела
func NewGetRequest(endpoint string) RequestSpec {
	return RequestSpec{
		Method:   http.MethodGet,
		Endpoint: endpoint,
	}
}

// NewJSONRequest POST-запрос с JSON в теле
func NewJSONRequest(endpoint string, body []byte) RequestSpec {
	return RequestSpec{
		Method:   http.MethodPost,
		Endpoint: endpoint,
		Headers:  map[string]string{"Content-Type": "application/json"},
		Body:     body,
	}
}
