package httpcontroller

const urlKind = "urlshortener#url"

// InsertRequest запрос на сокращение ссылки
type InsertRequest struct {
	LongURL string `json:"longUrl"`
}

// URLResponse ответ с информацией о короткой ссылке.
// Created и Analytics заполняются только при запросе с projection.
type URLResponse struct {
	Kind      string     `json:"kind"`
	ID        string     `json:"id"`
	LongURL   string     `json:"longUrl"`
	Status    string     `json:"status,omitempty"`
	Created   string     `json:"created,omitempty"`
	Analytics *Analytics `json:"analytics,omitempty"`
}

type Analytics struct {
	AllTime AnalyticsPeriod `json:"allTime"`
}

// AnalyticsPeriod счетчики переходов. Как и в настоящем API, числа передаются строками.
type AnalyticsPeriod struct {
	ShortURLClicks string `json:"shortUrlClicks"`
	LongURLClicks  string `json:"longUrlClicks"`
}

// ErrorResponse ответ с ошибкой в формате Google API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Errors  []ErrorItem `json:"errors"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
}

type ErrorItem struct {
	Domain   string `json:"domain"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}
