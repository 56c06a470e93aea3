package shortener

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"

	"github.com/zaz600/go-shortener-cli/internal/entity"
)

// apiResponse ответ API. Поля - указатели, чтобы отличать отсутствующее поле от пустого.
type apiResponse struct {
	LongURL   *string    `json:"longUrl"`
	ID        *string    `json:"id"`
	Status    *string    `json:"status"`
	Created   *string    `json:"created"`
	Analytics *analytics `json:"analytics"`
}

type analytics struct {
	AllTime *analyticsPeriod `json:"allTime"`
}

type analyticsPeriod struct {
	ShortURLClicks *clicks `json:"shortUrlClicks"`
	LongURLClicks  *clicks `json:"longUrlClicks"`
}

// clicks счетчик переходов. API отдает его строкой, например "5", но число тоже принимаем.
type clicks int64

func (c *clicks) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "clicks " + string(data), Type: reflect.TypeOf(int64(0))}
	}
	*c = clicks(v)
	return nil
}

// Parse разбирает тело ответа API в результат, соответствующий действию
func Parse(action entity.Action, body []byte) (entity.Result, error) {
	h, err := handlerFor(action)
	if err != nil {
		return nil, err
	}
	return h.parse(body)
}

func decode(action entity.Action, body []byte) (apiResponse, error) {
	var resp apiResponse
	err := json.Unmarshal(body, &resp)
	if err == nil {
		return resp, nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return resp, NewDecodeError(action, body, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return resp, NewMalformedResponseError(action, typeErr.Field, err)
	}
	return resp, NewMalformedResponseError(action, "", err)
}

// fields проверяет наличие обязательных полей и запоминает первое отсутствующее
type fields struct {
	action entity.Action
	err    error
}

func (f *fields) missing(name string) {
	if f.err == nil {
		f.err = NewMissingFieldError(f.action, name)
	}
}

func (f *fields) str(name string, v *string) string {
	if v == nil {
		f.missing(name)
		return ""
	}
	return *v
}

func (f *fields) clicks(name string, v *clicks) int64 {
	if v == nil {
		f.missing(name)
		return 0
	}
	return int64(*v)
}

func parseCreate(body []byte) (entity.Result, error) {
	resp, err := decode(entity.ActionCreate, body)
	if err != nil {
		return nil, err
	}
	f := fields{action: entity.ActionCreate}
	result := entity.CreateResult{
		LongURL: f.str("longUrl", resp.LongURL),
		ID:      f.str("id", resp.ID),
	}
	if f.err != nil {
		return nil, f.err
	}
	return result, nil
}

func parseExpand(body []byte) (entity.Result, error) {
	resp, err := decode(entity.ActionExpand, body)
	if err != nil {
		return nil, err
	}
	f := fields{action: entity.ActionExpand}
	result := entity.ExpandResult{
		LongURL: f.str("longUrl", resp.LongURL),
		ID:      f.str("id", resp.ID),
		Status:  f.str("status", resp.Status),
	}
	if f.err != nil {
		return nil, f.err
	}
	return result, nil
}

func parseStats(body []byte) (entity.Result, error) {
	resp, err := decode(entity.ActionStats, body)
	if err != nil {
		return nil, err
	}
	f := fields{action: entity.ActionStats}
	result := entity.StatsResult{
		LongURL: f.str("longUrl", resp.LongURL),
		ID:      f.str("id", resp.ID),
		Status:  f.str("status", resp.Status),
		Created: f.str("created", resp.Created),
	}

	var allTime analyticsPeriod
	switch {
	case resp.Analytics == nil:
		f.missing("analytics")
	case resp.Analytics.AllTime == nil:
		f.missing("analytics.allTime")
	default:
		allTime = *resp.Analytics.AllTime
	}
	result.ShortURLClicks = f.clicks("analytics.allTime.shortUrlClicks", allTime.ShortURLClicks)
	result.LongURLClicks = f.clicks("analytics.allTime.longUrlClicks", allTime.LongURLClicks)

	if f.err != nil {
		return nil, f.err
	}
	return result, nil
}
