package shortener

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaz600/go-shortener-cli/internal/entity"
	"github.com/zaz600/go-shortener-cli/internal/infrastructure/transport"
)

const apiURL = "https://www.googleapis.com/urlshortener/v1/url"

// fakeTransport отдает заранее заданные ответы по порядку и запоминает запросы
type fakeTransport struct {
	responses []string
	// failAt номер вызова (с нуля), на котором вернуть ошибку. -1 - без ошибок.
	failAt   int
	requests []entity.RequestSpec
}

func newFakeTransport(responses ...string) *fakeTransport {
	return &fakeTransport{responses: responses, failAt: -1}
}

func (f *fakeTransport) Send(_ context.Context, req entity.RequestSpec) ([]byte, error) {
	n := len(f.requests)
	f.requests = append(f.requests, req)
	if n == f.failAt {
		return nil, transport.NewStatusError(req.Method, req.Endpoint, http.StatusInternalServerError, nil)
	}
	return []byte(f.responses[n%len(f.responses)]), nil
}

func newTestService(t *testing.T, apiKey string, tr Transport) (*Service, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return NewService(apiURL, apiKey, WithTransport(tr), WithOutput(out)), out
}

func TestService_BuildRequest(t *testing.T) {
	type want struct {
		method   string
		endpoint string
		headers  map[string]string
		body     string
	}
	tests := []struct {
		name     string
		action   entity.Action
		apiKey   string
		inputURL string
		want     want
	}{
		{
			name:     "create",
			action:   entity.ActionCreate,
			inputURL: "http://example.com",
			want: want{
				method:   http.MethodPost,
				endpoint: apiURL,
				headers:  map[string]string{"Content-Type": "application/json"},
				body:     `{"longUrl":"http://example.com"}`,
			},
		},
		{
			name:     "create with key",
			action:   entity.ActionCreate,
			apiKey:   "secret",
			inputURL: "http://example.com/?a=1&b=<2>",
			want: want{
				method:   http.MethodPost,
				endpoint: apiURL + "?key=secret",
				headers:  map[string]string{"Content-Type": "application/json"},
				body:     `{"longUrl":"http://example.com/?a=1&b=<2>"}`,
			},
		},
		{
			name:     "expand",
			action:   entity.ActionExpand,
			inputURL: "http://goo.gl/abc123",
			want: want{
				method:   http.MethodGet,
				endpoint: apiURL + "?shortUrl=http://goo.gl/abc123",
			},
		},
		{
			name:     "expand with key",
			action:   entity.ActionExpand,
			apiKey:   "secret",
			inputURL: "http://goo.gl/abc123",
			want: want{
				method:   http.MethodGet,
				endpoint: apiURL + "?shortUrl=http://goo.gl/abc123&key=secret",
			},
		},
		{
			name:     "stats",
			action:   entity.ActionStats,
			inputURL: "http://goo.gl/abc123",
			want: want{
				method:   http.MethodGet,
				endpoint: apiURL + "?shortUrl=http://goo.gl/abc123&projection=FULL",
			},
		},
		{
			name:     "stats with key",
			action:   entity.ActionStats,
			apiKey:   "secret",
			inputURL: "http://goo.gl/abc123",
			want: want{
				method:   http.MethodGet,
				endpoint: apiURL + "?shortUrl=http://goo.gl/abc123&projection=FULL&key=secret",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService(t, tt.apiKey, newFakeTransport("{}"))
			req, err := s.BuildRequest(tt.action, tt.inputURL)
			require.NoError(t, err)

			assert.Equal(t, tt.want.method, req.Method)
			assert.Equal(t, tt.want.endpoint, req.Endpoint)
			if tt.want.headers == nil {
				assert.Empty(t, req.Headers)
			} else {
				assert.Equal(t, tt.want.headers, req.Headers)
			}
			if tt.want.body == "" {
				assert.False(t, req.HasBody())
			} else {
				assert.Equal(t, tt.want.body, string(req.Body))
			}
		})
	}
}

func TestService_BuildRequest_KeepsInputVerbatim(t *testing.T) {
	inputs := []string{
		"http://goo.gl/abc123",
		"goo.gl/abc123",
		"http://example.com/path with spaces?q=1&r=2#frag",
		"http://пример.рф/путь",
		`"quoted" \ back`,
		"",
	}
	s, _ := newTestService(t, "", newFakeTransport("{}"))
	for _, input := range inputs {
		for _, action := range []entity.Action{entity.ActionExpand, entity.ActionStats} {
			req, err := s.BuildRequest(action, input)
			require.NoError(t, err)
			assert.Contains(t, req.Endpoint, "shortUrl="+input, action.String())
		}

		req, err := s.BuildRequest(entity.ActionCreate, input)
		require.NoError(t, err)
		var body map[string]string
		require.NoError(t, json.Unmarshal(req.Body, &body))
		assert.Equal(t, map[string]string{"longUrl": input}, body)
	}
}

func TestService_BuildRequest_UnknownAction(t *testing.T) {
	s, _ := newTestService(t, "", newFakeTransport("{}"))
	_, err := s.BuildRequest(entity.Action(10), "http://example.com")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		action entity.Action
		body   string
		want   entity.Result
	}{
		{
			name:   "create",
			action: entity.ActionCreate,
			body:   `{"kind":"urlshortener#url","id":"http://goo.gl/abc123","longUrl":"http://example.com"}`,
			want:   entity.CreateResult{LongURL: "http://example.com", ID: "http://goo.gl/abc123"},
		},
		{
			name:   "expand",
			action: entity.ActionExpand,
			body:   `{"id":"http://goo.gl/abc123","longUrl":"http://example.com","status":"OK"}`,
			want:   entity.ExpandResult{LongURL: "http://example.com", ID: "http://goo.gl/abc123", Status: "OK"},
		},
		{
			name:   "stats with string counters",
			action: entity.ActionStats,
			body: `{"id":"http://goo.gl/abc123","longUrl":"http://example.com","status":"OK",
				"created":"2009-12-13T07:22:55.000+00:00",
				"analytics":{"allTime":{"shortUrlClicks":"5","longUrlClicks":"7"}}}`,
			want: entity.StatsResult{
				LongURL:        "http://example.com",
				ID:             "http://goo.gl/abc123",
				Status:         "OK",
				Created:        "2009-12-13T07:22:55.000+00:00",
				ShortURLClicks: 5,
				LongURLClicks:  7,
			},
		},
		{
			name:   "stats with number counters",
			action: entity.ActionStats,
			body: `{"id":"s","longUrl":"l","status":"OK","created":"c",
				"analytics":{"allTime":{"shortUrlClicks":5,"longUrlClicks":7},"month":{"shortUrlClicks":"1"}}}`,
			want: entity.StatsResult{LongURL: "l", ID: "s", Status: "OK", Created: "c", ShortURLClicks: 5, LongURLClicks: 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.action, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.action, got.Action())
		})
	}
}

func TestParse_DecodeError(t *testing.T) {
	for _, body := range []string{"", "not json", `{"id":`, "<html></html>"} {
		_, err := Parse(entity.ActionCreate, []byte(body))
		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr), "body %q: %v", body, err)
		assert.Equal(t, entity.ActionCreate, decodeErr.Action)
	}
}

func TestParse_MalformedResponse(t *testing.T) {
	tests := []struct {
		name      string
		action    entity.Action
		body      string
		wantField string
	}{
		{name: "create without id", action: entity.ActionCreate, body: `{"longUrl":"l"}`, wantField: "id"},
		{name: "create without longUrl", action: entity.ActionCreate, body: `{"id":"s"}`, wantField: "longUrl"},
		{name: "null id", action: entity.ActionCreate, body: `{"longUrl":"l","id":null}`, wantField: "id"},
		{name: "expand without status", action: entity.ActionExpand, body: `{"longUrl":"l","id":"s"}`, wantField: "status"},
		{
			name:      "stats without analytics",
			action:    entity.ActionStats,
			body:      `{"longUrl":"l","id":"s","status":"OK","created":"c"}`,
			wantField: "analytics",
		},
		{
			name:      "stats without allTime",
			action:    entity.ActionStats,
			body:      `{"longUrl":"l","id":"s","status":"OK","created":"c","analytics":{}}`,
			wantField: "analytics.allTime",
		},
		{
			name:      "stats without long url clicks",
			action:    entity.ActionStats,
			body:      `{"longUrl":"l","id":"s","status":"OK","created":"c","analytics":{"allTime":{"shortUrlClicks":"1"}}}`,
			wantField: "analytics.allTime.longUrlClicks",
		},
		{name: "not an object", action: entity.ActionExpand, body: `["l","s"]`, wantField: ""},
		{name: "id is a number", action: entity.ActionCreate, body: `{"longUrl":"l","id":1}`, wantField: "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.action, []byte(tt.body))
			var malformedErr *MalformedResponseError
			require.True(t, errors.As(err, &malformedErr), "%v", err)
			assert.Equal(t, tt.action, malformedErr.Action)
			assert.Equal(t, tt.wantField, malformedErr.Field)
		})
	}
}

func TestParse_InvalidClicks(t *testing.T) {
	body := `{"longUrl":"l","id":"s","status":"OK","created":"c","analytics":{"allTime":{"shortUrlClicks":"many","longUrlClicks":"7"}}}`
	_, err := Parse(entity.ActionStats, []byte(body))
	var malformedErr *MalformedResponseError
	require.True(t, errors.As(err, &malformedErr), "%v", err)
}

func TestService_Render(t *testing.T) {
	createResult := entity.CreateResult{LongURL: "http://example.com", ID: "http://goo.gl/abc123"}
	expandResult := entity.ExpandResult{LongURL: "http://example.com", ID: "http://goo.gl/abc123", Status: "OK"}
	statsResult := entity.StatsResult{
		LongURL:        "http://example.com",
		ID:             "http://goo.gl/abc123",
		Status:         "OK",
		Created:        "2009-12-13T07:22:55.000+00:00",
		ShortURLClicks: 5,
		LongURLClicks:  7,
	}
	statsOutput := "* URL Stats *\n" +
		"Long URL:\thttp://example.com\n" +
		"Short URL:\thttp://goo.gl/abc123\n" +
		"Link Status:\tOK\n" +
		"*** Details ***\n" +
		"Creation date:\t2009-12-13T07:22:55.000+00:00\n" +
		"Short URL clicks:\t5\n" +
		"Long URL clicks:\t7\n"

	tests := []struct {
		name      string
		rawOutput bool
		result    entity.Result
		want      string
	}{
		{
			name:   "create",
			result: createResult,
			want:   "* Shorten URL *\nLong URL:\thttp://example.com\nShort URL:\thttp://goo.gl/abc123\n",
		},
		{name: "create raw", rawOutput: true, result: createResult, want: "http://goo.gl/abc123\n"},
		{
			name:   "expand",
			result: expandResult,
			want:   "* Expand URL *\nLong URL:\thttp://example.com\nShort URL:\thttp://goo.gl/abc123\nLink Status:\tOK\n",
		},
		{name: "expand raw", rawOutput: true, result: expandResult, want: "http://goo.gl/abc123\n"},
		{name: "stats", result: statsResult, want: statsOutput},
		{name: "stats ignores raw", rawOutput: true, result: statsResult, want: statsOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := newTestService(t, "", newFakeTransport("{}"))
			require.NoError(t, s.Render(tt.rawOutput, tt.result))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestHandlerFor_Render(t *testing.T) {
	results := map[entity.Action]entity.Result{
		entity.ActionCreate: entity.CreateResult{ID: "http://goo.gl/abc123"},
		entity.ActionExpand: entity.ExpandResult{ID: "http://goo.gl/abc123"},
		entity.ActionStats:  entity.StatsResult{ID: "http://goo.gl/abc123"},
	}
	for action, own := range results {
		t.Run(action.String(), func(t *testing.T) {
			h, err := handlerFor(action)
			require.NoError(t, err)

			var b strings.Builder
			require.NoError(t, h.render(&b, true, own))
			assert.Contains(t, b.String(), "http://goo.gl/abc123")

			for other, result := range results {
				if other == action {
					continue
				}
				b.Reset()
				assert.Error(t, h.render(&b, false, result))
				assert.Empty(t, b.String())
			}
		})
	}
}

func TestService_Run_CreateScenario(t *testing.T) {
	tr := newFakeTransport(`{"longUrl":"http://example.com","id":"http://goo.gl/abc123"}`)
	s, out := newTestService(t, "", tr)

	err := s.Run(context.Background(), entity.ActionCreate, false, []string{"http://example.com"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Long URL:\thttp://example.com\n")
	assert.Contains(t, out.String(), "Short URL:\thttp://goo.gl/abc123\n")
	require.Len(t, tr.requests, 1)
	assert.Equal(t, http.MethodPost, tr.requests[0].Method)
}

func TestService_Run_StatsScenario(t *testing.T) {
	tr := newFakeTransport(`{"longUrl":"http://example.com","id":"http://goo.gl/abc123","status":"OK",
		"created":"2009-12-13T07:22:55.000+00:00","analytics":{"allTime":{"shortUrlClicks":5,"longUrlClicks":7}}}`)
	s, out := newTestService(t, "", tr)

	err := s.Run(context.Background(), entity.ActionStats, false, []string{"http://goo.gl/abc123"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Short URL clicks:\t5\n")
	assert.Contains(t, out.String(), "Long URL clicks:\t7\n")
	require.Len(t, tr.requests, 1)
	assert.Equal(t, apiURL+"?shortUrl=http://goo.gl/abc123&projection=FULL", tr.requests[0].Endpoint)
}

func TestService_Run_RawBatchKeepsOrder(t *testing.T) {
	tr := newFakeTransport(
		`{"longUrl":"http://a.com","id":"http://goo.gl/a"}`,
		`{"longUrl":"http://b.com","id":"http://goo.gl/b"}`,
		`{"longUrl":"http://c.com","id":"http://goo.gl/c"}`,
	)
	s, out := newTestService(t, "", tr)

	err := s.Run(context.Background(), entity.ActionCreate, true, []string{"http://a.com", "http://b.com", "http://c.com"})
	require.NoError(t, err)
	assert.Equal(t, "http://goo.gl/a\nhttp://goo.gl/b\nhttp://goo.gl/c\n", out.String())

	require.Len(t, tr.requests, 3)
	for i, input := range []string{"http://a.com", "http://b.com", "http://c.com"} {
		assert.Contains(t, string(tr.requests[i].Body), input)
	}
}

func TestService_Run_FailFast(t *testing.T) {
	const n = 5
	for k := 0; k < n; k++ {
		tr := newFakeTransport(`{"longUrl":"http://example.com","id":"http://goo.gl/abc123","status":"OK"}`)
		tr.failAt = k
		s, out := newTestService(t, "", tr)

		inputs := make([]string, n)
		for i := range inputs {
			inputs[i] = "http://goo.gl/abc123"
		}
		err := s.Run(context.Background(), entity.ActionExpand, true, inputs)
		require.Error(t, err)

		var transportErr *transport.TransportError
		assert.True(t, errors.As(err, &transportErr))
		assert.Len(t, tr.requests, k+1, "no requests after failure")
		assert.Equal(t, strings.Repeat("http://goo.gl/abc123\n", k), out.String(), "exactly %d renders", k)
	}
}

func TestService_Run_MalformedStopsBatch(t *testing.T) {
	tr := newFakeTransport(
		`{"longUrl":"http://example.com","id":"http://goo.gl/abc123","status":"OK"}`,
		`{"longUrl":"http://example.com","status":"OK"}`,
	)
	s, out := newTestService(t, "", tr)

	err := s.Run(context.Background(), entity.ActionExpand, true, []string{"u1", "u2", "u3"})
	var malformedErr *MalformedResponseError
	require.True(t, errors.As(err, &malformedErr))
	assert.Equal(t, "id", malformedErr.Field)
	assert.Equal(t, "http://goo.gl/abc123\n", out.String())
	assert.Len(t, tr.requests, 2)
}

func TestService_Run_DecodeErrorStopsBatch(t *testing.T) {
	tr := newFakeTransport(`<html>bad gateway</html>`)
	s, out := newTestService(t, "", tr)

	err := s.Run(context.Background(), entity.ActionCreate, false, []string{"u1", "u2"})
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Empty(t, out.String())
	assert.Len(t, tr.requests, 1)
}

func TestService_Run_UnknownAction(t *testing.T) {
	tr := newFakeTransport("{}")
	s, _ := newTestService(t, "", tr)

	err := s.Run(context.Background(), entity.Action(-1), false, []string{"u1"})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Empty(t, tr.requests)
}

func TestService_Send(t *testing.T) {
	tr := newFakeTransport(`{"longUrl":"http://example.com","id":"http://goo.gl/abc123","status":"OK"}`)
	s, _ := newTestService(t, "", tr)

	req, err := s.BuildRequest(entity.ActionExpand, "http://goo.gl/abc123")
	require.NoError(t, err)
	result, err := s.Send(context.Background(), entity.ActionExpand, req)
	require.NoError(t, err)
	assert.Equal(t, entity.ExpandResult{LongURL: "http://example.com", ID: "http://goo.gl/abc123", Status: "OK"}, result)
}

func TestNewService_NilOptionPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewService(apiURL, "", WithTransport(nil))
	})
	assert.Panics(t, func() {
		NewService(apiURL, "", WithOutput(nil))
	})
}
