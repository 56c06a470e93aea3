package httpcontroller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-shortener-cli/internal/entity"
	"github.com/zaz600/go-shortener-cli/internal/infrastructure/repository"
)

// APIPath путь, по которому эмулятор отвечает как URL Shortener API v1
const APIPath = "/urlshortener/v1/url"

// createdLayout формат даты создания ссылки в ответах API
const createdLayout = "2006-01-02T15:04:05.000-07:00"

// maxPutAttempts сколько раз пробовать сгенерировать свободный идентификатор ссылки
const maxPutAttempts = 5

// ShortenerController эмулятор Google URL Shortener API v1.
// Короткие ссылки имеют вид {baseURL}/{linkID}, переход по ним учитывается в статистике.
type ShortenerController struct {
	*chi.Mux
	baseURL         string
	apiKey          string
	linksRepository repository.LinksRepository
}

type Option func(*ShortenerController)

// WithRepository указание хранилища ссылок
func WithRepository(linksRepository repository.LinksRepository) Option {
	return func(c *ShortenerController) {
		c.linksRepository = linksRepository
	}
}

// WithAPIKey если ключ задан, запросы к API без него отклоняются
func WithAPIKey(apiKey string) Option {
	return func(c *ShortenerController) {
		c.apiKey = apiKey
	}
}

func New(baseURL string, opts ...Option) *ShortenerController {
	c := &ShortenerController{
		Mux:     chi.NewRouter(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.linksRepository == nil {
		c.linksRepository = repository.NewInMemoryLinksRepository(nil)
	}
	c.setupHandlers()
	return c
}

// setupHandlers настройка роутинга и middleware
func (s ShortenerController) setupHandlers() {
	s.Use(middleware.RequestID)
	s.Use(middleware.RealIP)
	s.Use(RequestLogger)
	s.Use(middleware.Recoverer)
	s.Use(middleware.Timeout(10 * time.Second))
	s.Use(middleware.Compress(5))

	s.With(s.checkAPIKey).Post(APIPath, s.Insert())
	s.With(s.checkAPIKey).Get(APIPath, s.Expand())
	s.Get("/{linkID}", s.Redirect())
}

// ShortURL короткая ссылка по ее идентификатору
func (s ShortenerController) ShortURL(linkID string) string {
	return s.baseURL + "/" + linkID
}

// Insert возвращает http.HandlerFunc для обработки запроса на сокращение ссылки.
// Ссылка передается в http Body в виде JSON в формате InsertRequest.
// Повторное сокращение той же ссылки возвращает ту же короткую ссылку.
func (s ShortenerController) Insert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request InsertRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeError(w, http.StatusBadRequest, "parseError", "This API does not support parsing form-encoded input.")
			return
		}
		if request.LongURL == "" {
			writeError(w, http.StatusBadRequest, "required", "Required")
			return
		}

		linkEntity, err := s.putLink(r.Context(), request.LongURL)
		if err != nil && !errors.Is(err, repository.ErrLinkExists) {
			log.Warn().Err(err).Str("long_url", request.LongURL).Msg("")
			writeError(w, http.StatusInternalServerError, "backendError", "Backend Error")
			return
		}

		writeJSON(w, http.StatusOK, URLResponse{
			Kind:    urlKind,
			ID:      s.ShortURL(linkEntity.ID),
			LongURL: linkEntity.LongURL,
		})
	}
}

// putLink сохраняет длинную ссылку под новым случайным идентификатором.
// При совпадении идентификатора с уже занятым пробует еще раз.
func (s ShortenerController) putLink(ctx context.Context, longURL string) (entity.LinkEntity, error) {
	var err error
	for i := 0; i < maxPutAttempts; i++ {
		var linkEntity entity.LinkEntity
		linkEntity, err = s.linksRepository.PutIfAbsent(ctx, entity.NewLinkEntity(longURL))
		if !errors.Is(err, repository.ErrLinkIDTaken) {
			return linkEntity, err
		}
		log.Debug().Str("link_id", linkEntity.ID).Msg("link id collision, retry")
	}
	return entity.LinkEntity{}, err
}

// Expand возвращает http.HandlerFunc для обработки запроса на разворачивание короткой ссылки.
// Короткая ссылка передается в параметре shortUrl.
// С projection=FULL в ответ добавляются дата создания и статистика переходов,
// с projection=ANALYTICS_CLICKS - только статистика.
func (s ShortenerController) Expand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shortURL := r.URL.Query().Get("shortUrl")
		if shortURL == "" {
			writeError(w, http.StatusBadRequest, "required", "Required parameter: shortUrl")
			return
		}
		linkID, ok := s.linkID(shortURL)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid", "Invalid Value")
			return
		}

		linkEntity, err := s.linksRepository.Get(r.Context(), linkID)
		if err != nil {
			if errors.Is(err, repository.ErrLinkNotFound) {
				writeError(w, http.StatusNotFound, "notFound", "Not Found")
				return
			}
			log.Warn().Err(err).Str("link_id", linkID).Msg("")
			writeError(w, http.StatusInternalServerError, "backendError", "Backend Error")
			return
		}

		resp := URLResponse{
			Kind:    urlKind,
			ID:      s.ShortURL(linkEntity.ID),
			LongURL: linkEntity.LongURL,
			Status:  "OK",
		}
		switch r.URL.Query().Get("projection") {
		case "FULL":
			resp.Created = linkEntity.Created.Format(createdLayout)
			resp.Analytics = analyticsOf(linkEntity)
		case "ANALYTICS_CLICKS":
			resp.Analytics = analyticsOf(linkEntity)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Redirect возвращает http.HandlerFunc для перехода по короткой ссылке.
// Каждый переход увеличивает счетчики ссылки.
func (s ShortenerController) Redirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		linkID := chi.URLParam(r, "linkID")

		linkEntity, err := s.linksRepository.Click(r.Context(), linkID)
		if err != nil {
			http.Error(w, "url not found", http.StatusNotFound)
			return
		}
		http.Redirect(w, r, linkEntity.LongURL, http.StatusMovedPermanently)
	}
}

// checkAPIKey middleware проверки ключа API из параметра key
func (s ShortenerController) checkAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.URL.Query().Get("key") != s.apiKey {
			writeError(w, http.StatusBadRequest, "keyInvalid", "Bad Request")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// linkID извлекает идентификатор из короткой ссылки.
// Схема в короткой ссылке может отсутствовать: localhost:8080/abc.
func (s ShortenerController) linkID(shortURL string) (string, bool) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", false
	}
	if !strings.Contains(shortURL, "://") {
		shortURL = base.Scheme + "://" + shortURL
	}
	u, err := url.Parse(shortURL)
	if err != nil || u.Host != base.Host {
		return "", false
	}
	linkID := strings.TrimPrefix(u.Path, "/")
	if linkID == "" || strings.Contains(linkID, "/") {
		return "", false
	}
	return linkID, true
}

func analyticsOf(e *entity.LinkEntity) *Analytics {
	return &Analytics{
		AllTime: AnalyticsPeriod{
			ShortURLClicks: strconv.FormatInt(e.ShortURLClicks, 10),
			LongURLClicks:  strconv.FormatInt(e.LongURLClicks, 10),
		},
	}
}

// writeJSON обертка для упрощения записи ответа на запросы
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, statusCode int, reason string, message string) {
	writeJSON(w, statusCode, ErrorResponse{
		Error: ErrorBody{
			Errors:  []ErrorItem{{Domain: "global", Reason: reason, Message: message}},
			Code:    statusCode,
			Message: message,
		},
	})
}
