package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/spf13/pflag"
	"github.com/zaz600/go-shortener-cli/internal/entity"
)

// DefaultAPIURL адрес Google URL Shortener API
const DefaultAPIURL = "https://www.googleapis.com/urlshortener/v1/url"

// ErrUsage неверные аргументы командной строки
var ErrUsage = errors.New("usage error")

// ShortenerConfig настройки клиента. Живут в течение одного запуска.
type ShortenerConfig struct {
	// APIURL базовый адрес API сокращателя ссылок
	APIURL string `env:"SHORTENER_API_URL" envDefault:"https://www.googleapis.com/urlshortener/v1/url"`
	// APIKey ключ API. Необязательный, если задан - добавляется к каждому запросу как ?key=
	APIKey string `env:"SHORTENER_API_KEY"`
	// Timeout таймаут одного http-запроса. 0 - без таймаута.
	Timeout time.Duration `env:"SHORTENER_TIMEOUT" envDefault:"10s"`
	// Verbose писать в лог подробности запросов
	Verbose bool `env:"SHORTENER_VERBOSE"`
	// Insecure не проверять сертификат сервера. Для эмулятора API с самоподписанным сертификатом.
	Insecure bool `env:"SHORTENER_INSECURE"`
}

// Options все, что нужно для запуска: настройки, действие и список ссылок
type Options struct {
	ShortenerConfig
	Action entity.Action
	// RawOutput печатать только короткую ссылку. Имеет смысл для create/expand.
	RawOutput bool
	URLs      []string
}

// GetConfig возвращает конфигурацию приложения, вычитывая в таком порядке
// env -> аргументы командной строки. args[0] - имя программы.
// Справка и ошибки разбора флагов пишутся в output.
// На -h/--help возвращается pflag.ErrHelp.
func GetConfig(args []string, output io.Writer) (*Options, error) {
	opts := &Options{}
	if err := env.Parse(&opts.ShortenerConfig); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	name := "shortener"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(output, "Simple console URL shortener.\n\nUsage: %s [flags] URL [URL...]\n\n", name)
		fs.PrintDefaults()
	}

	create := fs.BoolP("create", "c", false, "create new short url <default>")
	expand := fs.BoolP("expand", "e", false, "expand short url")
	stats := fs.BoolP("stats", "s", false, "show short url statistics")
	fs.BoolVarP(&opts.RawOutput, "raw_output", "r", false, "raw output (valid only with create/expand)")

	fs.StringVar(&opts.APIURL, "api-url", opts.APIURL, "url shortener API url. env: SHORTENER_API_URL")
	fs.StringVar(&opts.APIKey, "api-key", opts.APIKey, "url shortener API key. env: SHORTENER_API_KEY")
	fs.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "http request timeout, 0 - no timeout. env: SHORTENER_TIMEOUT")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "log request details. env: SHORTENER_VERBOSE")
	fs.BoolVar(&opts.Insecure, "insecure", opts.Insecure, "skip server certificate verification. env: SHORTENER_INSECURE")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		fs.Usage()
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	action, err := selectAction(*create, *expand, *stats)
	if err != nil {
		fs.Usage()
		return nil, err
	}
	opts.Action = action

	opts.URLs = fs.Args()
	if len(opts.URLs) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("%w: at least one URL is required", ErrUsage)
	}
	return opts, nil
}

// selectAction проверяет, что выбрано не больше одного действия.
// Если не выбрано ни одного - ActionCreate.
func selectAction(create, expand, stats bool) (entity.Action, error) {
	selected := 0
	action := entity.ActionCreate
	for _, f := range []struct {
		set    bool
		action entity.Action
	}{
		{create, entity.ActionCreate},
		{expand, entity.ActionExpand},
		{stats, entity.ActionStats},
	} {
		if f.set {
			selected++
			action = f.action
		}
	}
	if selected > 1 {
		return entity.ActionCreate, fmt.Errorf("%w: flags --create, --expand and --stats are mutually exclusive", ErrUsage)
	}
	return action, nil
}
