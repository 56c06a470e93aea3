package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/spf13/pflag"
)

// FakeAPIConfig настройки локального эмулятора API
type FakeAPIConfig struct {
	// ServerAddress адрес для прослушивания входящих запросов
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	// BaseURL базовый адрес коротких ссылок - {BaseURL}/{linkID}
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// APIKey если задан, запросы без ключа отклоняются
	APIKey string `env:"API_KEY"`
	// EnableHTTPS слушать https с самоподписанным сертификатом
	EnableHTTPS bool `env:"ENABLE_HTTPS"`
}

// GetFakeAPIConfig возвращает конфигурацию эмулятора, вычитывая в таком порядке
// env -> аргументы командной строки
func GetFakeAPIConfig(args []string, output io.Writer) (*FakeAPIConfig, error) {
	cfg := &FakeAPIConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	name := "fakeapi"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVarP(&cfg.ServerAddress, "address", "a", cfg.ServerAddress, "listen address. env: SERVER_ADDRESS")
	fs.StringVarP(&cfg.BaseURL, "base-url", "b", cfg.BaseURL, "base url for short link. env: BASE_URL")
	fs.StringVarP(&cfg.APIKey, "api-key", "k", cfg.APIKey, "required API key. env: API_KEY")
	fs.BoolVarP(&cfg.EnableHTTPS, "https", "s", cfg.EnableHTTPS, "enable ssl with self-signed certificate. env: ENABLE_HTTPS")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return cfg, nil
}
