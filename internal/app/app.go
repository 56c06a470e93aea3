package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-shortener-cli/internal/config"
	"github.com/zaz600/go-shortener-cli/internal/controller/httpcontroller"
	"github.com/zaz600/go-shortener-cli/internal/infrastructure/repository"
	"github.com/zaz600/go-shortener-cli/internal/pkg/httpserver"
)

var (
	BuildVersion = "n/a"
	BuildTime    = "n/a"
	BuildCommit  = "n/a"
)

// Run инициализация и запуск эмулятора API. Работает до SIGINT/SIGTERM.
func Run(args []string, output io.Writer) (err error) {
	printBuildInfo()

	ctxBg := context.Background()
	ctx, cancel := signal.NotifyContext(ctxBg, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.GetFakeAPIConfig(args, output)
	if err != nil {
		return err
	}
	log.Info().
		Str("server_address", cfg.ServerAddress).
		Str("base_url", cfg.BaseURL).
		Bool("api_key", cfg.APIKey != "").
		Bool("https", cfg.EnableHTTPS).
		Msg("app cfg")

	repo := repository.NewInMemoryLinksRepository(nil)
	defer func(ctx context.Context, repo repository.LinksRepository) {
		_ = repo.Close(ctx)
	}(ctxBg, repo)

	controller := httpcontroller.New(cfg.BaseURL,
		httpcontroller.WithRepository(repo),
		httpcontroller.WithAPIKey(cfg.APIKey),
	)
	server := &http.Server{Addr: cfg.ServerAddress, Handler: controller}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutdown...")
		shutdownCtx, shutdownCancel := context.WithTimeout(ctxBg, 5*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Err(err).Msg("error during shutdown server")
		}
	}()

	log.Info().Msgf("listen on %s, api url %s%s", cfg.ServerAddress, cfg.BaseURL, httpcontroller.APIPath)
	if cfg.EnableHTTPS {
		err = httpserver.ListenAndServeTLS(server, cfg.ServerAddress)
	} else {
		err = server.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func printBuildInfo() {
	log.Info().
		Str("version", BuildVersion).
		Str("date", BuildTime).
		Str("commit", BuildCommit).
		Msg("build info")
}
