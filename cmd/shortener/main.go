package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/zaz600/go-shortener-cli/internal/config"
	"github.com/zaz600/go-shortener-cli/internal/infrastructure/transport"
	"github.com/zaz600/go-shortener-cli/internal/service/shortener"
)

const (
	exitOK           = 0
	exitRuntimeError = 1
	exitUsageError   = 2
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro
	os.Exit(CLI(os.Args, os.Stdout, os.Stderr))
}

func CLI(args []string, stdout, stderr io.Writer) int {
	opts, err := config.GetConfig(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		_, _ = fmt.Fprintf(stderr, "Usage error: %v\n", err)
		return exitUsageError
	}
	setupLogger(stderr, opts.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runApp(ctx, opts, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "Runtime error: %v\n", err)
		return exitRuntimeError
	}
	return exitOK
}

func runApp(ctx context.Context, opts *config.Options, stdout io.Writer) error {
	log.Debug().
		Str("api_url", opts.APIURL).
		Bool("api_key", opts.APIKey != "").
		Dur("timeout", opts.Timeout).
		Str("action", opts.Action.String()).
		Bool("raw_output", opts.RawOutput).
		Int("urls", len(opts.URLs)).
		Msg("app cfg")

	client := transport.NewClient(
		transport.WithTimeout(opts.Timeout),
		transport.WithDebug(opts.Verbose),
		transport.WithInsecure(opts.Insecure),
	)
	s := shortener.NewService(opts.APIURL, opts.APIKey,
		shortener.WithTransport(client),
		shortener.WithOutput(stdout),
	)
	return s.Run(ctx, opts.Action, opts.RawOutput, opts.URLs)
}

// setupLogger лог пишется в stderr, чтобы не смешиваться с результатами.
// По умолчанию только предупреждения и ошибки, с verbose - подробности запросов.
func setupLogger(w io.Writer, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
