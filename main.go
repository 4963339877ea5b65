package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/connorkuehl/pointsbot/internal/env"
)

func main() {
	flags := pflag.NewFlagSet("pointsbot", pflag.ExitOnError)
	envFile := flags.String("env-file", "ENV.env", "file to read environment variables from")
	listenHealth := flags.String("health", "", "address to serve health checks on (default $POINTS_LISTEN_HEALTH)")
	_ = flags.Parse(os.Args[1:])

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).WithField("path", *envFile).Warn("load env file")
	}

	if *listenHealth == "" {
		*listenHealth = env.GetOr("POINTS_LISTEN_HEALTH", "", os.Getenv)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *listenHealth); err != nil && !errors.Is(err, context.Canceled) {
		cancel()
		log.WithError(err).Fatal("shutting down")
	}
}

func run(ctx context.Context, listenHealth string) error {
	app, cleanup, err := InitializeApp()
	if err != nil {
		return err
	}
	defer cleanup()

	if listenHealth != "" {
		go func() {
			log.WithError(app.Health.ListenAndServe(listenHealth)).Error("health checks stopped")
		}()
	}

	return app.Bot.Listen(ctx)
}
