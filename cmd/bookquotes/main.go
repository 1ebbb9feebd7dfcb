package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/api"
	"github.com/goliatone/go-bookquotes-auth/config"
	"github.com/goliatone/go-bookquotes-auth/logging"
	"github.com/goliatone/go-bookquotes-auth/records"
	"github.com/goliatone/go-bookquotes-auth/repository"
	"github.com/goliatone/go-print"
	"github.com/sirupsen/logrus"
)

func main() {
	boot := logging.New("info", "json", os.Stdout)

	cfg, err := config.Load(context.Background(), os.Args[1:], logging.Wrap(boot, "config"))
	if err != nil {
		boot.WithError(err).Fatal("failed to load configuration")
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	log.Debugf("configuration: %s", print.MaybePrettyJSON(cfg.Redacted()))

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	db, err := repository.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repository.CreateSchema(ctx, db); err != nil {
		return err
	}

	repo := repository.NewRepositoryManager(db)
	repo.MustValidate()

	logger := logging.Wrap(log, "bookquotes")

	tokens, err := auth.NewTokenService(cfg, auth.WithTokenLogger(logger.Named("tokens")))
	if err != nil {
		return err
	}

	activity := logging.ActivitySink(log)

	provider := auth.NewUserProvider(repo.Users()).
		WithLogger(logger.Named("provider"))

	authenticator := auth.NewAuthenticator(provider, tokens).
		WithLogger(logger.Named("auth")).
		WithActivitySink(activity)

	registrar := auth.NewRegisterUserHandler(repo).
		WithLogger(logger.Named("register")).
		WithActivitySink(activity)

	app := api.NewApp(api.Dependencies{
		Log:           log,
		Config:        cfg,
		Tokens:        tokens,
		Registrar:     registrar,
		Authenticator: authenticator,
		Books: records.NewService(repo.Books()).
			WithLogger(logger.Named("books")).
			WithActivitySink("book", activity),
		Quotes: records.NewService(repo.Quotes()).
			WithLogger(logger.Named("quotes")).
			WithActivitySink("quote", activity),
		Prefix: cfg.Server.Prefix,
	})

	errc := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.Server.Address).Info("server listening")
		errc <- app.Listen(cfg.Server.Address)
	}()

	select {
	case err := <-errc:
		return err
	case sig := <-waitExitSignal():
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	return app.ShutdownWithTimeout(5 * time.Second)
}

func waitExitSignal() <-chan os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return ch
}
