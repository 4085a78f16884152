package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ramvik/taskhub/internal/api"
	"github.com/ramvik/taskhub/internal/rates"
	"github.com/ramvik/taskhub/internal/todos"
	"github.com/ramvik/taskhub/internal/users"
	"github.com/ramvik/taskhub/pkg/errors"
	"github.com/ramvik/taskhub/pkg/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "load config"))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "init logger"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	todosRepo, err := todos.New(ctx, log, cfg.Todos)
	if err != nil {
		log.Panic(errors.WrapFail(err, "init todos repo"))
	}

	srv := api.NewServer(
		cfg.API,
		log,
		users.NewState(),
		todosRepo,
		rates.NewAllRates(cfg.API.Rates.GBPToUSD, cfg.API.Rates.EURToUSD),
	)

	stopped := make(chan struct{})
	context.AfterFunc(ctx, func() {
		stdlog.Println("Graceful shutdown...")
		err := srv.Shutdown(context.Background())
		if err != nil {
			log.Error(errors.WrapFail(err, "shutdown server"))
		}
		stopped <- struct{}{}
	})

	log.Infof("serving on %s", cfg.API.HTTP.Addr)

	err = srv.Serve(ctx)
	if err != nil {
		log.Error(err)
	}

	<-stopped
	stdlog.Println("Shutdown complete")
}
