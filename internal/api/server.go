package api

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ramvik/taskhub/internal/rates"
	"github.com/ramvik/taskhub/internal/todos"
	"github.com/ramvik/taskhub/internal/users"
	"github.com/ramvik/taskhub/pkg/errors"
	"github.com/ramvik/taskhub/pkg/logger"
)

func NewServer(
	cfg Config,
	log logger.Logger,
	usersState *users.State,
	todosRepo todos.Repo,
	allRates *rates.AllRates,
) Server {
	serveLog := log.With("api_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:             cfg.HTTP.ReadTimeout,
		WriteTimeout:            cfg.HTTP.WriteTimeout,
		IdleTimeout:             cfg.HTTP.IdleTimeout,
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: true,
		ProxyHeader:             cfg.Proxy.Header,
		TrustedProxies:          cfg.Proxy.Trusted,
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		serveLog.Warn(errors.WrapFail(err, "handle http request"))
		return c.Status(http.StatusInternalServerError).Send(nil)
	}

	s := &server{
		todosRepo: todosRepo,
		http:      fiber.New(fiberCfg),
		addr:      cfg.HTTP.Addr,
		log:       serveLog,
	}

	users.NewHandler(usersState, log).Register(s.http.Group("/users"))
	todos.NewHandler(todosRepo, log).Register(s.http.Group("/todos"))
	rates.Register(s.http.Group("/rates"), allRates, log)

	return s
}

type server struct {
	todosRepo todos.Repo
	http      *fiber.App
	addr      string
	log       logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error)
	go func() { errCh <- s.http.Listen(s.addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return errors.Error("serve context done")
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error
	err := s.todosRepo.Close(ctx)
	if err != nil {
		errs = append(errs, errors.WrapFail(err, "close todos repo"))
	}

	err = s.http.ShutdownWithContext(ctx)
	if err != nil {
		errs = append(errs, errors.WrapFail(err, "shutdown http server"))
	}

	return errors.Collapse(errs)
}
