package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wash-manager-api/internal/api/handler"
	"github.com/vfg2006/wash-manager-api/internal/api/handler/router"
	"github.com/vfg2006/wash-manager-api/internal/config"
	"github.com/vfg2006/wash-manager-api/internal/snapshot"
	"github.com/vfg2006/wash-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/wash-manager-api/internal/usecases/ranking"
	"github.com/vfg2006/wash-manager-api/internal/usecases/registering"
	"github.com/vfg2006/wash-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/wash-manager-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services reúne os casos de uso expostos pela API
type Services struct {
	Snapshot      snapshot.Source
	Authenticator authenticating.Authenticator
	Registrar     registering.Registrar
	Reporter      reporting.Reporter
	Ranking       ranking.RankingService
	Notices       handler.NoticeFeed
	Jobs          handler.Jobs
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services) (*Server, error) {
	loc := cfg.Reporting.Location()

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Snapshot)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Registering(services.Registrar, loc)...),
		router.WithRoutes(handler.Reports(services.Reporter, services.Ranking, loc)...),
		router.WithRoutes(handler.Notices(services.Notices)...),
		router.WithRoutes(handler.ScheduledJobs(services.Jobs)...),
	)

	// requisições herdam baseCtx; o desligamento o cancela e encerra long-polls abertos
	baseCtx, stop := context.WithCancel(context.Background())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           Handler(cfg, services.Authenticator, rt),
		ReadHeaderTimeout: 2 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	httpServer.RegisterOnShutdown(stop)

	return &Server{httpServer: httpServer}, nil
}

// Handler aplica a cadeia de middlewares globais
func Handler(cfg *config.Config, validator middleware.TokenValidator, next http.Handler) http.Handler {
	return alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(validator),
	).Then(next)
}

// Run atende requisições até receber SIGINT/SIGTERM ou o contexto ser cancelado
func (s Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-serveErr:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
