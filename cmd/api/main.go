package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/infrastructure/repository"
	"github.com/vfg2006/wash-manager-api/internal/api"
	"github.com/vfg2006/wash-manager-api/internal/api/handler"
	"github.com/vfg2006/wash-manager-api/internal/config"
	"github.com/vfg2006/wash-manager-api/internal/notification"
	engine "github.com/vfg2006/wash-manager-api/internal/reporting"
	"github.com/vfg2006/wash-manager-api/internal/scheduler"
	"github.com/vfg2006/wash-manager-api/internal/snapshot"
	"github.com/vfg2006/wash-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/wash-manager-api/internal/usecases/ranking"
	"github.com/vfg2006/wash-manager-api/internal/usecases/registering"
	"github.com/vfg2006/wash-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/wash-manager-api/pkg/log"
)

func main() {
	changeToSourceDir()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel, cfg.App.Env)
	log.L.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	clientRepo := repository.NewClientRepository(pgConn)
	collaboratorRepo := repository.NewCollaboratorRepository(pgConn)
	vehicleRepo := repository.NewVehicleRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	paymentMethodRepo := repository.NewPaymentMethodRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	rankingRepo := repository.NewCollaboratorRankingRepository(pgConn)

	hub := notification.NewHub()
	store := snapshot.NewStore(repository.NewSnapshotLoader(pgConn), hub)

	// Primeira carga síncrona; se falhar a API sobe com snapshot vazio e o agendador tenta de novo
	if _, err := store.Refresh(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao carregar o snapshot inicial")
	}
	go store.Run(ctx)

	if cfg.Database.NotifyChannel != "" {
		listener := postgres.NewChangeListener(cfg.Database.DSN, cfg.Database.NotifyChannel, store)
		go func() {
			if err := listener.Run(ctx); err != nil {
				log.L.WithError(err).Error("Listener de alterações do PostgreSQL encerrado")
			}
		}()
	}

	registrar := registering.NewService(registering.Repositories{
		Clients:        clientRepo,
		Collaborators:  collaboratorRepo,
		Vehicles:       vehicleRepo,
		Products:       productRepo,
		PaymentMethods: paymentMethodRepo,
		Sales:          saleRepo,
	}, store, hub)

	authenticator := authenticating.NewService(collaboratorRepo, cfg)

	reporter := reporting.NewService(
		store,
		engine.New(cfg.Reporting.Location()),
		reporting.Options{
			FillInclusiveEnd: cfg.Reporting.FillInclusiveEnd,
			MaxFillDays:      cfg.Reporting.MaxFillDays,
		},
	)

	rankingService := ranking.NewCollaboratorRankingService(rankingRepo)

	snapshotSyncService := scheduler.NewSnapshotSyncService(store, cfg)
	collaboratorRankingSyncService := scheduler.NewCollaboratorRankingService(store, rankingRepo, hub, cfg)

	if err := snapshotSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de atualização do snapshot")
	} else {
		log.L.Info("Agendador de atualização do snapshot iniciado com sucesso")
	}

	if err := collaboratorRankingSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de ranking de colaboradores")
	} else {
		log.L.Info("Agendador de ranking de colaboradores iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Snapshot:      store,
		Authenticator: authenticator,
		Registrar:     registrar,
		Reporter:      reporter,
		Ranking:       rankingService,
		Notices:       hub,
		Jobs: handler.Jobs{
			handler.JobTypeSnapshotSync:        snapshotSyncService,
			handler.JobTypeCollaboratorRanking: collaboratorRankingSyncService,
		},
	})
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// changeToSourceDir permite achar o .env ao rodar com go run de qualquer lugar
func changeToSourceDir() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Warn("Não foi possível mudar para o diretório do binário")
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		log.L.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
