// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wash-manager-api/internal/config"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

// Refresher recarrega o snapshot em memória
type Refresher interface {
	Refresh(ctx context.Context) (*domain.Snapshot, error)
}

type SnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SnapshotSyncService recarrega periodicamente o snapshot, cobrindo avisos de
// mudança perdidos pelo listener do banco
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotSyncConfig
	refresher           Refresher
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastVersion         uint64
	lastError           string
}

func NewSnapshotSyncService(refresher Refresher, cfg *config.Config) *SnapshotSyncService {
	syncConfig := SnapshotSyncConfig{
		CronSchedule: cfg.SnapshotSync.CronSchedule,
		SyncEnabled:  cfg.SnapshotSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização do snapshot carregada")

	return &SnapshotSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		refresher: refresher,
	}
}

func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização periódica do snapshot desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização do snapshot")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Sync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do snapshot: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização do snapshot")
		s.scheduler.Stop()
	}()

	return nil
}

// Sync recarrega o snapshot. Retorna false quando outra sincronização já está em andamento.
func (s *SnapshotSyncService) Sync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do snapshot já em andamento, ignorando")
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	snap, err := s.refresher.Refresh(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("SnapshotSyncService: erro ao recarregar snapshot")
		return true
	}

	s.lastError = ""
	s.lastVersion = snap.Version
	logrus.WithFields(logrus.Fields{
		"snapshot_version": snap.Version,
		"duration":         s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt).String(),
	}).Info("Sincronização do snapshot concluída")

	return true
}

// TriggerManualSync inicia uma sincronização fora do agendamento
func (s *SnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do snapshot já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do snapshot")
	go s.Sync(context.Background())
}

func (s *SnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"snapshot_version":       s.lastVersion,
		"last_error":             s.lastError,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
