package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wash-manager-api/infrastructure/repository"
	"github.com/vfg2006/wash-manager-api/internal/config"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/notification"
	"github.com/vfg2006/wash-manager-api/internal/reporting"
	"github.com/vfg2006/wash-manager-api/internal/snapshot"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
)

type CollaboratorRankingConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// CollaboratorRankingService grava o ranking mensal de colaboradores com a
// variação de posição em relação à última atualização do mesmo mês
type CollaboratorRankingService struct {
	scheduler           *gocron.Scheduler
	config              CollaboratorRankingConfig
	source              snapshot.Source
	rankingRepo         repository.CollaboratorRankingRepository
	publisher           notification.Publisher
	loc                 *time.Location
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewCollaboratorRankingService(
	source snapshot.Source,
	rankingRepo repository.CollaboratorRankingRepository,
	publisher notification.Publisher,
	cfg *config.Config,
) *CollaboratorRankingService {
	rankingConfig := CollaboratorRankingConfig{
		CronSchedule: cfg.CollaboratorRanking.CronSchedule, // Padrão: 6h da manhã todos os dias
		SyncEnabled:  cfg.CollaboratorRanking.SyncEnabled,
	}

	loc := cfg.Reporting.Location()

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rankingConfig.CronSchedule,
		"timezone":      loc.String(),
	}).Info("Configuração do agendador do ranking de colaboradores carregada")

	return &CollaboratorRankingService{
		scheduler:   gocron.NewScheduler(loc),
		config:      rankingConfig,
		source:      source,
		rankingRepo: rankingRepo,
		publisher:   publisher,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *CollaboratorRankingService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron do ranking de colaboradores desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do ranking de colaboradores")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateCollaboratorRanking(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização do ranking de colaboradores")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do ranking de colaboradores: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do ranking de colaboradores")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CollaboratorRankingService) UpdateCollaboratorRanking(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Atualização do ranking de colaboradores já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando atualização do ranking de colaboradores")

	rankings, err := s.processRankingWithDate(ctx, s.now())
	if err != nil {
		return err
	}

	logrus.WithField("collaborators", len(rankings)).Info("Atualização do ranking de colaboradores concluída")

	return nil
}

// processRankingWithDate calcula o ranking do mês de ontem em relação à data
// informada, usando as vendas do primeiro dia do mês até o fim de ontem
func (s *CollaboratorRankingService) processRankingWithDate(ctx context.Context, processingDate time.Time) ([]*domain.CollaboratorRankingItem, error) {
	today := startOfDay(processingDate.In(s.loc))
	yesterday := today.AddDate(0, 0, -1)
	firstDayOfMonth := getFirstDayOfMonth(yesterday)
	month := yesterday.Format(utils.MonthLayout)

	snap := s.source.Current()
	sales := salesBetween(snap.Sales, firstDayOfMonth, today)
	updatedRankings := buildRankingItems(sales, snap.Collaborators, month)

	rankingsBeforeUpdate, err := s.previousRankings(ctx, updatedRankings, month)
	if err != nil {
		return nil, err
	}

	updatePositions(updatedRankings, rankingsBeforeUpdate)

	if err := s.rankingRepo.SaveOrUpdate(ctx, updatedRankings); err != nil {
		logrus.WithError(err).Error("CollaboratorRankingService: erro ao salvar ranking de colaboradores")
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(notification.KindRankingUpdated,
			fmt.Sprintf("Ranking de colaboradores de %s atualizado", month))
	}

	return updatedRankings, nil
}

// previousRankings busca em paralelo a posição gravada de cada colaborador no mês
func (s *CollaboratorRankingService) previousRankings(
	ctx context.Context,
	items []*domain.CollaboratorRankingItem,
	month string,
) (map[string]*domain.CollaboratorRankingItem, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	before := make(map[string]*domain.CollaboratorRankingItem, len(items))
	for _, item := range items {
		wg.Add(1)
		go func(collaboratorID string) {
			defer wg.Done()

			previous, err := s.rankingRepo.GetByCollaboratorID(ctx, collaboratorID, month)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			if previous != nil {
				before[collaboratorID] = previous
			}
		}(item.CollaboratorID)
	}

	wg.Wait()

	if firstErr != nil {
		logrus.WithError(firstErr).Error("CollaboratorRankingService: erro ao buscar ranking anterior")
		return nil, firstErr
	}

	return before, nil
}

// buildRankingItems soma o valor pago por colaborador. Colaboradores ativos sem
// venda no mês entram com receita zero; vendas de colaboradores removidos são ignoradas.
func buildRankingItems(sales []domain.Sale, collaborators []domain.Collaborator, month string) []*domain.CollaboratorRankingItem {
	byID := make(map[string]domain.Collaborator, len(collaborators))
	for _, c := range collaborators {
		byID[c.ID] = c
	}

	ranking := reporting.RankByCollaborator(sales, byID)

	counts := make(map[string]int, len(ranking.Count))
	for _, count := range ranking.Count {
		counts[count.ID] = count.Count
	}

	items := make([]*domain.CollaboratorRankingItem, 0, len(collaborators))
	seen := make(map[string]struct{}, len(collaborators))
	for _, earning := range ranking.Earning {
		seen[earning.ID] = struct{}{}
		items = append(items, &domain.CollaboratorRankingItem{
			CollaboratorID:   earning.ID,
			Month:            month,
			CollaboratorName: earning.Name,
			Revenue:          earning.Amount,
			SalesCount:       counts[earning.ID],
		})
	}

	idle := make([]*domain.CollaboratorRankingItem, 0)
	for _, c := range collaborators {
		if _, ok := seen[c.ID]; ok || !c.Active {
			continue
		}
		idle = append(idle, &domain.CollaboratorRankingItem{
			CollaboratorID:   c.ID,
			Month:            month,
			CollaboratorName: c.Name,
		})
	}
	sort.Slice(idle, func(i, j int) bool {
		if idle[i].CollaboratorName != idle[j].CollaboratorName {
			return idle[i].CollaboratorName < idle[j].CollaboratorName
		}
		return idle[i].CollaboratorID < idle[j].CollaboratorID
	})

	return append(items, idle...)
}

// updatePositions numera os itens na ordem recebida. Variação positiva = subiu.
func updatePositions(
	updatedRankings []*domain.CollaboratorRankingItem,
	rankingsBeforeUpdate map[string]*domain.CollaboratorRankingItem,
) {
	for i, ranking := range updatedRankings {
		ranking.Position = i + 1

		rankingBefore, exists := rankingsBeforeUpdate[ranking.CollaboratorID]
		if !exists {
			continue
		}
		ranking.PositionChange = rankingBefore.Position - ranking.Position
		ranking.PreviousPosition = rankingBefore.Position
	}
}

// TriggerManualSync inicia uma atualização do ranking fora do agendamento
func (s *CollaboratorRankingService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do ranking de colaboradores já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do ranking de colaboradores")
	go func() {
		if err := s.UpdateCollaboratorRanking(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do ranking de colaboradores")
		}
	}()
}

func (s *CollaboratorRankingService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

func salesBetween(sales []domain.Sale, start, end time.Time) []domain.Sale {
	filtered := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if sale.CreatedAt.Before(start) || !sale.CreatedAt.Before(end) {
			continue
		}
		filtered = append(filtered, sale)
	}
	return filtered
}

func startOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

func getFirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
