package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/wash-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/notification"
	"go.uber.org/mock/gomock"
)

type staticSource struct {
	snap *domain.Snapshot
}

func (s staticSource) Current() *domain.Snapshot {
	return s.snap
}

func sale(collaboratorID string, paid float64, createdAt time.Time) domain.Sale {
	return domain.Sale{
		CollaboratorID: collaboratorID,
		Client:         domain.ReferenceClient("cli-1"),
		Products:       map[string]domain.ProductLine{"p1": {Price: paid, Quantity: 1}},
		PaidValue:      paid,
		CreatedAt:      createdAt,
	}
}

func TestCollaboratorRankingService_processRankingWithDate(t *testing.T) {
	// Data de referência: 16 de janeiro, o ranking cobre de 01/01 até o fim de 15/01
	processingDate := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	month := "01-2024"

	collaborators := []domain.Collaborator{
		{ID: "COL001", Name: "Ana", Active: true},
		{ID: "COL002", Name: "Bruno", Active: true},
		{ID: "COL003", Name: "Carla", Active: true},
		{ID: "COL004", Name: "Diego", Active: false},
	}

	tests := []struct {
		name     string
		sales    []domain.Sale
		setup    func(repo *mocks.MockCollaboratorRankingRepository)
		validate func(t *testing.T, result []*domain.CollaboratorRankingItem, err error)
	}{
		{
			name: "Colaboradores sem ranking anterior - posições pela receita do mês",
			sales: []domain.Sale{
				sale("COL001", 100, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)),
				sale("COL002", 250, time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)),
				sale("COL002", 50, time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)),
				// fora do período: mês anterior e o próprio dia do processamento
				sale("COL001", 999, time.Date(2023, 12, 31, 10, 0, 0, 0, time.UTC)),
				sale("COL001", 999, time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)),
			},
			setup: func(repo *mocks.MockCollaboratorRankingRepository) {
				repo.EXPECT().GetByCollaboratorID(gomock.Any(), gomock.Any(), month).Return(nil, nil).Times(3)
				repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result []*domain.CollaboratorRankingItem, err error) {
				require.NoError(t, err)
				require.Len(t, result, 3)

				assert.Equal(t, "COL002", result[0].CollaboratorID)
				assert.Equal(t, 300.0, result[0].Revenue)
				assert.Equal(t, 2, result[0].SalesCount)
				assert.Equal(t, 1, result[0].Position)

				assert.Equal(t, "COL001", result[1].CollaboratorID)
				assert.Equal(t, 100.0, result[1].Revenue)
				assert.Equal(t, 2, result[1].Position)

				// ativo sem vendas entra no fim com receita zero
				assert.Equal(t, "COL003", result[2].CollaboratorID)
				assert.Equal(t, 0.0, result[2].Revenue)
				assert.Equal(t, 3, result[2].Position)

				for _, item := range result {
					assert.Equal(t, month, item.Month)
					assert.Equal(t, 0, item.PositionChange)
					assert.Equal(t, 0, item.PreviousPosition)
				}
			},
		},
		{
			name: "Colaborador que subiu e colaborador que desceu",
			sales: []domain.Sale{
				sale("COL001", 100, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)),
				sale("COL003", 400, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)),
			},
			setup: func(repo *mocks.MockCollaboratorRankingRepository) {
				repo.EXPECT().GetByCollaboratorID(gomock.Any(), "COL001", month).
					Return(&domain.CollaboratorRankingItem{CollaboratorID: "COL001", Month: month, Position: 1}, nil)
				repo.EXPECT().GetByCollaboratorID(gomock.Any(), "COL002", month).
					Return(&domain.CollaboratorRankingItem{CollaboratorID: "COL002", Month: month, Position: 2}, nil)
				repo.EXPECT().GetByCollaboratorID(gomock.Any(), "COL003", month).
					Return(&domain.CollaboratorRankingItem{CollaboratorID: "COL003", Month: month, Position: 3}, nil)
				repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Len(3)).Return(nil)
			},
			validate: func(t *testing.T, result []*domain.CollaboratorRankingItem, err error) {
				require.NoError(t, err)
				require.Len(t, result, 3)

				assert.Equal(t, "COL003", result[0].CollaboratorID)
				assert.Equal(t, 2, result[0].PositionChange)
				assert.Equal(t, 3, result[0].PreviousPosition)

				assert.Equal(t, "COL001", result[1].CollaboratorID)
				assert.Equal(t, -1, result[1].PositionChange)
				assert.Equal(t, 1, result[1].PreviousPosition)

				assert.Equal(t, "COL002", result[2].CollaboratorID)
				assert.Equal(t, -1, result[2].PositionChange)
			},
		},
		{
			name: "Vendas de colaborador removido são ignoradas",
			sales: []domain.Sale{
				sale("GHOST", 1000, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)),
				sale("COL004", 10, time.Date(2024, 1, 5, 11, 0, 0, 0, time.UTC)),
			},
			setup: func(repo *mocks.MockCollaboratorRankingRepository) {
				repo.EXPECT().GetByCollaboratorID(gomock.Any(), gomock.Any(), month).Return(nil, nil).Times(4)
				repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result []*domain.CollaboratorRankingItem, err error) {
				require.NoError(t, err)
				require.Len(t, result, 4)
				// inativo com venda no mês continua no ranking
				assert.Equal(t, "COL004", result[0].CollaboratorID)
				for _, item := range result {
					assert.NotEqual(t, "GHOST", item.CollaboratorID)
				}
			},
		},
		{
			name:  "Erro ao buscar ranking anterior não grava nada",
			sales: []domain.Sale{sale("COL001", 100, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))},
			setup: func(repo *mocks.MockCollaboratorRankingRepository) {
				repo.EXPECT().GetByCollaboratorID(gomock.Any(), gomock.Any(), month).
					Return(nil, errors.New("conexão perdida")).AnyTimes()
			},
			validate: func(t *testing.T, result []*domain.CollaboratorRankingItem, err error) {
				assert.Error(t, err)
				assert.Nil(t, result)
			},
		},
		{
			name:  "Erro ao salvar ranking",
			sales: []domain.Sale{sale("COL001", 100, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))},
			setup: func(repo *mocks.MockCollaboratorRankingRepository) {
				repo.EXPECT().GetByCollaboratorID(gomock.Any(), gomock.Any(), month).Return(nil, nil).Times(3)
				repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(errors.New("falha no upsert"))
			},
			validate: func(t *testing.T, result []*domain.CollaboratorRankingItem, err error) {
				assert.EqualError(t, err, "falha no upsert")
				assert.Nil(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockCollaboratorRankingRepository(ctrl)
			tt.setup(repo)

			service := &CollaboratorRankingService{
				source:      staticSource{snap: &domain.Snapshot{Sales: tt.sales, Collaborators: collaborators}},
				rankingRepo: repo,
				loc:         time.UTC,
				now:         func() time.Time { return processingDate },
			}

			result, err := service.processRankingWithDate(context.Background(), processingDate)
			tt.validate(t, result, err)
		})
	}
}

func TestCollaboratorRankingService_PublishesNotice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockCollaboratorRankingRepository(ctrl)
	repo.EXPECT().GetByCollaboratorID(gomock.Any(), "COL001", "02-2024").Return(nil, nil)
	repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(nil)

	hub := notification.NewHub()
	processingDate := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)

	service := &CollaboratorRankingService{
		source: staticSource{snap: &domain.Snapshot{
			Collaborators: []domain.Collaborator{{ID: "COL001", Name: "Ana", Active: true}},
			Sales:         []domain.Sale{sale("COL001", 80, time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC))},
		}},
		rankingRepo: repo,
		publisher:   hub,
		loc:         time.UTC,
		now:         func() time.Time { return processingDate },
	}

	// no primeiro dia do mês o ranking fecha o mês anterior
	require.NoError(t, service.UpdateCollaboratorRanking(context.Background()))

	notice, ok := hub.Latest()
	require.True(t, ok)
	assert.Equal(t, notification.KindRankingUpdated, notice.Kind)
	assert.Contains(t, notice.Message, "02-2024")
	assert.Equal(t, processingDate, service.GetStatus()["last_sync_completed_at"])
}

func TestCollaboratorRankingService_UpdatePositions(t *testing.T) {
	items := []*domain.CollaboratorRankingItem{
		{CollaboratorID: "A"},
		{CollaboratorID: "B"},
	}
	before := map[string]*domain.CollaboratorRankingItem{
		"B": {CollaboratorID: "B", Position: 1},
	}

	updatePositions(items, before)

	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 0, items[0].PositionChange)
	assert.Equal(t, 2, items[1].Position)
	assert.Equal(t, -1, items[1].PositionChange)
	assert.Equal(t, 1, items[1].PreviousPosition)
}
