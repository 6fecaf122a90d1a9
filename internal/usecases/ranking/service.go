package ranking

import (
	"context"
	"time"

	"github.com/vfg2006/wash-manager-api/infrastructure/repository"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
)

type RankingService interface {
	GetLeaderboard(ctx context.Context, month string) (*domain.CollaboratorLeaderboard, error)
}

type CollaboratorRankingService struct {
	rankingRepo repository.CollaboratorRankingRepository
	now         func() time.Time
}

func NewCollaboratorRankingService(rankingRepo repository.CollaboratorRankingRepository) RankingService {
	return &CollaboratorRankingService{
		rankingRepo: rankingRepo,
		now:         time.Now,
	}
}

// GetLeaderboard retorna o ranking gravado do mês (MM-YYYY). Sem mês, usa o
// mesmo mês que o job de ranking processa: o do dia anterior.
func (s *CollaboratorRankingService) GetLeaderboard(ctx context.Context, month string) (*domain.CollaboratorLeaderboard, error) {
	if month == "" {
		month = utils.PreviousDayMonth(s.now())
	}

	if _, err := utils.ParseMonth(month); err != nil {
		return nil, ErrInvalidMonth
	}

	leaderboard, err := s.rankingRepo.GetByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	if leaderboard.LastUpdate.IsZero() {
		leaderboard.LastUpdate = s.now()
	}

	return leaderboard, nil
}
