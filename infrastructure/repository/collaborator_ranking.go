package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

const (
	collaboratorRankingTable = "collaborator_ranking cr"
)

var collaboratorRankingColumns = []string{
	"cr.id",
	"cr.collaborator_id",
	"cr.month",
	"cr.collaborator_name",
	"cr.revenue",
	"cr.sales_count",
	"cr.position",
	"cr.position_change",
	"cr.previous_position",
	"cr.created_at",
	"cr.updated_at",
}

type CollaboratorRankingRepository interface {
	GetByCollaboratorID(ctx context.Context, collaboratorID string, month string) (*domain.CollaboratorRankingItem, error)
	GetByMonth(ctx context.Context, month string) (*domain.CollaboratorLeaderboard, error)
	SaveOrUpdate(ctx context.Context, rankings []*domain.CollaboratorRankingItem) error
}

type collaboratorRankingRepository struct {
	conn *postgres.Connection
}

func NewCollaboratorRankingRepository(conn *postgres.Connection) CollaboratorRankingRepository {
	return &collaboratorRankingRepository{
		conn: conn,
	}
}

func (r *collaboratorRankingRepository) GetByMonth(ctx context.Context, month string) (*domain.CollaboratorLeaderboard, error) {
	sqlQuery, args, err := squirrel.
		Select(collaboratorRankingColumns...).
		From(collaboratorRankingTable).
		Where(squirrel.Eq{"cr.month": month}).
		OrderBy("cr.position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rankings := make([]domain.CollaboratorRankingItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		item, err := scanCollaboratorRankingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		rankings = append(rankings, *item)

		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return &domain.CollaboratorLeaderboard{
		Month:      month,
		Ranking:    rankings,
		LastUpdate: lastUpdate,
	}, nil
}

func (r *collaboratorRankingRepository) GetByCollaboratorID(ctx context.Context, collaboratorID string, month string) (*domain.CollaboratorRankingItem, error) {
	query, args, err := squirrel.
		Select(collaboratorRankingColumns...).
		From(collaboratorRankingTable).
		Where(squirrel.Eq{"cr.collaborator_id": collaboratorID, "cr.month": month}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ranking, err := scanCollaboratorRankingItem(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ranking: %w", err)
	}
	return ranking, nil
}

func (r *collaboratorRankingRepository) SaveOrUpdate(ctx context.Context, rankings []*domain.CollaboratorRankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	// Inserção em lote
	query := squirrel.StatementBuilder.
		Insert("collaborator_ranking").
		Columns(
			"collaborator_id",
			"month",
			"collaborator_name",
			"revenue",
			"sales_count",
			"position",
			"position_change",
			"previous_position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.CollaboratorID,
			ranking.Month,
			ranking.CollaboratorName,
			ranking.Revenue,
			ranking.SalesCount,
			ranking.Position,
			ranking.PositionChange,
			ranking.PreviousPosition,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (collaborator_id, month) DO UPDATE SET
			collaborator_name = EXCLUDED.collaborator_name,
			revenue = EXCLUDED.revenue,
			sales_count = EXCLUDED.sales_count,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func scanCollaboratorRankingItem(row rowScanner) (*domain.CollaboratorRankingItem, error) {
	item := &domain.CollaboratorRankingItem{}

	err := row.Scan(
		&item.ID,
		&item.CollaboratorID,
		&item.Month,
		&item.CollaboratorName,
		&item.Revenue,
		&item.SalesCount,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}
