package domain

import "time"

type CollaboratorLeaderboard struct {
	Month      string                    `json:"month"`
	Ranking    []CollaboratorRankingItem `json:"ranking"`
	LastUpdate time.Time                 `json:"last_update"`
}

type CollaboratorRankingItem struct {
	ID               int       `json:"id"`
	CollaboratorID   string    `json:"collaborator_id"`
	Month            string    `json:"month"` // Formato mm-yyyy (ex: 01-2024)
	CollaboratorName string    `json:"collaborator_name"`
	Revenue          float64   `json:"revenue"`
	SalesCount       int       `json:"sales_count"`
	Position         int       `json:"position"`
	PositionChange   int       `json:"position_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousPosition int       `json:"previous_position"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
