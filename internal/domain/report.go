// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"fmt"
	"time"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// LabelLength é o tamanho do rótulo YYYY-MM-DD truncado para a granularidade
func (g Granularity) LabelLength() int {
	switch g {
	case GranularityYear:
		return 4
	case GranularityMonth:
		return 7
	default:
		return 10
	}
}

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "":
		return GranularityDay, nil
	case GranularityDay, GranularityMonth, GranularityYear:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("granularidade inválida: %q (use day, month ou year)", s)
}

// PeriodTotal é o total pago em um período (dia YYYY-MM-DD, mês YYYY-MM ou ano YYYY)
type PeriodTotal struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}

// DayRange é o intervalo de dias usado no preenchimento de dias úteis
type DayRange struct {
	Start        string
	End          string
	InclusiveEnd bool
}

type RankingAmount struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type RankingCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Ranking struct {
	Earning []RankingAmount `json:"earning"`
	Count   []RankingCount  `json:"count"`
}

type ClientDebt struct {
	ClientID   string  `json:"client_id"`
	ClientName string  `json:"client_name"`
	Debt       float64 `json:"debt"`
}

type ReportFilters struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Granularity      Granularity
	FillBusinessDays bool
}

type SalesReport struct {
	Granularity     Granularity   `json:"granularity"`
	Totals          []PeriodTotal `json:"totals"`
	Total           float64       `json:"total"`
	SnapshotVersion uint64        `json:"snapshot_version"`
}

type Dashboard struct {
	SalesByDay          []PeriodTotal `json:"sales_by_day"`
	CollaboratorRanking Ranking       `json:"collaborator_ranking"`
	ProductRanking      Ranking       `json:"product_ranking"`
	Debts               []ClientDebt  `json:"debts"`
	SnapshotVersion     uint64        `json:"snapshot_version"`
	SnapshotTakenAt     time.Time     `json:"snapshot_taken_at"`
}
