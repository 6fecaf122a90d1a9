// Package reporting monta os relatórios do painel a partir do snapshot atual.
// Todas as leituras de uma chamada usam o mesmo snapshot.
package reporting

import (
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/reporting"
	"github.com/vfg2006/wash-manager-api/internal/snapshot"
)

var (
	ErrClientNotFound = errors.New("cliente não encontrado")
	ErrInvalidPeriod  = errors.New("data inicial maior que a data final")
	ErrFillTooLong    = fmt.Errorf("%w: intervalo de preenchimento maior que o permitido", ErrInvalidPeriod)
)

const defaultMaxFillDays = 366

type Reporter interface {
	SalesByPeriod(filters domain.ReportFilters) (*domain.SalesReport, error)
	CollaboratorRanking(filters domain.ReportFilters) (domain.Ranking, error)
	ProductRanking(filters domain.ReportFilters) (domain.Ranking, error)
	ClientDebt(clientID string) (*domain.ClientDebt, error)
	ClientDebts() []domain.ClientDebt
	Dashboard(filters domain.ReportFilters) (*domain.Dashboard, error)
}

type Options struct {
	// FillInclusiveEnd inclui a data final informada no preenchimento de dias úteis
	FillInclusiveEnd bool
	// MaxFillDays limita quantos dias o preenchimento pode gerar (padrão 366)
	MaxFillDays int
}

type Service struct {
	source     snapshot.Source
	aggregator reporting.Aggregator
	options    Options
}

func NewService(source snapshot.Source, aggregator reporting.Aggregator, options Options) Reporter {
	if options.MaxFillDays <= 0 {
		options.MaxFillDays = defaultMaxFillDays
	}

	return &Service{
		source:     source,
		aggregator: aggregator,
		options:    options,
	}
}

func (s *Service) SalesByPeriod(filters domain.ReportFilters) (*domain.SalesReport, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	snap := s.source.Current()
	return s.salesReport(snap, filters)
}

func (s *Service) salesReport(snap *domain.Snapshot, filters domain.ReportFilters) (*domain.SalesReport, error) {
	granularity := filters.Granularity
	if granularity == "" {
		granularity = domain.GranularityDay
	}

	sales := s.filterSales(snap.Sales, filters)
	totals := s.aggregator.TotalsByPeriod(sales, granularity)

	if granularity == domain.GranularityDay && filters.FillBusinessDays {
		if dayRange, ok := s.fillRange(totals, filters); ok {
			if err := s.checkFillSpan(dayRange); err != nil {
				return nil, err
			}
			totals = reporting.FillBusinessDays(totals, dayRange)
		}
	}

	return &domain.SalesReport{
		Granularity:     granularity,
		Totals:          totals,
		Total:           reporting.SumTotals(totals),
		SnapshotVersion: snap.Version,
	}, nil
}

// checkFillSpan recusa intervalos que gerariam mais linhas que MaxFillDays
func (s *Service) checkFillSpan(dayRange domain.DayRange) error {
	start, err := time.Parse(time.DateOnly, dayRange.Start)
	if err != nil {
		return ErrInvalidPeriod
	}
	end, err := time.Parse(time.DateOnly, dayRange.End)
	if err != nil {
		return ErrInvalidPeriod
	}

	days := int(end.Sub(start).Hours() / 24)
	if dayRange.InclusiveEnd {
		days++
	}
	if days > s.options.MaxFillDays {
		return ErrFillTooLong
	}
	return nil
}

// fillRange usa o período pedido quando informado; sem período, usa os dias
// observados na série.
func (s *Service) fillRange(totals []domain.PeriodTotal, filters domain.ReportFilters) (domain.DayRange, bool) {
	dayRange, _ := reporting.ObservedRange(totals)
	if filters.StartDate != nil {
		dayRange.Start = s.aggregator.DayLabel(*filters.StartDate)
	}
	if filters.EndDate != nil {
		dayRange.End = s.aggregator.DayLabel(*filters.EndDate)
		dayRange.InclusiveEnd = s.options.FillInclusiveEnd
	}

	return dayRange, dayRange.Start != "" && dayRange.End != ""
}

func (s *Service) CollaboratorRanking(filters domain.ReportFilters) (domain.Ranking, error) {
	if err := validateFilters(filters); err != nil {
		return domain.Ranking{}, err
	}

	snap := s.source.Current()
	return reporting.RankByCollaborator(s.filterSales(snap.Sales, filters), snap.CollaboratorsByID()), nil
}

func (s *Service) ProductRanking(filters domain.ReportFilters) (domain.Ranking, error) {
	if err := validateFilters(filters); err != nil {
		return domain.Ranking{}, err
	}

	snap := s.source.Current()
	return reporting.RankByProduct(s.filterSales(snap.Sales, filters), snap.ProductsByID()), nil
}

func (s *Service) ClientDebt(clientID string) (*domain.ClientDebt, error) {
	snap := s.source.Current()

	client, ok := snap.ClientsByID()[clientID]
	if !ok {
		return nil, ErrClientNotFound
	}

	return &domain.ClientDebt{
		ClientID:   clientID,
		ClientName: client.Name,
		Debt:       reporting.ClientDebt(snap.Sales, clientID),
	}, nil
}

func (s *Service) ClientDebts() []domain.ClientDebt {
	snap := s.source.Current()
	return reporting.DebtByClient(snap.Sales, snap.ClientsByID())
}

func (s *Service) Dashboard(filters domain.ReportFilters) (*domain.Dashboard, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	snap := s.source.Current()
	sales := s.filterSales(snap.Sales, filters)

	filters.Granularity = domain.GranularityDay
	report, err := s.salesReport(snap, filters)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		SalesByDay:          report.Totals,
		CollaboratorRanking: reporting.RankByCollaborator(sales, snap.CollaboratorsByID()),
		ProductRanking:      reporting.RankByProduct(sales, snap.ProductsByID()),
		Debts:               reporting.DebtByClient(snap.Sales, snap.ClientsByID()),
		SnapshotVersion:     snap.Version,
		SnapshotTakenAt:     snap.TakenAt,
	}, nil
}

// filterSales mantém as vendas criadas entre o início do dia inicial e o fim do dia final
func (s *Service) filterSales(sales []domain.Sale, filters domain.ReportFilters) []domain.Sale {
	if filters.StartDate == nil && filters.EndDate == nil {
		return sales
	}

	loc := s.aggregator.Location()
	var start, end time.Time
	if filters.StartDate != nil {
		start = startOfDay(*filters.StartDate, loc)
	}
	if filters.EndDate != nil {
		end = startOfDay(*filters.EndDate, loc).AddDate(0, 0, 1)
	}

	filtered := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if filters.StartDate != nil && sale.CreatedAt.Before(start) {
			continue
		}
		if filters.EndDate != nil && !sale.CreatedAt.Before(end) {
			continue
		}
		filtered = append(filtered, sale)
	}
	return filtered
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func validateFilters(filters domain.ReportFilters) error {
	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return ErrInvalidPeriod
	}
	return nil
}
