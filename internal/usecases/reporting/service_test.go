package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/reporting"
)

type staticSource struct {
	snap *domain.Snapshot
}

func (s staticSource) Current() *domain.Snapshot {
	return s.snap
}

func day(value string) time.Time {
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(value string) *time.Time {
	d := day(value)
	return &d
}

func fixtureSnapshot() *domain.Snapshot {
	line := func(price float64, qty int) map[string]domain.ProductLine {
		return map[string]domain.ProductLine{"p1": {Price: price, Quantity: qty}}
	}

	return &domain.Snapshot{
		Version: 7,
		TakenAt: day("2024-01-10"),
		Sales: []domain.Sale{
			{ID: "s1", CollaboratorID: "col-1", Client: domain.ReferenceClient("cli-1"), Products: line(50, 2), PaidValue: 100, CreatedAt: day("2024-01-01").Add(10 * time.Hour)},
			{ID: "s2", CollaboratorID: "col-2", Client: domain.ReferenceClient("cli-1"), Products: line(50, 1), PaidValue: 30, CreatedAt: day("2024-01-03").Add(15 * time.Hour)},
			{ID: "s3", CollaboratorID: "col-1", Client: domain.EmbeddedClient(domain.Client{Name: "Avulso"}), Products: line(80, 1), PaidValue: 0, CreatedAt: day("2024-01-05").Add(9 * time.Hour)},
			{ID: "s4", CollaboratorID: "ghost", Client: domain.ReferenceClient("cli-2"), Products: line(40, 1), PaidValue: 40, CreatedAt: day("2024-02-01").Add(9 * time.Hour)},
		},
		Clients: []domain.Client{
			{ID: "cli-1", Name: "Maria"},
			{ID: "cli-2", Name: "João"},
		},
		Collaborators: []domain.Collaborator{
			{ID: "col-1", Name: "Ana"},
			{ID: "col-2", Name: "Bruno"},
		},
		Products: []domain.Product{{ID: "p1", Name: "Lavagem"}},
	}
}

func newTestService(inclusive bool) Reporter {
	return NewService(staticSource{snap: fixtureSnapshot()}, reporting.New(time.UTC), Options{FillInclusiveEnd: inclusive})
}

func TestService_SalesByPeriod(t *testing.T) {
	tests := []struct {
		name      string
		inclusive bool
		filters   domain.ReportFilters
		validate  func(t *testing.T, report *domain.SalesReport, err error)
	}{
		{
			name:    "Totais mensais",
			filters: domain.ReportFilters{Granularity: domain.GranularityMonth},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, []domain.PeriodTotal{
					{Period: "2024-01", Total: 130},
					{Period: "2024-02", Total: 40},
				}, report.Totals)
				assert.Equal(t, 170.0, report.Total)
				assert.Equal(t, uint64(7), report.SnapshotVersion)
			},
		},
		{
			name: "Período filtrado com preenchimento exclusivo",
			filters: domain.ReportFilters{
				StartDate:        datePtr("2024-01-01"),
				EndDate:          datePtr("2024-01-04"),
				FillBusinessDays: true,
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.GranularityDay, report.Granularity)
				assert.Equal(t, []domain.PeriodTotal{
					{Period: "2024-01-01", Total: 100},
					{Period: "2024-01-02", Total: 0},
					{Period: "2024-01-03", Total: 30},
				}, report.Totals)
			},
		},
		{
			name:      "Período filtrado com preenchimento inclusivo",
			inclusive: true,
			filters: domain.ReportFilters{
				StartDate:        datePtr("2024-01-01"),
				EndDate:          datePtr("2024-01-04"),
				FillBusinessDays: true,
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, []domain.PeriodTotal{
					{Period: "2024-01-01", Total: 100},
					{Period: "2024-01-02", Total: 0},
					{Period: "2024-01-03", Total: 30},
					{Period: "2024-01-04", Total: 0},
				}, report.Totals)
				assert.Equal(t, 130.0, report.Total)
			},
		},
		{
			name:    "Preenchimento é ignorado fora da granularidade diária",
			filters: domain.ReportFilters{Granularity: domain.GranularityYear, FillBusinessDays: true},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, []domain.PeriodTotal{{Period: "2024", Total: 170}}, report.Totals)
			},
		},
		{
			name:      "Preenchimento de um ano bissexto inteiro",
			inclusive: true,
			filters: domain.ReportFilters{
				StartDate:        datePtr("2024-01-01"),
				EndDate:          datePtr("2024-12-31"),
				FillBusinessDays: true,
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, "2024-01-01", report.Totals[0].Period)
				assert.Equal(t, "2024-12-31", report.Totals[len(report.Totals)-1].Period)
			},
		},
		{
			name:      "Preenchimento acima do limite de dias",
			inclusive: true,
			filters: domain.ReportFilters{
				StartDate:        datePtr("2024-01-01"),
				EndDate:          datePtr("2025-01-01"),
				FillBusinessDays: true,
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				assert.ErrorIs(t, err, ErrFillTooLong)
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				assert.Nil(t, report)
			},
		},
		{
			name: "Intervalo extremo com preenchimento é recusado",
			filters: domain.ReportFilters{
				StartDate:        datePtr("0001-01-01"),
				EndDate:          datePtr("9999-12-31"),
				FillBusinessDays: true,
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				assert.Nil(t, report)
			},
		},
		{
			name: "Intervalo extremo sem preenchimento",
			filters: domain.ReportFilters{
				StartDate:   datePtr("0001-01-01"),
				EndDate:     datePtr("9999-12-31"),
				Granularity: domain.GranularityMonth,
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				require.NoError(t, err)
				assert.Len(t, report.Totals, 2)
			},
		},
		{
			name:    "Data inicial depois da final",
			filters: domain.ReportFilters{StartDate: datePtr("2024-02-01"), EndDate: datePtr("2024-01-01")},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				assert.Nil(t, report)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newTestService(tt.inclusive).SalesByPeriod(tt.filters)
			tt.validate(t, report, err)
		})
	}
}

func TestService_Rankings(t *testing.T) {
	service := newTestService(false)

	collaborators, err := service.CollaboratorRanking(domain.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, collaborators.Earning, 2)
	assert.Equal(t, "col-1", collaborators.Earning[0].ID)
	assert.Equal(t, 100.0, collaborators.Earning[0].Amount)

	january, err := service.ProductRanking(domain.ReportFilters{StartDate: datePtr("2024-01-01"), EndDate: datePtr("2024-01-31")})
	require.NoError(t, err)
	require.Len(t, january.Earning, 1)
	assert.Equal(t, 230.0, january.Earning[0].Amount)
	assert.Equal(t, 3, january.Count[0].Count)
}

func TestService_ClientDebt(t *testing.T) {
	service := newTestService(false)

	debt, err := service.ClientDebt("cli-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.ClientDebt{ClientID: "cli-1", ClientName: "Maria", Debt: 20}, debt)

	_, err = service.ClientDebt("cli-404")
	assert.ErrorIs(t, err, ErrClientNotFound)

	assert.Equal(t, []domain.ClientDebt{{ClientID: "cli-1", ClientName: "Maria", Debt: 20}}, service.ClientDebts())
}

func TestService_Dashboard(t *testing.T) {
	service := newTestService(false)

	dashboard, err := service.Dashboard(domain.ReportFilters{FillBusinessDays: true})
	require.NoError(t, err)

	assert.Equal(t, uint64(7), dashboard.SnapshotVersion)
	assert.Equal(t, day("2024-01-10"), dashboard.SnapshotTakenAt)
	// dias úteis preenchidos entre o primeiro e o último dia com venda
	assert.Equal(t, "2024-01-01", dashboard.SalesByDay[0].Period)
	assert.Equal(t, "2024-02-01", dashboard.SalesByDay[len(dashboard.SalesByDay)-1].Period)
	for _, total := range dashboard.SalesByDay {
		assert.False(t, reporting.IsWeekend(day(total.Period)), total.Period)
	}
	assert.Len(t, dashboard.Debts, 1)
	assert.Len(t, dashboard.CollaboratorRanking.Count, 2)
}

func TestService_DashboardRespectsFillLimit(t *testing.T) {
	service := NewService(staticSource{snap: fixtureSnapshot()}, reporting.New(time.UTC), Options{MaxFillDays: 3})

	_, err := service.Dashboard(domain.ReportFilters{
		StartDate:        datePtr("2024-01-01"),
		EndDate:          datePtr("2024-01-05"),
		FillBusinessDays: true,
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	dashboard, err := service.Dashboard(domain.ReportFilters{
		StartDate:        datePtr("2024-01-01"),
		EndDate:          datePtr("2024-01-04"),
		FillBusinessDays: true,
	})
	require.NoError(t, err)
	assert.Len(t, dashboard.SalesByDay, 3)
}
