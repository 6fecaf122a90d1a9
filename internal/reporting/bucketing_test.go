package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

func TestFillBusinessDays(t *testing.T) {
	tests := []struct {
		name     string
		totals   []domain.PeriodTotal
		dayRange domain.DayRange
		expected []domain.PeriodTotal
	}{
		{
			name: "Cenário de exemplo com fim exclusivo",
			totals: []domain.PeriodTotal{
				{Period: "2024-01-01", Total: 100},
				{Period: "2024-01-03", Total: 30},
			},
			dayRange: domain.DayRange{Start: "2024-01-01", End: "2024-01-04"},
			expected: []domain.PeriodTotal{
				{Period: "2024-01-01", Total: 100},
				{Period: "2024-01-02", Total: 0},
				{Period: "2024-01-03", Total: 30},
			},
		},
		{
			name: "Fim inclusivo adiciona o último dia",
			totals: []domain.PeriodTotal{
				{Period: "2024-01-01", Total: 100},
			},
			dayRange: domain.DayRange{Start: "2024-01-01", End: "2024-01-03", InclusiveEnd: true},
			expected: []domain.PeriodTotal{
				{Period: "2024-01-01", Total: 100},
				{Period: "2024-01-02", Total: 0},
				{Period: "2024-01-03", Total: 0},
			},
		},
		{
			name: "Fim de semana não é preenchido mas dados reais permanecem",
			totals: []domain.PeriodTotal{
				{Period: "2024-01-05", Total: 10}, // sexta
				{Period: "2024-01-06", Total: 25}, // sábado com venda
				{Period: "2024-01-09", Total: 5},  // terça
			},
			dayRange: domain.DayRange{Start: "2024-01-05", End: "2024-01-09"},
			expected: []domain.PeriodTotal{
				{Period: "2024-01-05", Total: 10},
				{Period: "2024-01-06", Total: 25},
				{Period: "2024-01-08", Total: 0},
				{Period: "2024-01-09", Total: 5},
			},
		},
		{
			name:     "Intervalo explícito sem dados",
			totals:   nil,
			dayRange: domain.DayRange{Start: "2024-01-12", End: "2024-01-15", InclusiveEnd: true},
			expected: []domain.PeriodTotal{
				{Period: "2024-01-12", Total: 0},
				{Period: "2024-01-15", Total: 0},
			},
		},
		{
			name: "Intervalo inválido apenas ordena a série",
			totals: []domain.PeriodTotal{
				{Period: "2024-01-03", Total: 3},
				{Period: "2024-01-01", Total: 1},
			},
			dayRange: domain.DayRange{Start: "ontem", End: "hoje"},
			expected: []domain.PeriodTotal{
				{Period: "2024-01-01", Total: 1},
				{Period: "2024-01-03", Total: 3},
			},
		},
		{
			name:     "Série vazia sem intervalo",
			totals:   []domain.PeriodTotal{},
			dayRange: domain.DayRange{},
			expected: []domain.PeriodTotal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FillBusinessDays(tt.totals, tt.dayRange))
		})
	}
}

func TestFillBusinessDays_NeverInsertsWeekends(t *testing.T) {
	totals := []domain.PeriodTotal{
		{Period: "2024-03-02", Total: 12}, // sábado real
		{Period: "2024-03-31", Total: 7},  // domingo real
	}
	observed := map[string]bool{"2024-03-02": true, "2024-03-31": true}

	filled := FillBusinessDays(totals, domain.DayRange{Start: "2024-03-01", End: "2024-03-31", InclusiveEnd: true})

	for _, total := range filled {
		day, err := time.Parse(time.DateOnly, total.Period)
		assert.NoError(t, err)
		if IsWeekend(day) {
			assert.True(t, observed[total.Period], "dia de fim de semana inserido: %s", total.Period)
		}
	}
	// Março de 2024 tem 21 dias úteis, mais os dois registros reais de fim de semana
	assert.Len(t, filled, 23)
}

func TestObservedRange(t *testing.T) {
	_, ok := ObservedRange(nil)
	assert.False(t, ok)

	dayRange, ok := ObservedRange([]domain.PeriodTotal{
		{Period: "2024-01-03"},
		{Period: "2024-01-01"},
		{Period: "2024-01-10"},
	})
	assert.True(t, ok)
	assert.Equal(t, domain.DayRange{Start: "2024-01-01", End: "2024-01-10"}, dayRange)
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		day      string
		expected bool
	}{
		{day: "2024-01-05", expected: false}, // sexta
		{day: "2024-01-06", expected: true},  // sábado
		{day: "2024-01-07", expected: true},  // domingo
		{day: "2024-01-08", expected: false}, // segunda
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			day, _ := time.Parse(time.DateOnly, tt.day)
			assert.Equal(t, tt.expected, IsWeekend(day))
		})
	}
}
