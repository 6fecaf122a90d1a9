// Package reporting calcula as visões agregadas de vendas consumidas pelos
// gráficos e tabelas do painel: totais por período, rankings por colaborador
// e por produto e o saldo devedor de cada cliente.
//
// Todas as funções são puras: recebem uma fatia de um snapshot, não alteram a
// entrada e alocam apenas o resultado, então podem ser chamadas em paralelo.
package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

// Aggregator agrupa vendas por dia no fuso horário de referência dos relatórios
type Aggregator struct {
	loc *time.Location
}

func New(loc *time.Location) Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return Aggregator{loc: loc}
}

func (a Aggregator) Location() *time.Location {
	if a.loc == nil {
		return time.UTC
	}
	return a.loc
}

// DayLabel retorna o dia (YYYY-MM-DD) de um instante no fuso dos relatórios
func (a Aggregator) DayLabel(t time.Time) string {
	return t.In(a.Location()).Format(time.DateOnly)
}

// TotalsByDay soma o valor pago das vendas por dia de criação, em ordem crescente de data
func (a Aggregator) TotalsByDay(sales []domain.Sale) []domain.PeriodTotal {
	byDay := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		day := a.DayLabel(sale.CreatedAt)
		byDay[day] = byDay[day].Add(domain.Amount(sale.PaidValue))
	}
	return sortedTotals(byDay)
}

// TotalsByPeriod reagrupa os totais diários na granularidade pedida
func (a Aggregator) TotalsByPeriod(sales []domain.Sale, granularity domain.Granularity) []domain.PeriodTotal {
	return Regroup(a.TotalsByDay(sales), granularity)
}

// Regroup trunca o rótulo de cada total para a granularidade (4 caracteres para
// ano, 7 para mês, 10 para dia) e soma os totais que caem no mesmo rótulo.
func Regroup(totals []domain.PeriodTotal, granularity domain.Granularity) []domain.PeriodTotal {
	size := granularity.LabelLength()

	grouped := make(map[string]decimal.Decimal)
	for _, total := range totals {
		label := total.Period
		if len(label) > size {
			label = label[:size]
		}
		grouped[label] = grouped[label].Add(domain.Amount(total.Total))
	}
	return sortedTotals(grouped)
}

// SumTotals soma todos os totais de uma série
func SumTotals(totals []domain.PeriodTotal) float64 {
	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(domain.Amount(total.Total))
	}
	return sum.InexactFloat64()
}

// RankByCollaborator soma o valor pago e conta as vendas de cada colaborador.
// Vendas de colaboradores que não existem no mapa são ignoradas.
func RankByCollaborator(sales []domain.Sale, collaborators map[string]domain.Collaborator) domain.Ranking {
	acc := newRankAccumulator()
	for _, sale := range sales {
		collaborator, ok := collaborators[sale.CollaboratorID]
		if !ok {
			continue
		}
		acc.add(sale.CollaboratorID, collaborator.Name, domain.Amount(sale.PaidValue))
	}
	return acc.ranking()
}

// RankByProduct soma preço × quantidade de cada produto vendido e conta uma vez
// por item de venda (não por unidade). Produtos fora do mapa são ignorados.
func RankByProduct(sales []domain.Sale, products map[string]domain.Product) domain.Ranking {
	acc := newRankAccumulator()
	for _, sale := range sales {
		for productID, line := range sale.Products {
			product, ok := products[productID]
			if !ok {
				continue
			}
			acc.add(productID, product.Name, line.Subtotal())
		}
	}
	return acc.ranking()
}

// ClientDebt retorna o saldo devedor de um cliente cadastrado, arredondado em
// duas casas. Vendas com cliente embutido não entram na conta.
func ClientDebt(sales []domain.Sale, clientID string) float64 {
	debt := decimal.Zero
	for _, sale := range sales {
		switch sale.Client.Kind {
		case domain.ClientRefReference:
			if sale.Client.ID != clientID {
				continue
			}
			debt = debt.Add(sale.Outstanding())
		case domain.ClientRefEmbedded:
			continue
		}
	}
	return debt.Round(2).InexactFloat64()
}

// DebtByClient calcula o saldo devedor de todos os clientes cadastrados com
// saldo diferente de zero, do maior para o menor.
func DebtByClient(sales []domain.Sale, clients map[string]domain.Client) []domain.ClientDebt {
	debts := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		switch sale.Client.Kind {
		case domain.ClientRefReference:
			if _, ok := clients[sale.Client.ID]; !ok {
				continue
			}
			debts[sale.Client.ID] = debts[sale.Client.ID].Add(sale.Outstanding())
		case domain.ClientRefEmbedded:
			continue
		}
	}

	result := make([]domain.ClientDebt, 0, len(debts))
	for clientID, debt := range debts {
		rounded := debt.Round(2)
		if rounded.IsZero() {
			continue
		}
		result = append(result, domain.ClientDebt{
			ClientID:   clientID,
			ClientName: clients[clientID].Name,
			Debt:       rounded.InexactFloat64(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Debt != result[j].Debt {
			return result[i].Debt > result[j].Debt
		}
		if result[i].ClientName != result[j].ClientName {
			return result[i].ClientName < result[j].ClientName
		}
		return result[i].ClientID < result[j].ClientID
	})

	return result
}

func sortedTotals(totals map[string]decimal.Decimal) []domain.PeriodTotal {
	result := make([]domain.PeriodTotal, 0, len(totals))
	for period, total := range totals {
		result = append(result, domain.PeriodTotal{
			Period: period,
			Total:  total.InexactFloat64(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Period < result[j].Period
	})

	return result
}

type rankEntry struct {
	id     string
	name   string
	amount decimal.Decimal
	count  int
}

type rankAccumulator struct {
	entries map[string]*rankEntry
}

func newRankAccumulator() *rankAccumulator {
	return &rankAccumulator{entries: make(map[string]*rankEntry)}
}

func (r *rankAccumulator) add(id, name string, amount decimal.Decimal) {
	entry, ok := r.entries[id]
	if !ok {
		entry = &rankEntry{id: id, name: name}
		r.entries[id] = entry
	}
	entry.amount = entry.amount.Add(amount)
	entry.count++
}

func (r *rankAccumulator) ranking() domain.Ranking {
	entries := make([]*rankEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}

	byName := func(a, b *rankEntry) bool {
		if a.name != b.name {
			return a.name < b.name
		}
		return a.id < b.id
	}

	sort.Slice(entries, func(i, j int) bool {
		if cmp := entries[i].amount.Cmp(entries[j].amount); cmp != 0 {
			return cmp > 0
		}
		return byName(entries[i], entries[j])
	})
	earning := make([]domain.RankingAmount, 0, len(entries))
	for _, entry := range entries {
		earning = append(earning, domain.RankingAmount{
			ID:     entry.id,
			Name:   entry.name,
			Amount: entry.amount.InexactFloat64(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return byName(entries[i], entries[j])
	})
	count := make([]domain.RankingCount, 0, len(entries))
	for _, entry := range entries {
		count = append(count, domain.RankingCount{
			ID:    entry.id,
			Name:  entry.name,
			Count: entry.count,
		})
	}

	return domain.Ranking{Earning: earning, Count: count}
}
