package reporting

import (
	"sort"
	"time"

	"github.com/vfg2006/wash-manager-api/internal/domain"
)

// ObservedRange retorna o menor e o maior dia presentes na série.
// O fim é exclusivo: o último dia observado já está na série.
func ObservedRange(totals []domain.PeriodTotal) (domain.DayRange, bool) {
	if len(totals) == 0 {
		return domain.DayRange{}, false
	}

	first, last := totals[0].Period, totals[0].Period
	for _, total := range totals[1:] {
		if total.Period < first {
			first = total.Period
		}
		if total.Period > last {
			last = total.Period
		}
	}

	return domain.DayRange{Start: first, End: last}, true
}

// FillBusinessDays insere total zero para cada dia útil do intervalo que não
// aparece na série. Sábados e domingos nunca são inseridos, mas registros reais
// de fim de semana são mantidos. O resultado sai em ordem crescente de data.
func FillBusinessDays(totals []domain.PeriodTotal, dayRange domain.DayRange) []domain.PeriodTotal {
	filled := make([]domain.PeriodTotal, 0, len(totals))
	present := make(map[string]struct{}, len(totals))
	for _, total := range totals {
		present[total.Period] = struct{}{}
		filled = append(filled, total)
	}

	start, errStart := time.Parse(time.DateOnly, dayRange.Start)
	end, errEnd := time.Parse(time.DateOnly, dayRange.End)
	if errStart == nil && errEnd == nil {
		for day := start; withinRange(day, end, dayRange.InclusiveEnd); day = day.AddDate(0, 0, 1) {
			if IsWeekend(day) {
				continue
			}

			label := day.Format(time.DateOnly)
			if _, ok := present[label]; ok {
				continue
			}
			filled = append(filled, domain.PeriodTotal{Period: label})
		}
	}

	sort.SliceStable(filled, func(i, j int) bool {
		return filled[i].Period < filled[j].Period
	})

	return filled
}

// IsWeekend indica se o dia cai em um sábado ou domingo
func IsWeekend(day time.Time) bool {
	weekday := day.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

func withinRange(day, end time.Time, inclusive bool) bool {
	if inclusive {
		return !day.After(end)
	}
	return day.Before(end)
}
