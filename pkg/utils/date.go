package utils

import "time"

const MonthLayout = "01-2006"

// ParseDate interpreta uma data YYYY-MM-DD no fuso informado.
// Retorna nil quando a string está vazia.
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// ParseMonth valida um mês no formato MM-YYYY
func ParseMonth(month string) (time.Time, error) {
	return time.Parse(MonthLayout, month)
}

// PreviousDayMonth retorna o mês (MM-YYYY) do dia anterior a now
func PreviousDayMonth(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(MonthLayout)
}
