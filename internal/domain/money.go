package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Amount converte um valor monetário para decimal. NaN e infinitos viram zero
// para que somas continuem sendo números reais bem definidos.
func Amount(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
