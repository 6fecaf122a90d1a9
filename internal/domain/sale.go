package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductLine é o preço unitário e a quantidade de um produto no momento da venda
type ProductLine struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal retorna preço × quantidade
func (l ProductLine) Subtotal() decimal.Decimal {
	return Amount(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Sale struct {
	ID              string                 `json:"id"`
	Code            string                 `json:"code"`
	CollaboratorID  string                 `json:"collaborator_id"`
	VehicleID       string                 `json:"vehicle_id"`
	PaymentMethodID string                 `json:"payment_method_id"`
	Client          ClientRef              `json:"client"`
	Products        map[string]ProductLine `json:"products"`
	PaidValue       float64                `json:"paid_value"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// ValueDecimal soma preço × quantidade de todos os produtos da venda
func (s Sale) ValueDecimal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Products {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Value é o valor total da venda
func (s Sale) Value() float64 {
	return s.ValueDecimal().InexactFloat64()
}

// Outstanding é o quanto falta pagar da venda
func (s Sale) Outstanding() decimal.Decimal {
	return s.ValueDecimal().Sub(Amount(s.PaidValue))
}

type UpdatePaidValueRequest struct {
	PaidValue *float64 `json:"paid_value"`
}
