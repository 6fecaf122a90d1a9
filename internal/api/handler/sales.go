package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/wash-manager-api/infrastructure/repository"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/usecases/registering"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
)

// ListSales aceita start_date, end_date (YYYY-MM-DD, no fuso dos relatórios) e client_id
func ListSales(service registering.Registrar, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		startDate, err := utils.ParseDate(query.Get("start_date"), loc)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use YYYY-MM-DD", nil)
			return
		}
		endDate, err := utils.ParseDate(query.Get("end_date"), loc)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use YYYY-MM-DD", nil)
			return
		}
		if startDate != nil && endDate != nil && startDate.After(*endDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Data inicial maior que a data final", nil)
			return
		}
		if endDate != nil {
			// o filtro do repositório é exclusivo no fim
			next := endDate.AddDate(0, 0, 1)
			endDate = &next
		}

		sales, err := service.ListSales(r.Context(), repository.SaleFilter{
			StartDate: startDate,
			EndDate:   endDate,
			ClientID:  query.Get("client_id"),
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar vendas")
			return
		}
		if sales == nil {
			sales = []*domain.Sale{}
		}

		respondJSON(w, r, http.StatusOK, sales)
	}
}

// UpdateSalePaidValue registra um pagamento parcial ou total da venda
func UpdateSalePaidValue(service registering.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdatePaidValueRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.PaidValue == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Valor pago não informado", nil)
			return
		}

		sale, err := service.UpdateSalePaidValue(r.Context(), id, *req.PaidValue)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar valor pago")
			return
		}

		respondJSON(w, r, http.StatusOK, sale)
	}
}
