package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/usecases/ranking"
	"github.com/vfg2006/wash-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
)

// parseReportFilters lê granularity, start_date, end_date e fill da query
func parseReportFilters(w http.ResponseWriter, r *http.Request, loc *time.Location) (domain.ReportFilters, bool) {
	query := r.URL.Query()

	granularity, err := domain.ParseGranularity(query.Get("granularity"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
		return domain.ReportFilters{}, false
	}

	startDate, err := utils.ParseDate(query.Get("start_date"), loc)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use YYYY-MM-DD", nil)
		return domain.ReportFilters{}, false
	}

	endDate, err := utils.ParseDate(query.Get("end_date"), loc)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use YYYY-MM-DD", nil)
		return domain.ReportFilters{}, false
	}

	fill := false
	if raw := query.Get("fill"); raw != "" {
		fill, err = strconv.ParseBool(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro fill deve ser true ou false", nil)
			return domain.ReportFilters{}, false
		}
	}

	return domain.ReportFilters{
		StartDate:        startDate,
		EndDate:          endDate,
		Granularity:      granularity,
		FillBusinessDays: fill,
	}, true
}

func GetSalesReport(service reporting.Reporter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := parseReportFilters(w, r, loc)
		if !ok {
			return
		}

		report, err := service.SalesByPeriod(filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar relatório de vendas")
			return
		}

		respondJSON(w, r, http.StatusOK, report)
	}
}

func GetCollaboratorRanking(service reporting.Reporter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := parseReportFilters(w, r, loc)
		if !ok {
			return
		}

		result, err := service.CollaboratorRanking(filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar ranking de colaboradores")
			return
		}

		respondJSON(w, r, http.StatusOK, result)
	}
}

func GetProductRanking(service reporting.Reporter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := parseReportFilters(w, r, loc)
		if !ok {
			return
		}

		result, err := service.ProductRanking(filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar ranking de produtos")
			return
		}

		respondJSON(w, r, http.StatusOK, result)
	}
}

// GetLeaderboard retorna o ranking mensal gravado pelo job (month=MM-YYYY)
func GetLeaderboard(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leaderboard, err := service.GetLeaderboard(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar ranking mensal de colaboradores")
			return
		}

		respondJSON(w, r, http.StatusOK, leaderboard)
	}
}

func GetDebts(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, service.ClientDebts())
	}
}

func GetClientDebt(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		debt, err := service.ClientDebt(clientID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular débito do cliente")
			return
		}

		respondJSON(w, r, http.StatusOK, debt)
	}
}

func GetDashboard(service reporting.Reporter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := parseReportFilters(w, r, loc)
		if !ok {
			return
		}

		dashboard, err := service.Dashboard(filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar painel")
			return
		}

		respondJSON(w, r, http.StatusOK, dashboard)
	}
}
