package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/wash-manager-api/internal/api/handler/router"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/snapshot"
	"github.com/vfg2006/wash-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/wash-manager-api/internal/usecases/ranking"
	"github.com/vfg2006/wash-manager-api/internal/usecases/registering"
	"github.com/vfg2006/wash-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/wash-manager-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck(source snapshot.Source) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(source),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/collaborators/:id/reset-password",
			Method:      http.MethodPost,
			Handler:     ResetPassword(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

// resource monta as cinco rotas de cadastro de um recurso
type resource struct {
	path   string
	list   http.Handler
	get    http.Handler
	create http.Handler
	update http.Handler
	remove http.Handler
	read   func(http.Handler) http.Handler
	write  func(http.Handler) http.Handler
	delete func(http.Handler) http.Handler
}

func (res resource) routes() []router.Route {
	item := res.path + "/:id"
	routes := []router.Route{
		{Path: res.path, Method: http.MethodGet, Handler: res.list, Middlewares: middlewares{res.read}},
		{Path: res.path, Method: http.MethodPost, Handler: res.create, Middlewares: middlewares{res.write}},
		{Path: item, Method: http.MethodGet, Handler: res.get, Middlewares: middlewares{res.read}},
		{Path: item, Method: http.MethodDelete, Handler: res.remove, Middlewares: middlewares{res.delete}},
	}

	// recursos sem update (vendas) não expõem PUT
	if res.update != nil {
		routes = append(routes, router.Route{Path: item, Method: http.MethodPut, Handler: res.update, Middlewares: middlewares{res.write}})
	}
	return routes
}

func Registering(service registering.Registrar, loc *time.Location) []router.Route {
	all, admin := middleware.AllRoles(), middleware.AdminOnly()

	resources := []resource{
		{
			path:   "/v1/clients",
			list:   listHandler(service.ListClients, "Erro ao listar clientes"),
			get:    getHandler(service.GetClient, "Erro ao buscar cliente"),
			create: createHandler(service.CreateClient, "Erro ao cadastrar cliente"),
			update: updateHandler(service.UpdateClient, func(c *domain.Client, id string) { c.ID = id }, "Erro ao atualizar cliente"),
			remove: deleteHandler(service.DeleteClient, "Erro ao remover cliente"),
			read:   all, write: all, delete: all,
		},
		{
			path:   "/v1/vehicles",
			list:   listHandler(service.ListVehicles, "Erro ao listar veículos"),
			get:    getHandler(service.GetVehicle, "Erro ao buscar veículo"),
			create: createHandler(service.CreateVehicle, "Erro ao cadastrar veículo"),
			update: updateHandler(service.UpdateVehicle, func(v *domain.Vehicle, id string) { v.ID = id }, "Erro ao atualizar veículo"),
			remove: deleteHandler(service.DeleteVehicle, "Erro ao remover veículo"),
			read:   all, write: all, delete: all,
		},
		{
			path:   "/v1/products",
			list:   listHandler(service.ListProducts, "Erro ao listar produtos"),
			get:    getHandler(service.GetProduct, "Erro ao buscar produto"),
			create: createHandler(service.CreateProduct, "Erro ao cadastrar produto"),
			update: updateHandler(service.UpdateProduct, func(p *domain.Product, id string) { p.ID = id }, "Erro ao atualizar produto"),
			remove: deleteHandler(service.DeleteProduct, "Erro ao remover produto"),
			read:   all, write: all, delete: admin,
		},
		{
			path:   "/v1/payment-methods",
			list:   listHandler(service.ListPaymentMethods, "Erro ao listar formas de pagamento"),
			get:    getHandler(service.GetPaymentMethod, "Erro ao buscar forma de pagamento"),
			create: createHandler(service.CreatePaymentMethod, "Erro ao cadastrar forma de pagamento"),
			update: updateHandler(service.UpdatePaymentMethod, func(m *domain.PaymentMethod, id string) { m.ID = id }, "Erro ao atualizar forma de pagamento"),
			remove: deleteHandler(service.DeletePaymentMethod, "Erro ao remover forma de pagamento"),
			read:   all, write: all, delete: admin,
		},
		{
			path:   "/v1/sales",
			list:   ListSales(service, loc),
			get:    getHandler(service.GetSale, "Erro ao buscar venda"),
			create: createHandler(service.CreateSale, "Erro ao registrar venda"),
			remove: deleteHandler(service.DeleteSale, "Erro ao remover venda"),
			read:   all, write: all, delete: admin,
		},
		{
			path:   "/v1/collaborators",
			list:   listHandler(service.ListCollaborators, "Erro ao listar colaboradores"),
			get:    getHandler(service.GetCollaborator, "Erro ao buscar colaborador"),
			create: createHandler(service.CreateCollaborator, "Erro ao cadastrar colaborador"),
			update: updateHandler(service.UpdateCollaborator, func(c *domain.UpdateCollaboratorRequest, id string) { c.ID = id }, "Erro ao atualizar colaborador"),
			remove: deleteHandler(service.DeleteCollaborator, "Erro ao remover colaborador"),
			read:   admin, write: admin, delete: admin,
		},
	}

	routes := make([]router.Route, 0, len(resources)*5+1)
	for _, res := range resources {
		routes = append(routes, res.routes()...)
	}

	return append(routes, router.Route{
		Path:        "/v1/sales/:id/paid-value",
		Method:      http.MethodPatch,
		Handler:     UpdateSalePaidValue(service),
		Middlewares: middlewares{all},
	})
}

func Reports(service reporting.Reporter, rankingService ranking.RankingService, loc *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/sales",
			Method:      http.MethodGet,
			Handler:     GetSalesReport(service, loc),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/collaborators",
			Method:      http.MethodGet,
			Handler:     GetCollaboratorRanking(service, loc),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/collaborators/leaderboard",
			Method:      http.MethodGet,
			Handler:     GetLeaderboard(rankingService),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/products",
			Method:      http.MethodGet,
			Handler:     GetProductRanking(service, loc),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/debts",
			Method:      http.MethodGet,
			Handler:     GetDebts(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/clients/:id/debt",
			Method:      http.MethodGet,
			Handler:     GetClientDebt(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service, loc),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

func Notices(feed NoticeFeed) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/notices/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestNotice(feed),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func ScheduledJobs(jobs Jobs) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/jobs/:type/run",
			Method:      http.MethodPost,
			Handler:     RunJob(jobs),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/jobs",
			Method:      http.MethodGet,
			Handler:     GetJobsStatus(jobs),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}
