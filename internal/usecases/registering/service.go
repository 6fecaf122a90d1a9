// Package registering cuida do cadastro de clientes, colaboradores, veículos,
// produtos, formas de pagamento e vendas, validando os dados antes de gravar.
package registering

import (
	"context"
	"errors"

	"github.com/vfg2006/wash-manager-api/infrastructure/repository"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/notification"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/log"
)

// Nomes das coleções repassados ao snapshot
const (
	CollectionClients        = "clients"
	CollectionCollaborators  = "collaborators"
	CollectionVehicles       = "vehicles"
	CollectionProducts       = "products"
	CollectionPaymentMethods = "payment_methods"
	CollectionSales          = "sales"
)

type Registrar interface {
	ListClients(ctx context.Context) ([]*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error

	ListCollaborators(ctx context.Context) ([]*domain.Collaborator, error)
	GetCollaborator(ctx context.Context, id string) (*domain.Collaborator, error)
	CreateCollaborator(ctx context.Context, req *domain.CreateCollaboratorRequest) (*domain.Collaborator, error)
	UpdateCollaborator(ctx context.Context, req *domain.UpdateCollaboratorRequest) (*domain.Collaborator, error)
	DeleteCollaborator(ctx context.Context, id string) error

	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListPaymentMethods(ctx context.Context) ([]*domain.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error

	ListSales(ctx context.Context, filter repository.SaleFilter) ([]*domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	UpdateSalePaidValue(ctx context.Context, id string, paidValue float64) (*domain.Sale, error)
	DeleteSale(ctx context.Context, id string) error
}

// ChangeNotifier é avisado depois de cada gravação bem sucedida
type ChangeNotifier interface {
	NotifyChanged(collection string)
}

type Repositories struct {
	Clients        repository.ClientRepository
	Collaborators  repository.CollaboratorRepository
	Vehicles       repository.VehicleRepository
	Products       repository.ProductRepository
	PaymentMethods repository.PaymentMethodRepository
	Sales          repository.SaleRepository
}

type Service struct {
	repos     Repositories
	notifier  ChangeNotifier
	publisher notification.Publisher
}

func NewService(repos Repositories, notifier ChangeNotifier, publisher notification.Publisher) Registrar {
	return &Service{
		repos:     repos,
		notifier:  notifier,
		publisher: publisher,
	}
}

func (s *Service) changed(ctx context.Context, collection string) {
	log.ForContext(ctx).WithField("collection", collection).Debug("registering: coleção alterada")
	if s.notifier != nil {
		s.notifier.NotifyChanged(collection)
	}
}

func (s *Service) publish(kind notification.Kind, message string) {
	if s.publisher != nil {
		s.publisher.Publish(kind, message)
	}
}

// storeError converte erros do repositório em erros de cadastro
func storeError(err error, entityID, details string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NewEntityError(ErrNotFound, apiErrors.ErrRecordNotFound, entityID, details)
	case errors.Is(err, repository.ErrDuplicate):
		return NewEntityError(ErrAlreadyExists, apiErrors.ErrRecordAlreadyExists, entityID, details)
	default:
		return NewEntityError(err, apiErrors.ErrDatabaseOperation, entityID, details)
	}
}

func notFound(entityID, details string) error {
	return NewEntityError(ErrNotFound, apiErrors.ErrRecordNotFound, entityID, details)
}

func missing(details string) error {
	return NewRegisterError(ErrMissingData, apiErrors.ErrMissingRequiredData, details)
}
