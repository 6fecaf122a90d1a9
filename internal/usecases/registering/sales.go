package registering

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/wash-manager-api/infrastructure/repository"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/notification"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
)

func (s *Service) ListSales(ctx context.Context, filter repository.SaleFilter) ([]*domain.Sale, error) {
	sales, err := s.repos.Sales.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "", "Erro ao listar vendas")
	}
	return sales, nil
}

func (s *Service) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	sale, err := s.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, id, "Erro ao buscar venda")
	}
	if sale == nil {
		return nil, notFound(id, "Venda não encontrada")
	}
	return sale, nil
}

func (s *Service) CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if err := s.validateSale(ctx, sale); err != nil {
		return nil, err
	}

	code, err := utils.GenerateCode()
	if err != nil {
		return nil, NewRegisterError(err, apiErrors.ErrInternalServer, "Falha ao gerar código da venda")
	}
	sale.ID = utils.GenerateID()
	sale.Code = code

	if err := s.repos.Sales.Create(ctx, sale); err != nil {
		return nil, storeError(err, sale.ID, "Erro ao registrar venda")
	}

	s.changed(ctx, CollectionSales)
	s.publish(notification.KindSaleRegistered, fmt.Sprintf("Venda %s registrada", sale.Code))
	return sale, nil
}

// UpdateSalePaidValue registra um pagamento parcial ou a quitação da venda
func (s *Service) UpdateSalePaidValue(ctx context.Context, id string, paidValue float64) (*domain.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validatePaidValue(paidValue, sale.ValueDecimal()); err != nil {
		return nil, err
	}

	if err := s.repos.Sales.UpdatePaidValue(ctx, id, paidValue); err != nil {
		return nil, storeError(err, id, "Erro ao atualizar valor pago")
	}
	sale.PaidValue = paidValue

	s.changed(ctx, CollectionSales)
	return sale, nil
}

func (s *Service) DeleteSale(ctx context.Context, id string) error {
	if err := s.repos.Sales.Delete(ctx, id); err != nil {
		return storeError(err, id, "Erro ao remover venda")
	}

	s.changed(ctx, CollectionSales)
	return nil
}

func (s *Service) validateSale(ctx context.Context, sale *domain.Sale) error {
	if len(sale.Products) == 0 {
		return missing("A venda precisa de pelo menos um produto")
	}

	for productID, line := range sale.Products {
		if line.Quantity <= 0 {
			return NewEntityError(ErrInvalidAmount, apiErrors.ErrInvalidAmount, productID, "Quantidade deve ser maior que zero")
		}
		if !utils.IsFiniteNonNegative(line.Price) {
			return NewEntityError(ErrInvalidAmount, apiErrors.ErrInvalidAmount, productID, "Preço deve ser um número maior ou igual a zero")
		}

		product, err := s.repos.Products.GetByID(ctx, productID)
		if err != nil {
			return storeError(err, productID, "Erro ao buscar produto")
		}
		if product == nil {
			return NewEntityError(ErrInvalidReference, apiErrors.ErrInvalidReference, productID, "Produto não encontrado")
		}
	}

	if sale.CollaboratorID == "" {
		return missing("Colaborador é obrigatório")
	}
	collaborator, err := s.repos.Collaborators.GetByID(ctx, sale.CollaboratorID)
	if err != nil {
		return storeError(err, sale.CollaboratorID, "Erro ao buscar colaborador")
	}
	if collaborator == nil {
		return NewEntityError(ErrInvalidReference, apiErrors.ErrInvalidReference, sale.CollaboratorID, "Colaborador não encontrado")
	}

	if sale.PaymentMethodID == "" {
		return missing("Forma de pagamento é obrigatória")
	}
	method, err := s.repos.PaymentMethods.GetByID(ctx, sale.PaymentMethodID)
	if err != nil {
		return storeError(err, sale.PaymentMethodID, "Erro ao buscar forma de pagamento")
	}
	if method == nil {
		return NewEntityError(ErrInvalidReference, apiErrors.ErrInvalidReference, sale.PaymentMethodID, "Forma de pagamento não encontrada")
	}

	if sale.VehicleID != "" {
		vehicle, err := s.repos.Vehicles.GetByID(ctx, sale.VehicleID)
		if err != nil {
			return storeError(err, sale.VehicleID, "Erro ao buscar veículo")
		}
		if vehicle == nil {
			return NewEntityError(ErrInvalidReference, apiErrors.ErrInvalidReference, sale.VehicleID, "Veículo não encontrado")
		}
	}

	if err := s.validateSaleClient(ctx, &sale.Client); err != nil {
		return err
	}

	return validatePaidValue(sale.PaidValue, sale.ValueDecimal())
}

func (s *Service) validateSaleClient(ctx context.Context, ref *domain.ClientRef) error {
	switch ref.Kind {
	case domain.ClientRefReference:
		if ref.ID == "" {
			return missing("Cliente é obrigatório")
		}
		client, err := s.repos.Clients.GetByID(ctx, ref.ID)
		if err != nil {
			return storeError(err, ref.ID, "Erro ao buscar cliente")
		}
		if client == nil {
			return NewEntityError(ErrInvalidReference, apiErrors.ErrInvalidReference, ref.ID, "Cliente não encontrado")
		}
		ref.Record = nil
	case domain.ClientRefEmbedded:
		if ref.Record == nil || strings.TrimSpace(ref.Record.Name) == "" {
			return missing("Nome do cliente avulso é obrigatório")
		}
		ref.ID = ""
	default:
		return NewRegisterError(ErrInvalidType, apiErrors.ErrInvalidFormat, "Cliente deve ser reference ou embedded")
	}
	return nil
}

// validatePaidValue garante 0 <= pago <= valor da venda
func validatePaidValue(paid float64, value decimal.Decimal) error {
	if !utils.IsFiniteNonNegative(paid) {
		return NewRegisterError(ErrInvalidAmount, apiErrors.ErrInvalidAmount, "Valor pago deve ser um número maior ou igual a zero")
	}
	if domain.Amount(paid).GreaterThan(value) {
		return NewRegisterError(ErrInvalidAmount, apiErrors.ErrInvalidAmount,
			fmt.Sprintf("Valor pago (%.2f) maior que o valor da venda (%s)", paid, value.StringFixed(2)))
	}
	return nil
}
