package registering

import (
	"context"
	"strings"

	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
)

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repos.Products.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "Erro ao listar produtos")
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, id, "Erro ao buscar produto")
	}
	if product == nil {
		return nil, notFound(id, "Produto não encontrado")
	}
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	product.ID = utils.GenerateID()
	if err := s.repos.Products.Create(ctx, product); err != nil {
		return nil, storeError(err, product.ID, "Erro ao cadastrar produto")
	}

	s.changed(ctx, CollectionProducts)
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.repos.Products.Update(ctx, product); err != nil {
		return nil, storeError(err, product.ID, "Erro ao atualizar produto")
	}

	s.changed(ctx, CollectionProducts)
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repos.Products.Delete(ctx, id); err != nil {
		return storeError(err, id, "Erro ao remover produto")
	}

	s.changed(ctx, CollectionProducts)
	return nil
}

func validateProduct(product *domain.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return missing("Nome do produto é obrigatório")
	}
	if !utils.IsFiniteNonNegative(product.Price) {
		return NewRegisterError(ErrInvalidAmount, apiErrors.ErrInvalidAmount, "Preço deve ser um número maior ou igual a zero")
	}
	product.Price = utils.RoundWithTwoDecimalPlace(product.Price)
	return nil
}

func (s *Service) ListPaymentMethods(ctx context.Context) ([]*domain.PaymentMethod, error) {
	methods, err := s.repos.PaymentMethods.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "Erro ao listar formas de pagamento")
	}
	return methods, nil
}

func (s *Service) GetPaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	method, err := s.repos.PaymentMethods.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, id, "Erro ao buscar forma de pagamento")
	}
	if method == nil {
		return nil, notFound(id, "Forma de pagamento não encontrada")
	}
	return method, nil
}

func (s *Service) CreatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	method.Name = strings.TrimSpace(method.Name)
	if method.Name == "" {
		return nil, missing("Nome da forma de pagamento é obrigatório")
	}

	method.ID = utils.GenerateID()
	if err := s.repos.PaymentMethods.Create(ctx, method); err != nil {
		return nil, storeError(err, method.ID, "Erro ao cadastrar forma de pagamento")
	}

	s.changed(ctx, CollectionPaymentMethods)
	return method, nil
}

func (s *Service) UpdatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	method.Name = strings.TrimSpace(method.Name)
	if method.Name == "" {
		return nil, missing("Nome da forma de pagamento é obrigatório")
	}

	if err := s.repos.PaymentMethods.Update(ctx, method); err != nil {
		return nil, storeError(err, method.ID, "Erro ao atualizar forma de pagamento")
	}

	s.changed(ctx, CollectionPaymentMethods)
	return method, nil
}

func (s *Service) DeletePaymentMethod(ctx context.Context, id string) error {
	if err := s.repos.PaymentMethods.Delete(ctx, id); err != nil {
		return storeError(err, id, "Erro ao remover forma de pagamento")
	}

	s.changed(ctx, CollectionPaymentMethods)
	return nil
}
