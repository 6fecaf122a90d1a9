package registering

import (
	"context"
	"strings"

	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

func (s *Service) ListClients(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.repos.Clients.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "Erro ao listar clientes")
	}
	return clients, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.repos.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, id, "Erro ao buscar cliente")
	}
	if client == nil {
		return nil, notFound(id, "Cliente não encontrado")
	}
	return client, nil
}

func (s *Service) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := validateClient(client); err != nil {
		return nil, err
	}

	client.ID = utils.GenerateID()
	if err := s.repos.Clients.Create(ctx, client); err != nil {
		return nil, storeError(err, client.ID, "Erro ao cadastrar cliente")
	}

	s.changed(ctx, CollectionClients)
	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := validateClient(client); err != nil {
		return nil, err
	}

	if err := s.repos.Clients.Update(ctx, client); err != nil {
		return nil, storeError(err, client.ID, "Erro ao atualizar cliente")
	}

	s.changed(ctx, CollectionClients)
	return client, nil
}

func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if err := s.repos.Clients.Delete(ctx, id); err != nil {
		return storeError(err, id, "Erro ao remover cliente")
	}

	s.changed(ctx, CollectionClients)
	return nil
}

// validateClient normaliza o documento e confere o tamanho esperado para o tipo
func validateClient(client *domain.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return missing("Nome do cliente é obrigatório")
	}

	if !client.Type.Valid() {
		return NewRegisterError(ErrInvalidType, apiErrors.ErrInvalidFormat, "Tipo de cliente deve ser individual ou entity")
	}

	client.TaxID = utils.DigitsOnly(client.TaxID)
	expected := cpfLength
	if client.Type == domain.ClientTypeEntity {
		expected = cnpjLength
	}
	if len(client.TaxID) != expected {
		return NewRegisterError(ErrInvalidDocument, apiErrors.ErrInvalidDocument, "Documento deve ter 11 dígitos (CPF) ou 14 dígitos (CNPJ)")
	}

	client.Email = strings.ToLower(strings.TrimSpace(client.Email))
	return nil
}
