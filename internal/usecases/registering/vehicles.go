package registering

import (
	"context"
	"strings"

	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
)

func (s *Service) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	vehicles, err := s.repos.Vehicles.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "Erro ao listar veículos")
	}
	return vehicles, nil
}

func (s *Service) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	vehicle, err := s.repos.Vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, id, "Erro ao buscar veículo")
	}
	if vehicle == nil {
		return nil, notFound(id, "Veículo não encontrado")
	}
	return vehicle, nil
}

func (s *Service) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if err := s.validateVehicle(ctx, vehicle); err != nil {
		return nil, err
	}

	vehicle.ID = utils.GenerateID()
	if err := s.repos.Vehicles.Create(ctx, vehicle); err != nil {
		return nil, storeError(err, vehicle.ID, "Erro ao cadastrar veículo")
	}

	s.changed(ctx, CollectionVehicles)
	return vehicle, nil
}

func (s *Service) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if err := s.validateVehicle(ctx, vehicle); err != nil {
		return nil, err
	}

	if err := s.repos.Vehicles.Update(ctx, vehicle); err != nil {
		return nil, storeError(err, vehicle.ID, "Erro ao atualizar veículo")
	}

	s.changed(ctx, CollectionVehicles)
	return vehicle, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.repos.Vehicles.Delete(ctx, id); err != nil {
		return storeError(err, id, "Erro ao remover veículo")
	}

	s.changed(ctx, CollectionVehicles)
	return nil
}

func (s *Service) validateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	vehicle.Plate = NormalizePlate(vehicle.Plate)
	if vehicle.Plate == "" {
		return missing("Placa do veículo é obrigatória")
	}
	vehicle.Model = strings.TrimSpace(vehicle.Model)

	if vehicle.ClientID != nil && *vehicle.ClientID == "" {
		vehicle.ClientID = nil
	}
	if vehicle.ClientID != nil {
		owner, err := s.repos.Clients.GetByID(ctx, *vehicle.ClientID)
		if err != nil {
			return storeError(err, *vehicle.ClientID, "Erro ao buscar proprietário")
		}
		if owner == nil {
			return NewEntityError(ErrInvalidReference, apiErrors.ErrInvalidReference, *vehicle.ClientID, "Proprietário do veículo não encontrado")
		}
	}

	return nil
}

// NormalizePlate deixa a placa em maiúsculas e sem espaços ou hífens
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(plate)
	return strings.NewReplacer(" ", "", "-", "").Replace(plate)
}
