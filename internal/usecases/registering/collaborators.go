package registering

import (
	"context"
	"strings"

	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

func (s *Service) ListCollaborators(ctx context.Context) ([]*domain.Collaborator, error) {
	collaborators, err := s.repos.Collaborators.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "Erro ao listar colaboradores")
	}
	return collaborators, nil
}

func (s *Service) GetCollaborator(ctx context.Context, id string) (*domain.Collaborator, error) {
	collaborator, err := s.repos.Collaborators.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, id, "Erro ao buscar colaborador")
	}
	if collaborator == nil {
		return nil, notFound(id, "Colaborador não encontrado")
	}
	return collaborator, nil
}

func (s *Service) CreateCollaborator(ctx context.Context, req *domain.CreateCollaboratorRequest) (*domain.Collaborator, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = authenticating.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, missing("Nome, email e senha são obrigatórios")
	}

	if req.Role == "" {
		req.Role = domain.RoleEmployee
	}
	if !req.Role.Valid() {
		return nil, NewRegisterError(ErrInvalidType, apiErrors.ErrInvalidFormat, "Perfil deve ser administrator ou employee")
	}

	if err := authenticating.ValidatePasswordStrength(req.Password); err != nil {
		return nil, NewRegisterError(authenticating.ErrWeakPassword, apiErrors.ErrWeakPassword, err.Error())
	}

	existing, err := s.repos.Collaborators.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeError(err, "", "Erro ao consultar colaborador")
	}
	if existing != nil {
		return nil, NewEntityError(ErrAlreadyExists, apiErrors.ErrRecordAlreadyExists, existing.ID, "Email já cadastrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewRegisterError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	collaborator := &domain.Collaborator{
		ID:           utils.GenerateID(),
		Name:         req.Name,
		Email:        req.Email,
		TaxID:        utils.DigitsOnly(req.TaxID),
		Role:         req.Role,
		Active:       true,
		PasswordHash: string(hash),
	}

	if err := s.repos.Collaborators.Create(ctx, collaborator); err != nil {
		return nil, storeError(err, collaborator.ID, "Erro ao cadastrar colaborador")
	}

	s.changed(ctx, CollectionCollaborators)
	return collaborator, nil
}

func (s *Service) UpdateCollaborator(ctx context.Context, req *domain.UpdateCollaboratorRequest) (*domain.Collaborator, error) {
	collaborator, err := s.GetCollaborator(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		collaborator.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		email := authenticating.NormalizeEmail(*req.Email)
		if email != collaborator.Email {
			existing, err := s.repos.Collaborators.GetByEmail(ctx, email)
			if err != nil {
				return nil, storeError(err, req.ID, "Erro ao consultar colaborador")
			}
			if existing != nil {
				return nil, NewEntityError(ErrAlreadyExists, apiErrors.ErrRecordAlreadyExists, existing.ID, "Email já cadastrado")
			}
		}
		collaborator.Email = email
	}

	if req.TaxID != nil {
		collaborator.TaxID = utils.DigitsOnly(*req.TaxID)
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, NewRegisterError(ErrInvalidType, apiErrors.ErrInvalidFormat, "Perfil deve ser administrator ou employee")
		}
		collaborator.Role = *req.Role
	}

	if req.Active != nil {
		collaborator.Active = *req.Active
	}

	if collaborator.Name == "" || collaborator.Email == "" {
		return nil, missing("Nome e email são obrigatórios")
	}

	// o hash atual não é regravado
	collaborator.PasswordHash = ""
	if err := s.repos.Collaborators.Update(ctx, collaborator); err != nil {
		return nil, storeError(err, collaborator.ID, "Erro ao atualizar colaborador")
	}

	s.changed(ctx, CollectionCollaborators)
	return collaborator, nil
}

func (s *Service) DeleteCollaborator(ctx context.Context, id string) error {
	if err := s.repos.Collaborators.Delete(ctx, id); err != nil {
		return storeError(err, id, "Erro ao remover colaborador")
	}

	s.changed(ctx, CollectionCollaborators)
	return nil
}
