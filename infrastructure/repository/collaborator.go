package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

const collaboratorsTable = "collaborators"

var collaboratorColumns = []string{
	"id", "name", "email", "tax_id", "role", "active", "password_hash", "created_at", "updated_at",
}

type CollaboratorRepository interface {
	List(ctx context.Context) ([]*domain.Collaborator, error)
	GetByID(ctx context.Context, id string) (*domain.Collaborator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Collaborator, error)
	Create(ctx context.Context, collaborator *domain.Collaborator) error
	Update(ctx context.Context, collaborator *domain.Collaborator) error
	Delete(ctx context.Context, id string) error
}

type collaboratorRepository struct {
	conn *postgres.Connection
}

func NewCollaboratorRepository(conn *postgres.Connection) CollaboratorRepository {
	return &collaboratorRepository{conn: conn}
}

func (r *collaboratorRepository) List(ctx context.Context) ([]*domain.Collaborator, error) {
	return listCollaborators(ctx, r.conn)
}

func listCollaborators(ctx context.Context, q postgres.Queryer) ([]*domain.Collaborator, error) {
	query, args, err := squirrel.
		Select(collaboratorColumns...).
		From(collaboratorsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de colaboradores")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar colaboradores")
	}
	defer rows.Close()

	collaborators := make([]*domain.Collaborator, 0)
	for rows.Next() {
		collaborator, err := scanCollaborator(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear colaborador")
		}
		collaborators = append(collaborators, collaborator)
	}

	return collaborators, errors.Wrap(rows.Err(), "erro durante a iteração de colaboradores")
}

func (r *collaboratorRepository) GetByID(ctx context.Context, id string) (*domain.Collaborator, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *collaboratorRepository) GetByEmail(ctx context.Context, email string) (*domain.Collaborator, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

func (r *collaboratorRepository) getBy(ctx context.Context, where squirrel.Eq) (*domain.Collaborator, error) {
	query, args, err := squirrel.
		Select(collaboratorColumns...).
		From(collaboratorsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de colaborador")
	}

	collaborator, err := scanCollaborator(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar colaborador")
	}

	return collaborator, nil
}

func (r *collaboratorRepository) Create(ctx context.Context, c *domain.Collaborator) error {
	query, args, err := squirrel.
		Insert(collaboratorsTable).
		Columns("id", "name", "email", "tax_id", "role", "active", "password_hash").
		Values(c.ID, c.Name, c.Email, c.TaxID, c.Role, c.Active, c.PasswordHash).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir inserção de colaborador")
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "erro ao inserir colaborador")
	}

	return nil
}

// Update grava todos os campos. O hash da senha só é alterado quando preenchido.
func (r *collaboratorRepository) Update(ctx context.Context, c *domain.Collaborator) error {
	builder := squirrel.
		Update(collaboratorsTable).
		Set("name", c.Name).
		Set("email", c.Email).
		Set("tax_id", c.TaxID).
		Set("role", c.Role).
		Set("active", c.Active).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": c.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if c.PasswordHash != "" {
		builder = builder.Set("password_hash", c.PasswordHash)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de colaborador")
	}

	return execAffectingOne(ctx, r.conn, query, args, "erro ao atualizar colaborador")
}

func (r *collaboratorRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, collaboratorsTable, id)
}

func scanCollaborator(row rowScanner) (*domain.Collaborator, error) {
	c := &domain.Collaborator{}
	var taxID sql.NullString

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&taxID,
		&c.Role,
		&c.Active,
		&c.PasswordHash,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.TaxID = taxID.String

	return c, nil
}
