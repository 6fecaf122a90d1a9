package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

const clientsTable = "clients"

var clientColumns = []string{"id", "type", "name", "tax_id", "phone", "email", "address"}

type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{conn: conn}
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	return listClients(ctx, r.conn)
}

func listClients(ctx context.Context, q postgres.Queryer) ([]*domain.Client, error) {
	query, args, err := squirrel.
		Select(clientColumns...).
		From(clientsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de clientes")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar clientes")
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear cliente")
		}
		clients = append(clients, client)
	}

	return clients, errors.Wrap(rows.Err(), "erro durante a iteração de clientes")
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query, args, err := squirrel.
		Select(clientColumns...).
		From(clientsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de cliente")
	}

	client, err := scanClient(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar cliente")
	}

	return client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	address, err := json.Marshal(client.Address)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar endereço")
	}

	query, args, err := squirrel.
		Insert(clientsTable).
		Columns(clientColumns...).
		Values(client.ID, client.Type, client.Name, client.TaxID, client.Phone, client.Email, string(address)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir inserção de cliente")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "erro ao inserir cliente")
	}

	return nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	address, err := json.Marshal(client.Address)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar endereço")
	}

	query, args, err := squirrel.
		Update(clientsTable).
		Set("type", client.Type).
		Set("name", client.Name).
		Set("tax_id", client.TaxID).
		Set("phone", client.Phone).
		Set("email", client.Email).
		Set("address", string(address)).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": client.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de cliente")
	}

	return execAffectingOne(ctx, r.conn, query, args, "erro ao atualizar cliente")
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, clientsTable, id)
}

func scanClient(row rowScanner) (*domain.Client, error) {
	client := &domain.Client{}
	var phone, email sql.NullString
	var address []byte

	if err := row.Scan(&client.ID, &client.Type, &client.Name, &client.TaxID, &phone, &email, &address); err != nil {
		return nil, err
	}

	client.Phone = phone.String
	client.Email = email.String
	if len(address) > 0 {
		if err := json.Unmarshal(address, &client.Address); err != nil {
			return nil, errors.Wrap(err, "endereço inválido")
		}
	}

	return client, nil
}

func execAffectingOne(ctx context.Context, q postgres.Queryer, query string, args []interface{}, message string) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, message)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, message)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func deleteByID(ctx context.Context, q postgres.Queryer, table, id string) error {
	query, args, err := squirrel.
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrapf(err, "erro ao construir remoção em %s", table)
	}

	return execAffectingOne(ctx, q, query, args, "erro ao remover registro de "+table)
}
