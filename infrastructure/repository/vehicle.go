package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

const vehiclesTable = "vehicles"

var vehicleColumns = []string{"id", "plate", "model", "color", "client_id"}

type VehicleRepository interface {
	List(ctx context.Context) ([]*domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type vehicleRepository struct {
	conn *postgres.Connection
}

func NewVehicleRepository(conn *postgres.Connection) VehicleRepository {
	return &vehicleRepository{conn: conn}
}

func (r *vehicleRepository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	return listVehicles(ctx, r.conn)
}

func listVehicles(ctx context.Context, q postgres.Queryer) ([]*domain.Vehicle, error) {
	query, args, err := squirrel.
		Select(vehicleColumns...).
		From(vehiclesTable).
		OrderBy("plate ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de veículos")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar veículos")
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear veículo")
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, errors.Wrap(rows.Err(), "erro durante a iteração de veículos")
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query, args, err := squirrel.
		Select(vehicleColumns...).
		From(vehiclesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de veículo")
	}

	vehicle, err := scanVehicle(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar veículo")
	}

	return vehicle, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query, args, err := squirrel.
		Insert(vehiclesTable).
		Columns(vehicleColumns...).
		Values(v.ID, v.Plate, v.Model, v.Color, v.ClientID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir inserção de veículo")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir veículo")
	}

	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query, args, err := squirrel.
		Update(vehiclesTable).
		Set("plate", v.Plate).
		Set("model", v.Model).
		Set("color", v.Color).
		Set("client_id", v.ClientID).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": v.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de veículo")
	}

	return execAffectingOne(ctx, r.conn, query, args, "erro ao atualizar veículo")
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, vehiclesTable, id)
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var model, color, clientID sql.NullString

	if err := row.Scan(&v.ID, &v.Plate, &model, &color, &clientID); err != nil {
		return nil, err
	}
	v.Model = model.String
	v.Color = color.String
	if clientID.Valid {
		v.ClientID = &clientID.String
	}

	return v, nil
}
