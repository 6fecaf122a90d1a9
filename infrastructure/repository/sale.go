package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

const salesTable = "sales"

var saleColumns = []string{
	"id",
	"code",
	"collaborator_id",
	"vehicle_id",
	"payment_method_id",
	"client_id",
	"client_embedded",
	"products",
	"paid_value",
	"created_at",
	"updated_at",
}

type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ClientID  string
}

type SaleRepository interface {
	List(ctx context.Context, filter SaleFilter) ([]*domain.Sale, error)
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	Create(ctx context.Context, sale *domain.Sale) error
	UpdatePaidValue(ctx context.Context, id string, paidValue float64) error
	Delete(ctx context.Context, id string) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{conn: conn}
}

func (r *saleRepository) List(ctx context.Context, filter SaleFilter) ([]*domain.Sale, error) {
	return listSales(ctx, r.conn, filter)
}

func listSales(ctx context.Context, q postgres.Queryer, filter SaleFilter) ([]*domain.Sale, error) {
	builder := squirrel.
		Select(saleColumns...).
		From(salesTable).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.Lt{"created_at": *filter.EndDate})
	}
	if filter.ClientID != "" {
		builder = builder.Where(squirrel.Eq{"client_id": filter.ClientID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de vendas")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar vendas")
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}
		sales = append(sales, sale)
	}

	return sales, errors.Wrap(rows.Err(), "erro durante a iteração de vendas")
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de venda")
	}

	sale, err := scanSale(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar venda")
	}

	return sale, nil
}

func (r *saleRepository) Create(ctx context.Context, s *domain.Sale) error {
	clientID, embedded, products, err := encodeSale(s)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(salesTable).
		Columns(saleColumns[:9]...).
		Values(s.ID, s.Code, s.CollaboratorID, nullable(s.VehicleID), s.PaymentMethodID, clientID, embedded, products, s.PaidValue).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir inserção de venda")
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "erro ao inserir venda")
	}

	return nil
}

func (r *saleRepository) UpdatePaidValue(ctx context.Context, id string, paidValue float64) error {
	query, args, err := squirrel.
		Update(salesTable).
		Set("paid_value", paidValue).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização do valor pago")
	}

	return execAffectingOne(ctx, r.conn, query, args, "erro ao atualizar valor pago")
}

func (r *saleRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, salesTable, id)
}

// encodeSale separa o cliente da venda nas colunas client_id e client_embedded
func encodeSale(s *domain.Sale) (clientID, embedded *string, products string, err error) {
	switch s.Client.Kind {
	case domain.ClientRefReference:
		id := s.Client.ID
		clientID = &id
	case domain.ClientRefEmbedded:
		if s.Client.Record == nil {
			return nil, nil, "", errors.New("venda com cliente embutido sem registro")
		}
		raw, err := json.Marshal(s.Client.Record)
		if err != nil {
			return nil, nil, "", errors.Wrap(err, "erro ao serializar cliente embutido")
		}
		record := string(raw)
		embedded = &record
	default:
		return nil, nil, "", errors.Errorf("tipo de cliente desconhecido: %q", s.Client.Kind)
	}

	raw, err := json.Marshal(s.Products)
	if err != nil {
		return nil, nil, "", errors.Wrap(err, "erro ao serializar produtos da venda")
	}

	return clientID, embedded, string(raw), nil
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	s := &domain.Sale{}
	var vehicleID, clientID sql.NullString
	var embedded, products []byte

	err := row.Scan(
		&s.ID,
		&s.Code,
		&s.CollaboratorID,
		&vehicleID,
		&s.PaymentMethodID,
		&clientID,
		&embedded,
		&products,
		&s.PaidValue,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.VehicleID = vehicleID.String

	if clientID.Valid {
		s.Client = domain.ReferenceClient(clientID.String)
	} else if len(embedded) > 0 {
		var record domain.Client
		if err := json.Unmarshal(embedded, &record); err != nil {
			return nil, errors.Wrap(err, "cliente embutido inválido")
		}
		s.Client = domain.EmbeddedClient(record)
	}

	s.Products = make(map[string]domain.ProductLine)
	if len(products) > 0 {
		if err := json.Unmarshal(products, &s.Products); err != nil {
			return nil, errors.Wrap(err, "produtos da venda inválidos")
		}
	}

	return s, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
