package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

const (
	productsTable       = "products"
	paymentMethodsTable = "payment_methods"
)

type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{conn: conn}
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return listProducts(ctx, r.conn)
}

func listProducts(ctx context.Context, q postgres.Queryer) ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select("id", "name", "price", "photo_url").
		From(productsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de produtos")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar produtos")
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear produto")
		}
		products = append(products, product)
	}

	return products, errors.Wrap(rows.Err(), "erro durante a iteração de produtos")
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query, args, err := squirrel.
		Select("id", "name", "price", "photo_url").
		From(productsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de produto")
	}

	product, err := scanProduct(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar produto")
	}

	return product, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query, args, err := squirrel.
		Insert(productsTable).
		Columns("id", "name", "price", "photo_url").
		Values(p.ID, p.Name, p.Price, p.PhotoURL).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir inserção de produto")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir produto")
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query, args, err := squirrel.
		Update(productsTable).
		Set("name", p.Name).
		Set("price", p.Price).
		Set("photo_url", p.PhotoURL).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": p.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de produto")
	}

	return execAffectingOne(ctx, r.conn, query, args, "erro ao atualizar produto")
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, productsTable, id)
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	var photoURL sql.NullString

	if err := row.Scan(&p.ID, &p.Name, &p.Price, &photoURL); err != nil {
		return nil, err
	}
	if photoURL.Valid {
		p.PhotoURL = &photoURL.String
	}

	return p, nil
}

type PaymentMethodRepository interface {
	List(ctx context.Context) ([]*domain.PaymentMethod, error)
	GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
	Create(ctx context.Context, method *domain.PaymentMethod) error
	Update(ctx context.Context, method *domain.PaymentMethod) error
	Delete(ctx context.Context, id string) error
}

type paymentMethodRepository struct {
	conn *postgres.Connection
}

func NewPaymentMethodRepository(conn *postgres.Connection) PaymentMethodRepository {
	return &paymentMethodRepository{conn: conn}
}

func (r *paymentMethodRepository) List(ctx context.Context) ([]*domain.PaymentMethod, error) {
	return listPaymentMethods(ctx, r.conn)
}

func listPaymentMethods(ctx context.Context, q postgres.Queryer) ([]*domain.PaymentMethod, error) {
	query, args, err := squirrel.
		Select("id", "name").
		From(paymentMethodsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de formas de pagamento")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar formas de pagamento")
	}
	defer rows.Close()

	methods := make([]*domain.PaymentMethod, 0)
	for rows.Next() {
		method := &domain.PaymentMethod{}
		if err := rows.Scan(&method.ID, &method.Name); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear forma de pagamento")
		}
		methods = append(methods, method)
	}

	return methods, errors.Wrap(rows.Err(), "erro durante a iteração de formas de pagamento")
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	query, args, err := squirrel.
		Select("id", "name").
		From(paymentMethodsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de forma de pagamento")
	}

	method := &domain.PaymentMethod{}
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&method.ID, &method.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao buscar forma de pagamento")
	}

	return method, nil
}

func (r *paymentMethodRepository) Create(ctx context.Context, m *domain.PaymentMethod) error {
	query, args, err := squirrel.
		Insert(paymentMethodsTable).
		Columns("id", "name").
		Values(m.ID, m.Name).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir inserção de forma de pagamento")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "erro ao inserir forma de pagamento")
	}

	return nil
}

func (r *paymentMethodRepository) Update(ctx context.Context, m *domain.PaymentMethod) error {
	query, args, err := squirrel.
		Update(paymentMethodsTable).
		Set("name", m.Name).
		Where(squirrel.Eq{"id": m.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de forma de pagamento")
	}

	return execAffectingOne(ctx, r.conn, query, args, "erro ao atualizar forma de pagamento")
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, paymentMethodsTable, id)
}
