package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/wash-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/wash-manager-api/internal/domain"
)

// SnapshotLoader lê todas as coleções dentro de uma única transação
// REPEATABLE READ, garantindo que o snapshot seja consistente.
type SnapshotLoader struct {
	conn *postgres.Connection
}

func NewSnapshotLoader(conn *postgres.Connection) *SnapshotLoader {
	return &SnapshotLoader{conn: conn}
}

func (l *SnapshotLoader) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

	err := l.conn.RunInTransaction(ctx, opts, func(tx *sql.Tx) error {
		sales, err := listSales(ctx, tx, SaleFilter{})
		if err != nil {
			return err
		}
		clients, err := listClients(ctx, tx)
		if err != nil {
			return err
		}
		collaborators, err := listCollaborators(ctx, tx)
		if err != nil {
			return err
		}
		products, err := listProducts(ctx, tx)
		if err != nil {
			return err
		}
		methods, err := listPaymentMethods(ctx, tx)
		if err != nil {
			return err
		}
		vehicles, err := listVehicles(ctx, tx)
		if err != nil {
			return err
		}

		snap.Sales = derefAll(sales)
		snap.Clients = derefAll(clients)
		snap.Collaborators = derefAll(collaborators)
		snap.Products = derefAll(products)
		snap.PaymentMethods = derefAll(methods)
		snap.Vehicles = derefAll(vehicles)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar snapshot")
	}

	snap.TakenAt = time.Now()
	return snap, nil
}

func derefAll[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out
}
