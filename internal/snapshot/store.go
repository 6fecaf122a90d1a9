// Package snapshot mantém em memória a cópia consistente das coleções usada
// pelos relatórios e a atualiza quando os dados mudam.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/notification"
	"github.com/vfg2006/wash-manager-api/pkg/log"
)

// Loader lê todas as coleções de uma vez
type Loader interface {
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

// Source é a visão somente leitura usada por quem consome o snapshot
type Source interface {
	Current() *domain.Snapshot
}

// Notifier recebe o aviso de que uma coleção mudou
type Notifier interface {
	NotifyChanged(collection string)
}

type Store struct {
	loader    Loader
	publisher notification.Publisher
	current   atomic.Pointer[domain.Snapshot]
	refreshMu sync.Mutex
	changed   chan string
	now       func() time.Time
}

func NewStore(loader Loader, publisher notification.Publisher) *Store {
	s := &Store{
		loader:    loader,
		publisher: publisher,
		changed:   make(chan string, 1),
		now:       time.Now,
	}
	s.current.Store(&domain.Snapshot{})
	return s
}

// Current retorna o snapshot publicado mais recente. Nunca retorna nil.
func (s *Store) Current() *domain.Snapshot {
	return s.current.Load()
}

// Refresh carrega um snapshot novo e o publica com a versão seguinte
func (s *Store) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	logger := log.ForContext(ctx)

	loaded, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar snapshot")
	}
	if loaded == nil {
		return nil, errors.New("snapshot vazio retornado pelo loader")
	}

	previous := s.current.Load()
	loaded.Version = previous.Version + 1
	if loaded.TakenAt.IsZero() {
		loaded.TakenAt = s.now()
	}
	s.current.Store(loaded)

	logger.WithFields(log.Fields{
		"snapshot_version": loaded.Version,
		"sales":            len(loaded.Sales),
	}).Debug("snapshot: dados recarregados")

	if s.publisher != nil {
		s.publisher.Publish(notification.KindSnapshotRefreshed,
			fmt.Sprintf("Dados atualizados (versão %d)", loaded.Version))
	}

	return loaded, nil
}

// NotifyChanged pede uma nova carga sem bloquear. Vários avisos seguidos
// resultam em uma única carga.
func (s *Store) NotifyChanged(collection string) {
	select {
	case s.changed <- collection:
	default:
	}
}

// Run atende os pedidos de NotifyChanged até o contexto ser cancelado
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case collection := <-s.changed:
			if _, err := s.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.ForContext(ctx).WithError(err).
					WithField("collection", collection).
					Error("snapshot: falha ao atualizar após mudança")
			}
		}
	}
}
