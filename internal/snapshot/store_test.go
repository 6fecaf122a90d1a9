package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/internal/notification"
)

type fakeLoader struct {
	calls atomic.Int32
	err   error
	sales []domain.Sale
	delay time.Duration
}

func (f *fakeLoader) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Snapshot{Sales: f.sales}, nil
}

func TestStore_CurrentIsNeverNil(t *testing.T) {
	store := NewStore(&fakeLoader{}, nil)

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, uint64(0), current.Version)
	assert.Empty(t, current.Sales)
}

func TestStore_Refresh(t *testing.T) {
	tests := []struct {
		name     string
		loader   *fakeLoader
		validate func(t *testing.T, store *Store, hub *notification.Hub, err error)
	}{
		{
			name:   "Carga com sucesso incrementa a versão e publica aviso",
			loader: &fakeLoader{sales: []domain.Sale{{ID: "s1", PaidValue: 10}}},
			validate: func(t *testing.T, store *Store, hub *notification.Hub, err error) {
				require.NoError(t, err)
				assert.Equal(t, uint64(1), store.Current().Version)
				assert.Len(t, store.Current().Sales, 1)
				assert.False(t, store.Current().TakenAt.IsZero())

				notice, ok := hub.Latest()
				require.True(t, ok)
				assert.Equal(t, notification.KindSnapshotRefreshed, notice.Kind)
			},
		},
		{
			name:   "Erro do loader mantém o snapshot anterior",
			loader: &fakeLoader{err: errors.New("conexão recusada")},
			validate: func(t *testing.T, store *Store, hub *notification.Hub, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "conexão recusada")
				assert.Equal(t, uint64(0), store.Current().Version)

				_, ok := hub.Latest()
				assert.False(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := notification.NewHub()
			store := NewStore(tt.loader, hub)

			_, err := store.Refresh(context.Background())
			tt.validate(t, store, hub, err)
		})
	}
}

func TestStore_ConcurrentRefreshesProduceDistinctVersions(t *testing.T) {
	store := NewStore(&fakeLoader{delay: time.Millisecond}, nil)

	var wg sync.WaitGroup
	versions := make(chan uint64, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := store.Refresh(context.Background())
			if assert.NoError(t, err) {
				versions <- snap.Version
			}
		}()
	}
	wg.Wait()
	close(versions)

	seen := make(map[uint64]bool)
	for v := range versions {
		assert.False(t, seen[v])
		seen[v] = true
	}
	assert.Equal(t, uint64(10), store.Current().Version)
}

func TestStore_NotifyChangedTriggersRefresh(t *testing.T) {
	loader := &fakeLoader{}
	store := NewStore(loader, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		store.Run(ctx)
		close(done)
	}()

	store.NotifyChanged("sales")
	store.NotifyChanged("sales")
	store.NotifyChanged("clients")

	assert.Eventually(t, func() bool {
		return store.Current().Version >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run não terminou após cancelar o contexto")
	}

	// os avisos são agrupados, então nunca há mais cargas que avisos
	assert.LessOrEqual(t, loader.calls.Load(), int32(3))
}

func TestStore_NotifyChangedDoesNotBlock(t *testing.T) {
	store := NewStore(&fakeLoader{}, nil)

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			store.NotifyChanged("sales")
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("NotifyChanged bloqueou sem ninguém consumindo")
	}
}
