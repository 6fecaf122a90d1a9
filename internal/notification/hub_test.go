package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishAssignsIncreasingSeq(t *testing.T) {
	hub := NewHub()

	_, ok := hub.Latest()
	assert.False(t, ok)

	first := hub.Publish(KindSaleRegistered, "Venda registrada")
	second := hub.Publish(KindSnapshotRefreshed, "Dados atualizados")

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(2), second.Seq)

	latest, ok := hub.Latest()
	require.True(t, ok)
	assert.Equal(t, second, latest)
}

func TestHub_PublishConcurrentSeqAreUnique(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	seqs := make(chan uint64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seqs <- hub.Publish(KindSaleRegistered, "venda").Seq
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[uint64]bool)
	for seq := range seqs {
		assert.False(t, seen[seq], "sequência repetida: %d", seq)
		seen[seq] = true
	}
	assert.Len(t, seen, 100)

	latest, _ := hub.Latest()
	assert.Equal(t, uint64(100), latest.Seq)
}

func TestHub_Since(t *testing.T) {
	hub := NewHub()

	tests := []struct {
		name     string
		setup    func()
		after    uint64
		expectOK bool
	}{
		{name: "Sem avisos", setup: func() {}, after: 0, expectOK: false},
		{name: "Aviso mais novo que o cursor", setup: func() { hub.Publish(KindSaleRegistered, "a") }, after: 0, expectOK: true},
		{name: "Cursor já viu o último aviso", setup: func() {}, after: 1, expectOK: false},
		{name: "Cursor à frente do hub", setup: func() {}, after: 10, expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			_, ok := hub.Since(tt.after)
			assert.Equal(t, tt.expectOK, ok)
		})
	}
}

func TestHub_SubscribeReceivesNotices(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	published := hub.Publish(KindRankingUpdated, "Ranking atualizado")

	select {
	case got := <-ch:
		assert.Equal(t, published, got)
	case <-time.After(time.Second):
		t.Fatal("aviso não recebido")
	}
}

func TestHub_FullSubscriberDropsOldest(t *testing.T) {
	hub := NewHub()
	hub.bufferSize = 2
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(KindSaleRegistered, "1")
	hub.Publish(KindSaleRegistered, "2")
	hub.Publish(KindSaleRegistered, "3")

	first := <-ch
	second := <-ch
	assert.Equal(t, uint64(2), first.Seq)
	assert.Equal(t, uint64(3), second.Seq)
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// publicar depois de cancelar não deve entrar em pânico
	assert.NotPanics(t, func() { hub.Publish(KindSaleRegistered, "x") })
}

func TestCursor_Accept(t *testing.T) {
	var cursor Cursor

	assert.True(t, cursor.Accept(Notice{Seq: 1}))
	assert.True(t, cursor.Accept(Notice{Seq: 3}))
	// aviso atrasado não deve sobrescrever o mais novo
	assert.False(t, cursor.Accept(Notice{Seq: 2}))
	assert.False(t, cursor.Accept(Notice{Seq: 3}))
	assert.Equal(t, uint64(3), cursor.Last())
}

func TestNewCursor_StartsAfterSeq(t *testing.T) {
	cursor := NewCursor(5)

	assert.False(t, cursor.Accept(Notice{Seq: 5}))
	assert.True(t, cursor.Accept(Notice{Seq: 6}))
}
