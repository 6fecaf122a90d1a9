// Package notification distribui avisos versionados para as telas do painel.
// Cada aviso recebe um número de sequência crescente; quem consome guarda o
// último número visto e descarta qualquer aviso mais antigo.
package notification

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSnapshotRefreshed Kind = "snapshot.refreshed"
	KindSaleRegistered    Kind = "sale.registered"
	KindRankingUpdated    Kind = "ranking.updated"
)

type Notice struct {
	Seq       uint64    `json:"seq"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher é implementado pelo Hub e usado por quem só precisa emitir avisos
type Publisher interface {
	Publish(kind Kind, message string) Notice
}

const defaultSubscriberBuffer = 16

// Hub atribui a sequência dos avisos e repassa cada um para os inscritos
type Hub struct {
	mu          sync.Mutex
	seq         uint64
	latest      *Notice
	subscribers map[int]chan Notice
	nextID      int
	bufferSize  int
	now         func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int]chan Notice),
		bufferSize:  defaultSubscriberBuffer,
		now:         time.Now,
	}
}

// Publish registra um novo aviso e o entrega aos inscritos sem bloquear.
// Quando o buffer de um inscrito está cheio, o aviso mais antigo dele é descartado.
func (h *Hub) Publish(kind Kind, message string) Notice {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	notice := Notice{
		Seq:       h.seq,
		Kind:      kind,
		Message:   message,
		CreatedAt: h.now(),
	}
	h.latest = &notice

	for _, ch := range h.subscribers {
		deliver(ch, notice)
	}

	return notice
}

func deliver(ch chan Notice, notice Notice) {
	for {
		select {
		case ch <- notice:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}

// Latest retorna o aviso mais recente, se houver
func (h *Hub) Latest() (Notice, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.latest == nil {
		return Notice{}, false
	}
	return *h.latest, true
}

// Since retorna o aviso mais recente apenas se ele for mais novo que after
func (h *Hub) Since(after uint64) (Notice, bool) {
	notice, ok := h.Latest()
	if !ok || notice.Seq <= after {
		return Notice{}, false
	}
	return notice, true
}

// Subscribe devolve um canal que recebe os próximos avisos e a função que
// cancela a inscrição e fecha o canal.
func (h *Hub) Subscribe() (<-chan Notice, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Notice, h.bufferSize)
	h.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers, id)
			close(ch)
		})
	}

	return ch, cancel
}

// Cursor guarda o último aviso aceito por um consumidor
type Cursor struct {
	last uint64
}

// NewCursor cria um cursor que já viu os avisos até after
func NewCursor(after uint64) *Cursor {
	return &Cursor{last: after}
}

// Accept retorna true e avança o cursor quando o aviso é mais novo que o último visto
func (c *Cursor) Accept(n Notice) bool {
	if n.Seq <= c.last {
		return false
	}
	c.last = n.Seq
	return true
}

func (c *Cursor) Last() uint64 {
	return c.last
}
