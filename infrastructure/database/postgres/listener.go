package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/wash-manager-api/pkg/log"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second

	// AllCollections é repassado quando a conexão foi restabelecida e
	// avisos podem ter sido perdidos.
	AllCollections = "*"
)

// ChangeNotifier recebe o nome da tabela alterada
type ChangeNotifier interface {
	NotifyChanged(collection string)
}

// ChangeListener escuta o canal de NOTIFY disparado pelos triggers das tabelas
// e repassa cada mudança para o notifier.
type ChangeListener struct {
	dsn      string
	channel  string
	notifier ChangeNotifier
}

func NewChangeListener(dsn, channel string, notifier ChangeNotifier) *ChangeListener {
	return &ChangeListener{
		dsn:      dsn,
		channel:  channel,
		notifier: notifier,
	}
}

// Run bloqueia até o contexto ser cancelado
func (l *ChangeListener) Run(ctx context.Context) error {
	logger := log.ForContext(ctx).WithField("channel", l.channel)

	listener := pq.NewListener(l.dsn, listenerMinReconnect, listenerMaxReconnect,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				logger.WithError(err).Warn("listener: evento de conexão com erro")
			}
		})
	defer listener.Close()

	if err := listener.Listen(l.channel); err != nil {
		return errors.Wrapf(err, "erro ao escutar o canal %s", l.channel)
	}

	logger.Info("listener: escutando alterações no banco")

	ticker := time.NewTicker(listenerPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			// nil indica reconexão
			if n == nil {
				l.notifier.NotifyChanged(AllCollections)
				continue
			}
			l.notifier.NotifyChanged(n.Extra)
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				logger.WithError(err).Warn("listener: ping falhou")
			}
		}
	}
}
