package postgres

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/adapters/out/postgres/outboxrepo"

	"github.com/lib/pq"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// OutboxListener receives the notifications installed by Migrate and turns them into
// wake-ups for the outbox relay. Polling stays in place, so a lost notification only
// delays delivery.
type OutboxListener struct {
	listener *pq.Listener
	logger   *slog.Logger
}

// NewOutboxListener opens a dedicated connection with lib/pq and subscribes to the
// outbox channel. dsn accepts both URL and key=value forms.
func NewOutboxListener(dsn string, logger *slog.Logger) (*OutboxListener, error) {
	logger = logger.With("component", "outbox_listener")

	l := pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("listener connection event", "event", int(ev), "error", err)
		}
	})
	if err := l.Listen(outboxrepo.TableName); err != nil {
		_ = l.Close()
		return nil, err
	}

	return &OutboxListener{listener: l, logger: logger}, nil
}

// Run calls wake for every notification until ctx is done. A nil notification means the
// connection was re-established and events may have been missed, so it wakes as well.
func (l *OutboxListener) Run(ctx context.Context, wake func()) {
	ticker := time.NewTicker(listenerPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.listener.Notify:
			wake()
		case <-ticker.C:
			if err := l.listener.Ping(); err != nil {
				l.logger.WarnContext(ctx, "listener ping failed", "error", err)
			}
		}
	}
}

func (l *OutboxListener) Close() error {
	return l.listener.Close()
}
