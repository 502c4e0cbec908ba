package appointment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// notifyChannel канал pg_notify, в который триггер таблицы appointments
// отправляет дату изменённой записи (см. миграции)
const notifyChannel = "appointments_events"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	keepAliveInterval    = 90 * time.Second
)

// Watcher живая подписка на изменения записей через PostgreSQL LISTEN/NOTIFY.
// Аналог live-фида хранилища: каждое изменение таблицы будит подписчиков
// соответствующей даты, и они перечитывают снапшот дня.
type Watcher struct {
	listener *pq.Listener
	repo     *Repository
	logger   Logger

	mu          sync.Mutex
	subscribers map[int64]*subscriber
	nextID      int64
	closed      bool
	stopCh      chan struct{}
}

// subscriber один подписчик на изменения конкретной даты
type subscriber struct {
	date string        // YYYY-MM-DD
	poke chan struct{} // буферизован на 1, уведомления коалесцируются
}

// NewWatcher создает watcher и начинает слушать канал уведомлений.
// Использует отдельное соединение с БД (pq.Listener), не из общего пула.
func NewWatcher(dsn string, repo *Repository, logger Logger) (*Watcher, error) {
	listener := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("Watcher: listener event=%d: %v", event, err)
			}
		})

	if err := listener.Listen(notifyChannel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("%w: Watcher - listen %s: %v", ErrExecQuery, notifyChannel, err)
	}

	w := &Watcher{
		listener:    listener,
		repo:        repo,
		logger:      logger,
		subscribers: make(map[int64]*subscriber),
		stopCh:      make(chan struct{}),
	}

	go w.dispatch()

	return w, nil
}

// dispatch читает уведомления и будит подписчиков затронутой даты
func (w *Watcher) dispatch() {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case notification := <-w.listener.Notify:
			// nil приходит после переподключения: уведомления могли потеряться,
			// поэтому будим всех
			payload := ""
			if notification != nil {
				payload = notification.Extra
			}
			w.wake(payload)

		case <-ticker.C:
			if err := w.listener.Ping(); err != nil {
				w.logger.Warn("Watcher: keepalive ping failed: %v", err)
			}
		}
	}
}

// wake будит подписчиков даты date; пустая дата будит всех
func (w *Watcher) wake(date string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, sub := range w.subscribers {
		if date != "" && sub.date != date {
			continue
		}
		select {
		case sub.poke <- struct{}{}:
		default: // подписчик ещё не обработал предыдущее уведомление
		}
	}
}

// WatchByDate возвращает канал снапшотов записей на указанную дату.
// Первый снапшот отправляется сразу, последующие - после каждого изменения
// таблицы, затрагивающего эту дату. Канал закрывается при отмене контекста.
func (w *Watcher) WatchByDate(ctx context.Context, date time.Time) (<-chan []*domain.Appointment, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrListenerClosed
	}
	w.nextID++
	id := w.nextID
	sub := &subscriber{
		date: date.Format(domain.DateFormat),
		poke: make(chan struct{}, 1),
	}
	w.subscribers[id] = sub
	w.mu.Unlock()

	out := make(chan []*domain.Appointment, 1)

	go func() {
		defer func() {
			w.mu.Lock()
			delete(w.subscribers, id)
			w.mu.Unlock()
			close(out)
		}()

		// Начальный снапшот до первого уведомления
		if !w.sendSnapshot(ctx, date, out) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			case <-sub.poke:
				if !w.sendSnapshot(ctx, date, out) {
					return
				}
			}
		}
	}()

	return out, nil
}

func (w *Watcher) sendSnapshot(ctx context.Context, date time.Time, out chan<- []*domain.Appointment) bool {
	appointments, err := w.repo.GetByDate(ctx, date)
	if err != nil {
		w.logger.Error("Watcher: failed to load snapshot for %s: %v", date.Format(domain.DateFormat), err)
		return ctx.Err() == nil
	}

	select {
	case out <- appointments:
		return true
	case <-ctx.Done():
		return false
	case <-w.stopCh:
		return false
	}
}

// Close останавливает watcher и закрывает соединение
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.stopCh)
	return w.listener.Close()
}
