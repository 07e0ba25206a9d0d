package store

import "sync"

// Subscription - идентификатор подписки, возвращаемый Subscribe.
type Subscription uint64

// Listener получает новое значение после каждого изменения.
type Listener[T any] func(T)

type subscriber[T any] struct {
	id Subscription
	fn Listener[T]
}

// observable - список подписчиков в порядке подписки.
// Подписчики вызываются синхронно и без удержания блокировки.
type observable[T any] struct {
	mu          sync.Mutex
	next        Subscription
	subscribers []subscriber[T]
}

// Subscribe регистрирует listener и возвращает идентификатор для Unsubscribe.
func (o *observable[T]) Subscribe(fn Listener[T]) Subscription {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.next++
	o.subscribers = append(o.subscribers, subscriber[T]{id: o.next, fn: fn})
	return o.next
}

// Unsubscribe удаляет подписку; неизвестный идентификатор игнорируется.
func (o *observable[T]) Unsubscribe(id Subscription) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, s := range o.subscribers {
		if s.id == id {
			o.subscribers = append(o.subscribers[:i:i], o.subscribers[i+1:]...)
			return
		}
	}
}

func (o *observable[T]) notify(value T) {
	o.mu.Lock()
	snapshot := make([]subscriber[T], len(o.subscribers))
	copy(snapshot, o.subscribers)
	o.mu.Unlock()

	for _, s := range snapshot {
		s.fn(value)
	}
}
