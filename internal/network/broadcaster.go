package network

import (
	"sync"

	"gridsim/pkg/api"
)

// subscriberBuffer сколько тиков может отстать зритель, прежде чем сообщения начнут теряться.
const subscriberBuffer = 64

// Broadcaster занимается только рассылкой отчётов о тиках подписчикам.
// Игру он не знает: Publish вызывается из наблюдателя игры.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: id подписчика -> личный канал
	subscribers map[string]chan api.TickMessage
	latest      *api.TickMessage
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.TickMessage),
	}
}

// Register создает личный канал для подписчика.
// Повторная регистрация закрывает старый канал.
func (b *Broadcaster) Register(id string) <-chan api.TickMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.TickMessage, subscriberBuffer)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал.
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Publish рассылает сообщение всем и запоминает его как последнее.
// Медленный подписчик теряет самое старое сообщение из своего буфера, игру он не тормозит.
// Так последнее сообщение (в том числе STOPPED) доходит всегда.
// Возвращает число подписчиков, у которых пришлось выкинуть сообщение.
func (b *Broadcaster) Publish(msg api.TickMessage) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = &msg

	evicted := 0
	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
			continue
		default:
		}

		// Буфер полон: освобождаем место от самого старого
		select {
		case <-ch:
			evicted++
		default:
			// Читатель успел забрать сам
		}
		select {
		case ch <- msg:
		default:
		}
	}
	return evicted
}

// Latest возвращает последнее опубликованное сообщение.
func (b *Broadcaster) Latest() (api.TickMessage, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.latest == nil {
		return api.TickMessage{}, false
	}
	return *b.latest, true
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close отключает всех подписчиков. После Close новые Publish никому не доставляются.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
