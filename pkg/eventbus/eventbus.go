package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Сколько времени даётся слушателю на обработку одного события.
const listenerTimeout = time.Minute

// Event — любое событие движка.
type Event interface {
	Name() string
}

// Listener - это обработчик (слушатель) событий.
type Listener func(ctx context.Context, event Event) error

// Bus — внутрипроцессная шина событий. Слушатели вызываются асинхронно
// и не могут провалить публикацию: их ошибки только логируются.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на событие по имени.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish рассылает событие всем подписчикам. Контекст запроса не
// передаётся: слушатель живёт дольше HTTP-запроса, который его породил.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		go func(l Listener) {
			listenerCtx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
			defer cancel()

			if err := l(listenerCtx, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}
