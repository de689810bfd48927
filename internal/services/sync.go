package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/types"
)

const fingerprintCacheKey = "ledger:fingerprint"

type SyncServiceInterface interface {
	Fingerprint(ctx context.Context) (types.Fingerprint, error)
	HasChanges(ctx context.Context, known types.Fingerprint) (bool, types.Fingerprint, error)
}

// SyncService отвечает на дешёвый поллинг клиентов "изменилось ли что-то":
// фингерпринт леджера кешируется в Redis и сбрасывается событием шины
// при каждой новой транзакции.
type SyncService struct {
	ledgerRepository repositories.LedgerRepositoryInterface
	cache            repositories.CacheRepositoryInterface
	cacheTTL         time.Duration
	logger           *zap.Logger
}

func NewSyncService(
	ledgerRepository repositories.LedgerRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		ledgerRepository: ledgerRepository,
		cache:            cache,
		cacheTTL:         cacheTTL,
		logger:           logger,
	}
}

// RegisterListeners подписывает сервис на шину: новая транзакция
// инвалидирует кешированный фингерпринт.
func (s *SyncService) RegisterListeners(bus *eventbus.Bus) {
	bus.Subscribe(events.TransactionAppendedEvent{}.Name(), func(ctx context.Context, _ eventbus.Event) error {
		return s.cache.Del(ctx, fingerprintCacheKey)
	})
}

func (s *SyncService) Fingerprint(ctx context.Context) (types.Fingerprint, error) {
	if cached, err := s.cache.Get(ctx, fingerprintCacheKey); err == nil {
		var fp types.Fingerprint
		if jsonErr := json.Unmarshal([]byte(cached), &fp); jsonErr == nil {
			return fp, nil
		}
	}

	fp, err := s.ledgerRepository.Fingerprint(ctx)
	if err != nil {
		return fp, err
	}

	payload, err := json.Marshal(fp)
	if err == nil {
		if cacheErr := s.cache.Set(ctx, fingerprintCacheKey, payload, s.cacheTTL); cacheErr != nil {
			s.logger.Warn("Не удалось закешировать фингерпринт", zap.Error(cacheErr))
		}
	}
	return fp, nil
}

// HasChanges сравнивает известный клиенту фингерпринт с актуальным.
func (s *SyncService) HasChanges(ctx context.Context, known types.Fingerprint) (bool, types.Fingerprint, error) {
	current, err := s.Fingerprint(ctx)
	if err != nil {
		return false, current, err
	}
	return !current.Equal(known), current, nil
}
