package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"inventory-system/internal/services"
)

// Scheduler запускает ночную сверку леджера и проекции по расписанию.
type Scheduler struct {
	cron                  *cron.Cron
	reconciliationService services.ReconciliationServiceInterface
	spec                  string
	logger                *zap.Logger
}

func NewScheduler(spec string, reconciliationService services.ReconciliationServiceInterface, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:                  cron.New(),
		reconciliationService: reconciliationService,
		spec:                  spec,
		logger:                logger,
	}
}

func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.spec, s.runReconciliation); err != nil {
		s.logger.Error("Не удалось запланировать ночную сверку",
			zap.String("spec", s.spec), zap.Error(err))
		return
	}
	s.cron.Start()
	s.logger.Info("Планировщик запущен", zap.String("reconciliation_cron", s.spec))
}

func (s *Scheduler) Stop() {
	s.logger.Info("Планировщик останавливается")
	s.cron.Stop()
}

func (s *Scheduler) runReconciliation() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := s.reconciliationService.Reconcile(ctx)
	if err != nil {
		s.logger.Error("Ночная сверка завершилась ошибкой", zap.Error(err))
		return
	}
	if !report.Empty() {
		s.logger.Warn("Ночная сверка нашла расхождения",
			zap.Int("orphaned", len(report.OrphanedTransactions)),
			zap.Int("duplicate_deliveries", len(report.DuplicateDeliveries)),
			zap.Int("missing_stock_ins", len(report.MissingStockIns)),
			zap.Int("inconsistent_patterns", len(report.InconsistentPatternSerials)),
		)
	}
}
