package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type ReconciliationController struct {
	reconciliationService services.ReconciliationServiceInterface
	logger                *zap.Logger
}

func NewReconciliationController(reconciliationService services.ReconciliationServiceInterface, logger *zap.Logger) *ReconciliationController {
	return &ReconciliationController{
		reconciliationService: reconciliationService,
		logger:                logger,
	}
}

func (c *ReconciliationController) RunReconciliation(ctx echo.Context) error {
	report, err := c.reconciliationService.Reconcile(ctx.Request().Context())
	if err != nil {
		c.logger.Error("RunReconciliation: ошибка сверки", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	message := "Сверка завершена: расхождений нет"
	if !report.Empty() {
		message = "Сверка завершена: найдены расхождения"
	}
	return utils.SuccessResponse(ctx, report, message, http.StatusOK)
}
