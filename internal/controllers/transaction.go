package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type TransactionController struct {
	ledgerService services.LedgerServiceInterface
	logger        *zap.Logger
}

func NewTransactionController(ledgerService services.LedgerServiceInterface, logger *zap.Logger) *TransactionController {
	return &TransactionController{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

func (c *TransactionController) CreateTransaction(ctx echo.Context) error {
	var payload dto.CreateTransactionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("неверное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.ledgerService.Append(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateTransaction: ошибка записи в леджер",
			zap.String("serial_number", payload.SerialNumber), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Транзакция зафиксирована", http.StatusCreated)
}

func (c *TransactionController) GetHistoryBySerial(ctx echo.Context) error {
	res, err := c.ledgerService.HistoryBySerial(ctx.Request().Context(), ctx.Param("serial_number"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "История серийного номера получена", http.StatusOK, uint64(len(res)))
}

func (c *TransactionController) GetTransactions(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if orderNumber := ctx.QueryParam("order_number"); orderNumber != "" {
		res, err := c.ledgerService.HistoryByOrder(reqCtx, orderNumber)
		if err != nil {
			return utils.ErrorResponse(ctx, err)
		}
		return utils.SuccessResponse(ctx, res, "Транзакции заказа получены", http.StatusOK, uint64(len(res)))
	}

	from, err := parseTimeParam(ctx.QueryParam("from"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	to, err := parseTimeParam(ctx.QueryParam("to"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if from.IsZero() || to.IsZero() {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("нужен order_number либо период from/to"))
	}

	res, err := c.ledgerService.HistoryByDateRange(reqCtx, from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Транзакции за период получены", http.StatusOK, uint64(len(res)))
}

func parseTimeParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError("неверный формат даты: %s", value)
	}
	return t, nil
}
