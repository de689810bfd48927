package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type DemoController struct {
	demoService services.DemoServiceInterface
	logger      *zap.Logger
}

func NewDemoController(demoService services.DemoServiceInterface, logger *zap.Logger) *DemoController {
	return &DemoController{
		demoService: demoService,
		logger:      logger,
	}
}

func (c *DemoController) CreateDemoLoan(ctx echo.Context) error {
	var payload dto.CreateDemoLoanDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("неверное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.demoService.CreateDemoLoan(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateDemoLoan: ошибка демо-выдачи",
			zap.String("order_number", payload.OrderNumber), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Демо-выдача оформлена", http.StatusCreated)
}

func (c *DemoController) ReturnDemoLoan(ctx echo.Context) error {
	var payload dto.ReturnDemoLoanDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("неверное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.demoService.ReturnDemoLoan(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ReturnDemoLoan: ошибка возврата с демо", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Возврат с демо оформлен", http.StatusOK)
}

func (c *DemoController) GetReturnableItems(ctx echo.Context) error {
	orderNumber := ctx.Param("order_number")
	if orderNumber == "" {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("номер заказа обязателен"))
	}

	items, err := c.demoService.ReturnableItems(ctx.Request().Context(), orderNumber)
	if err != nil {
		c.logger.Error("GetReturnableItems: ошибка чтения демо-выдачи",
			zap.String("order_number", orderNumber), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, items, "Невозвращённые единицы получены", http.StatusOK)
}
