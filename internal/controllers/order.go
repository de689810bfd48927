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

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       logger,
	}
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("неверное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.orderService.CreateOrder(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateOrder: ошибка создания заказа",
			zap.String("order_number", payload.OrderNumber), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заказ создан, единицы зарезервированы", http.StatusCreated)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	res, err := c.orderService.GetOrder(ctx.Request().Context(), ctx.Param("order_number"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Заказ найден", http.StatusOK)
}

func (c *OrderController) AttachOrderFile(ctx echo.Context) error {
	var payload dto.AttachOrderFileDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("неверное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	orderNumber := ctx.Param("order_number")
	res, err := c.orderService.AttachOrderFile(ctx.Request().Context(), orderNumber, payload)
	if err != nil {
		c.logger.Error("AttachOrderFile: ошибка привязки документа",
			zap.String("order_number", orderNumber),
			zap.String("file_type", payload.FileType),
			zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Документ привязан, статусы обновлены", http.StatusOK)
}

func (c *OrderController) IssueOrder(ctx echo.Context) error {
	orderNumber := ctx.Param("order_number")

	res, err := c.orderService.IssueOrder(ctx.Request().Context(), orderNumber)
	if err != nil {
		c.logger.Error("IssueOrder: ошибка выдачи заказа",
			zap.String("order_number", orderNumber), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заказ выдан со склада", http.StatusOK)
}

func (c *OrderController) CancelOrder(ctx echo.Context) error {
	orderNumber := ctx.Param("order_number")

	res, err := c.orderService.CancelOrder(ctx.Request().Context(), orderNumber)
	if err != nil {
		c.logger.Error("CancelOrder: ошибка отмены заказа",
			zap.String("order_number", orderNumber), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заказ отменён, единицы возвращены в остаток", http.StatusOK)
}

func (c *OrderController) NextEntryNumber(ctx echo.Context) error {
	res, err := c.orderService.NextEntryNumber(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Следующий номер заказа", http.StatusOK)
}
