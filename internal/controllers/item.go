package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type ItemController struct {
	itemService services.ItemServiceInterface
	logger      *zap.Logger
}

func NewItemController(itemService services.ItemServiceInterface, logger *zap.Logger) *ItemController {
	return &ItemController{
		itemService: itemService,
		logger:      logger,
	}
}

func (c *ItemController) GetItems(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	page, err := c.itemService.GetItems(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetItems: ошибка листинга проекции", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, page, "Список единиц получен", http.StatusOK, uint64(len(page.Items)))
}

func (c *ItemController) FindItem(ctx echo.Context) error {
	res, err := c.itemService.FindItem(ctx.Request().Context(), ctx.Param("serial_number"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Единица найдена", http.StatusOK)
}

func (c *ItemController) DeleteItem(ctx echo.Context) error {
	serialNumber := ctx.Param("serial_number")

	if err := c.itemService.DeleteItem(ctx.Request().Context(), serialNumber); err != nil {
		c.logger.Error("DeleteItem: ошибка каскадного удаления",
			zap.String("serial_number", serialNumber), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Единица и её история удалены", http.StatusOK)
}
