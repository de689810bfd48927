package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type SyncController struct {
	syncService services.SyncServiceInterface
	logger      *zap.Logger
}

func NewSyncController(syncService services.SyncServiceInterface, logger *zap.Logger) *SyncController {
	return &SyncController{
		syncService: syncService,
		logger:      logger,
	}
}

// GetFingerprint — дешёвый поллинг изменений. Клиент может передать
// известный ему фингерпринт (?count=...&last_id=...), тогда в ответ
// добавляется признак changed.
func (c *SyncController) GetFingerprint(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	countParam := ctx.QueryParam("count")
	lastIDParam := ctx.QueryParam("last_id")
	if countParam == "" && lastIDParam == "" {
		fp, err := c.syncService.Fingerprint(reqCtx)
		if err != nil {
			return utils.ErrorResponse(ctx, err)
		}
		return utils.SuccessResponse(ctx, fp, "Фингерпринт леджера", http.StatusOK)
	}

	known := types.Fingerprint{}
	known.TransactionCount, _ = strconv.ParseUint(countParam, 10, 64)
	known.LastTransactionID, _ = strconv.ParseUint(lastIDParam, 10, 64)

	changed, current, err := c.syncService.HasChanges(reqCtx, known)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	body := struct {
		Changed     bool              `json:"changed"`
		Fingerprint types.Fingerprint `json:"fingerprint"`
	}{Changed: changed, Fingerprint: current}

	return utils.SuccessResponse(ctx, body, "Фингерпринт леджера", http.StatusOK)
}
