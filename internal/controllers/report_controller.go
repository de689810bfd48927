package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

var snapshotHeaders = []interface{}{"Категория", "Размер", "Приход", "Расход", "Остаток"}

type ReportController struct {
	snapshotService services.SnapshotServiceInterface
	logger          *zap.Logger
}

func NewReportController(snapshotService services.SnapshotServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{
		snapshotService: snapshotService,
		logger:          logger,
	}
}

// GetMonthlySnapshot — остатки и движение на конец месяца:
// GET /reports/snapshot?year=2026&month=7&format=xlsx
func (c *ReportController) GetMonthlySnapshot(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.QueryParam("year"))
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("неверный параметр year"))
	}
	month, err := strconv.Atoi(ctx.QueryParam("month"))
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("неверный параметр month"))
	}

	snapshot, err := c.snapshotService.MonthlySnapshot(ctx.Request().Context(), year, month)
	if err != nil {
		c.logger.Error("GetMonthlySnapshot: ошибка построения снапшота",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	if strings.ToLower(ctx.QueryParam("format")) == "xlsx" {
		return c.respondWithXLSX(ctx, snapshot)
	}
	return utils.SuccessResponse(ctx, snapshot, "Снапшот сформирован", http.StatusOK, uint64(len(snapshot.Groups)))
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, snapshot *entities.MonthlySnapshot) error {
	f := excelize.NewFile()
	sheet := "Остатки"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &snapshotHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "E1", style)

	for i, g := range snapshot.Groups {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{g.Category, g.Size, g.StockIn, g.StockOut, g.Remaining}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 25)
	f.SetColWidth(sheet, "B", "E", 12)

	fileName := fmt.Sprintf("snapshot_%d-%02d_%s.xlsx", snapshot.Year, snapshot.Month, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
