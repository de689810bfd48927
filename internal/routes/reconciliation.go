package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runReconciliationRouter(g *echo.Group, ctrl *controllers.ReconciliationController) {
	g.POST("/reconciliation/run", ctrl.RunReconciliation)
}
