package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runTransactionRouter(g *echo.Group, ctrl *controllers.TransactionController) {
	g.POST("/transactions", ctrl.CreateTransaction)
	g.GET("/transactions", ctrl.GetTransactions)
}
