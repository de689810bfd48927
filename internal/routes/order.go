package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runOrderRouter(g *echo.Group, ctrl *controllers.OrderController) {
	g.POST("/orders", ctrl.CreateOrder)
	g.GET("/orders/next-number", ctrl.NextEntryNumber)
	g.GET("/orders/:order_number", ctrl.FindOrder)
	g.POST("/orders/:order_number/documents", ctrl.AttachOrderFile)
	g.POST("/orders/:order_number/issue", ctrl.IssueOrder)
	g.POST("/orders/:order_number/cancel", ctrl.CancelOrder)
}
