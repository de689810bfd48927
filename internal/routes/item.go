package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runItemRouter(g *echo.Group, ctrl *controllers.ItemController, txCtrl *controllers.TransactionController) {
	g.GET("/items", ctrl.GetItems)
	g.GET("/items/:serial_number", ctrl.FindItem)
	g.GET("/items/:serial_number/history", txCtrl.GetHistoryBySerial)
	g.DELETE("/items/:serial_number", ctrl.DeleteItem)
}
