package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runDemoRouter(g *echo.Group, ctrl *controllers.DemoController) {
	g.POST("/demo-loans", ctrl.CreateDemoLoan)
	g.POST("/demo-loans/return", ctrl.ReturnDemoLoan)
	g.GET("/demo-loans/:order_number/returnable", ctrl.GetReturnableItems)
}
