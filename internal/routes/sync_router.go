package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runSyncRouter(g *echo.Group, ctrl *controllers.SyncController) {
	g.GET("/sync/fingerprint", ctrl.GetFingerprint)
}
