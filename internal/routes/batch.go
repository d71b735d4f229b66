package routes

import (
	"github.com/labstack/echo/v4"

	"sdo-ticketing/internal/controllers"
	"sdo-ticketing/pkg/constants"
	"sdo-ticketing/pkg/middleware"
)

func runBatchRouter(secureGroup *echo.Group, ctrl *controllers.BatchController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		// next-number before :id so the literal path wins.
		secureGroup.GET("/batches/next-number", ctrl.NextNumber, adminOnly)
		secureGroup.POST("/batches", ctrl.Create, adminOnly)
		secureGroup.GET("/batches", ctrl.List)
		secureGroup.PUT("/batches/:id/receive", ctrl.Receive)
		secureGroup.PUT("/batches/:id/cancel", ctrl.Cancel, adminOnly)
		secureGroup.GET("/batches/:id/devices", ctrl.Devices)
	}
}
