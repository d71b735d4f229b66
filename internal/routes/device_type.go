package routes

import (
	"github.com/labstack/echo/v4"

	"sdo-ticketing/internal/controllers"
	"sdo-ticketing/pkg/constants"
	"sdo-ticketing/pkg/middleware"
)

func runDeviceTypeRouter(secureGroup *echo.Group, ctrl *controllers.DeviceTypeController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.GET("/device-types", ctrl.List)
		secureGroup.POST("/device-types", ctrl.Create, adminOnly)
		secureGroup.DELETE("/device-types/:id", ctrl.Delete, adminOnly)
	}
}
