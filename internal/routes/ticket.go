package routes

import (
	"github.com/labstack/echo/v4"

	"sdo-ticketing/internal/controllers"
	"sdo-ticketing/pkg/constants"
	"sdo-ticketing/pkg/middleware"
)

func runTicketRouter(secureGroup *echo.Group, ctrl *controllers.TicketController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	staffOnly := authMW.RequireRoles(constants.RoleStaff)
	{
		secureGroup.POST("/tickets", ctrl.Create, staffOnly)
		secureGroup.GET("/tickets", ctrl.List)
		secureGroup.PUT("/tickets/:id/status", ctrl.UpdateStatus, adminOnly)
		secureGroup.PUT("/tickets/:id/archive", ctrl.Archive)
		secureGroup.GET("/tickets/:ticketNumber/devices", ctrl.Devices)
	}
}
