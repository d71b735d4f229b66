package routes

import (
	"github.com/labstack/echo/v4"

	"sdo-ticketing/internal/controllers"
	"sdo-ticketing/pkg/constants"
	"sdo-ticketing/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.GET("/reports/tickets", ctrl.TicketRegister, adminOnly)
		secureGroup.GET("/ticket-devices", ctrl.DeviceRegister, adminOnly)
	}
}
