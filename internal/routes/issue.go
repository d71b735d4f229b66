package routes

import (
	"github.com/labstack/echo/v4"

	"sdo-ticketing/internal/controllers"
	"sdo-ticketing/pkg/constants"
	"sdo-ticketing/pkg/middleware"
)

func runIssueRouter(secureGroup *echo.Group, ctrl *controllers.IssueController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.GET("/issues", ctrl.List)
		secureGroup.POST("/issues", ctrl.Create, adminOnly)
		secureGroup.DELETE("/issues/:id", ctrl.Delete, adminOnly)
	}
}
