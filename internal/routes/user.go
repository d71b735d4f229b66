package routes

import (
	"github.com/labstack/echo/v4"

	"sdo-ticketing/internal/controllers"
	"sdo-ticketing/pkg/constants"
	"sdo-ticketing/pkg/middleware"
)

func runUserRouter(api *echo.Group, secureGroup *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	// Public school directory feeds the account request forms.
	api.GET("/schools", ctrl.ListSchools)

	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.POST("/users/schools", ctrl.CreateSchoolAccount, adminOnly)
		secureGroup.GET("/users/schools", ctrl.ListStaffSchools, adminOnly)
		secureGroup.POST("/users/reset-school-password", ctrl.ResetSchoolPassword, adminOnly)
	}
}
