package routes

import (
	"github.com/labstack/echo/v4"

	"sdo-ticketing/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, ctrl *controllers.AuthController) {
	api.POST("/login", ctrl.Login)

	secureGroup.GET("/me", ctrl.Me)
	secureGroup.POST("/auth/change-password", ctrl.ChangePassword)
}
