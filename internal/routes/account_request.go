package routes

import (
	"github.com/labstack/echo/v4"

	"sdo-ticketing/internal/controllers"
	"sdo-ticketing/pkg/constants"
	"sdo-ticketing/pkg/middleware"
)

func runAccountRequestRouter(api *echo.Group, secureGroup *echo.Group, ctrl *controllers.AccountRequestController, authMW *middleware.AuthMiddleware) {
	// Public: the DepEd forms and the status lookup require no session.
	api.POST("/account-requests", ctrl.CreateRequest)
	api.POST("/account-reset-requests", ctrl.CreateResetRequest)
	api.GET("/transactions/:number", ctrl.CheckTransaction)

	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.GET("/account-requests", ctrl.ListRequests, adminOnly)
		secureGroup.GET("/account-reset-requests", ctrl.ListResetRequests, adminOnly)
		secureGroup.PUT("/account-requests/:id/status", ctrl.UpdateRequestStatus, adminOnly)
		secureGroup.PUT("/account-reset-requests/:id/status", ctrl.UpdateResetRequestStatus, adminOnly)
	}
}
