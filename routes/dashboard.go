package routes

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/hafilati/hafilati-be/controllers"
	"github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/middleware"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/util"
)

type dashboardRoutes struct {
	controller *controllers.DashboardController
}

func AddDashboardRoutes(group *gin.RouterGroup, database db.Database,
	controller *controllers.DashboardController, authClient *auth.Client) {
	routes := dashboardRoutes{controller: controller}
	dashboard := group.Group("/dashboard",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireRole(model.RoleAdmin))
	dashboard.GET("", util.HandlerWrapper(routes.getStats, &util.HandlerOpts{}))
}

func (dr *dashboardRoutes) getStats(c *gin.Context) (interface{}, *util.HTTPError) {
	return dr.controller.GetStats(c)
}
