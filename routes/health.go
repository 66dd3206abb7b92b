package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	db2 "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/util"
)

type healthRoutes struct {
	db db2.Database
}

func AddHealthCheckRoutes(group *gin.RouterGroup, database db2.Database) {
	routes := healthRoutes{db: database}
	health := group.Group("/health")
	health.GET("", util.HandlerWrapper(AliveCheck, &util.HandlerOpts{}))
	health.GET("/ready", util.HandlerWrapper(routes.readyCheck, &util.HandlerOpts{}))
}

func AliveCheck(c *gin.Context) (interface{}, *util.HTTPError) {
	return nil, nil
}

// readyCheck pings the database so load balancers only route to
// instances that can serve requests.
func (hr *healthRoutes) readyCheck(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := hr.db.GetSQLDB().PingContext(c); err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusServiceUnavailable,
			Message: "database unreachable",
		}
	}
	return nil, nil
}
