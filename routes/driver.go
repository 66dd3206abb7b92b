package routes

import (
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	db2 "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/middleware"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/util"
)

type driverRoutes struct {
	db db2.FleetDatabase
}

func AddDriverRoutes(group *gin.RouterGroup, database db2.Database, authClient *auth.Client) {
	routes := driverRoutes{db: database}
	drivers := group.Group("/drivers",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireRole(model.RoleAdmin, model.RoleVanOwner))
	drivers.GET("", util.HandlerWrapper(routes.getDrivers, &util.HandlerOpts{}))
	drivers.POST("", util.HandlerWrapper(routes.createDriver, &util.HandlerOpts{}))
	drivers.PUT("/:id", util.HandlerWrapper(routes.updateDriver, &util.HandlerOpts{}))
	drivers.DELETE("/:id", util.HandlerWrapper(routes.deleteDriver, &util.HandlerOpts{}))
}

type writeDriverReq struct {
	OwnerId       string `json:"ownerId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
	VanId         *int64 `json:"vanId"`
}

func (req *writeDriverReq) validate() *util.HTTPError {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(req.LicenseNumber) == "" {
		fields["licenseNumber"] = "license number is required"
	}
	if len(fields) > 0 {
		return util.BuildValidationHTTPErr(fields)
	}
	return nil
}

func buildDupLicenseHTTPErr(err error) *util.HTTPError {
	if mysqlErr, ok := err.(*mysql.MySQLError); ok && db2.IsDupKeyErr(mysqlErr) {
		log.Println("duplicate driver rejected on key", db2.GetDupKey(mysqlErr))
		return &util.HTTPError{
			Status:  http.StatusConflict,
			Message: "license number already registered",
		}
	}
	return util.BuildDbHTTPErr(err)
}

func (dr *driverRoutes) mustOwnDriver(c *gin.Context, id int64) (*model.Driver, *util.HTTPError) {
	driver, err := dr.db.GetDriverById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if driver == nil {
		return nil, &util.NotFoundHTTPErr
	}
	user := middleware.MustGetUser(c)
	if !user.IsAdmin() && driver.OwnerId != user.Id {
		return nil, &util.HTTPError{
			Status:  http.StatusForbidden,
			Message: "not the owner of this driver record",
		}
	}
	return driver, nil
}

func (dr *driverRoutes) getDrivers(c *gin.Context) (interface{}, *util.HTTPError) {
	var ownerId *string
	user := middleware.MustGetUser(c)
	if user.IsAdmin() {
		if raw := c.Query("ownerId"); raw != "" {
			ownerId = &raw
		}
	} else {
		ownerId = &user.Id
	}
	drivers, err := dr.db.GetDrivers(c, ownerId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return drivers, nil
}

func (dr *driverRoutes) createDriver(c *gin.Context) (interface{}, *util.HTTPError) {
	var req writeDriverReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetUser(c)
	ownerId := user.Id
	if user.IsAdmin() && req.OwnerId != "" {
		ownerId = req.OwnerId
	}
	id, err := dr.db.CreateDriver(c, &db2.WriteDriver{
		OwnerId:       ownerId,
		Name:          strings.TrimSpace(req.Name),
		Phone:         req.Phone,
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		VanId:         req.VanId,
	})
	if err != nil {
		return nil, buildDupLicenseHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (dr *driverRoutes) updateDriver(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req writeDriverReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	if _, httpErr := dr.mustOwnDriver(c, id); httpErr != nil {
		return nil, httpErr
	}
	if err := dr.db.UpdateDriver(c, id, &db2.WriteDriver{
		Name:          strings.TrimSpace(req.Name),
		Phone:         req.Phone,
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		VanId:         req.VanId,
	}); err != nil {
		return nil, buildDupLicenseHTTPErr(err)
	}
	return nil, nil
}

func (dr *driverRoutes) deleteDriver(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if _, httpErr := dr.mustOwnDriver(c, id); httpErr != nil {
		return nil, httpErr
	}
	if err := dr.db.DeleteDriver(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
