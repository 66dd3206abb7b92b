package routes

import (
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"github.com/hafilati/hafilati-be/app"
	db2 "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/middleware"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/util"
)

type vanRoutes struct {
	db db2.FleetDatabase
}

func AddVanRoutes(group *gin.RouterGroup, database db2.Database, authClient *auth.Client) {
	routes := vanRoutes{db: database}
	vans := group.Group("/vans",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireRole(model.RoleAdmin, model.RoleVanOwner))
	vans.GET("", util.HandlerWrapper(routes.getVans, &util.HandlerOpts{}))
	vans.GET("/:id", util.HandlerWrapper(routes.getVanById, &util.HandlerOpts{}))
	vans.GET("/:id/manifest", util.HandlerWrapper(routes.getManifest, &util.HandlerOpts{}))
	vans.POST("", util.HandlerWrapper(routes.createVan, &util.HandlerOpts{}))
	vans.PUT("/:id", util.HandlerWrapper(routes.updateVan, &util.HandlerOpts{}))
	vans.DELETE("/:id", util.HandlerWrapper(routes.deleteVan, &util.HandlerOpts{}))
}

type writeVanReq struct {
	OwnerId     string `json:"ownerId"`
	PlateNumber string `json:"plateNumber"`
	Model       string `json:"model"`
	Capacity    int    `json:"capacity"`
	SchoolId    *int64 `json:"schoolId"`
}

func (req *writeVanReq) validate() *util.HTTPError {
	fields := map[string]string{}
	if strings.TrimSpace(req.PlateNumber) == "" {
		fields["plateNumber"] = "plate number is required"
	}
	if req.Capacity <= 0 {
		fields["capacity"] = "capacity must be positive"
	}
	if len(fields) > 0 {
		return util.BuildValidationHTTPErr(fields)
	}
	return nil
}

func buildDupPlateHTTPErr(err error) *util.HTTPError {
	if mysqlErr, ok := err.(*mysql.MySQLError); ok && db2.IsDupKeyErr(mysqlErr) {
		log.Println("duplicate van rejected on key", db2.GetDupKey(mysqlErr))
		return &util.HTTPError{
			Status:  http.StatusConflict,
			Message: "plate number already registered",
		}
	}
	return util.BuildDbHTTPErr(err)
}

// mustOwnVan loads the van and checks the caller may act on it: admins
// always, van owners only for their own vans.
func (vr *vanRoutes) mustOwnVan(c *gin.Context, id int64) (*model.Van, *util.HTTPError) {
	van, err := vr.db.GetVanById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if van == nil {
		return nil, &util.NotFoundHTTPErr
	}
	user := middleware.MustGetUser(c)
	if !user.IsAdmin() && van.OwnerId != user.Id {
		return nil, &util.HTTPError{
			Status:  http.StatusForbidden,
			Message: "not the owner of this van",
		}
	}
	return van, nil
}

func (vr *vanRoutes) getVans(c *gin.Context) (interface{}, *util.HTTPError) {
	query := &db2.VansQuery{}
	user := middleware.MustGetUser(c)
	if user.IsAdmin() {
		if ownerId := c.Query("ownerId"); ownerId != "" {
			query.OwnerId = &ownerId
		}
		if raw := c.Query("schoolId"); raw != "" {
			schoolId, httpErr := util.ParseId(raw)
			if httpErr != nil {
				return nil, httpErr
			}
			query.SchoolId = &schoolId
		}
	} else {
		// van owners only ever see their own fleet
		query.OwnerId = &user.Id
	}
	vans, err := vr.db.GetVans(c, query)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return vans, nil
}

func (vr *vanRoutes) getVanById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	return vr.mustOwnVan(c, id)
}

func (vr *vanRoutes) getManifest(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if _, httpErr := vr.mustOwnVan(c, id); httpErr != nil {
		return nil, httpErr
	}
	entries, err := vr.db.GetVanManifest(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return app.GroupManifest(entries), nil
}

func (vr *vanRoutes) createVan(c *gin.Context) (interface{}, *util.HTTPError) {
	var req writeVanReq
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
	id, err := vr.db.CreateVan(c, &db2.WriteVan{
		OwnerId:     ownerId,
		PlateNumber: strings.TrimSpace(req.PlateNumber),
		Model:       req.Model,
		Capacity:    req.Capacity,
		SchoolId:    req.SchoolId,
	})
	if err != nil {
		return nil, buildDupPlateHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (vr *vanRoutes) updateVan(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req writeVanReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	if _, httpErr := vr.mustOwnVan(c, id); httpErr != nil {
		return nil, httpErr
	}
	if err := vr.db.UpdateVan(c, id, &db2.WriteVan{
		PlateNumber: strings.TrimSpace(req.PlateNumber),
		Model:       req.Model,
		Capacity:    req.Capacity,
		SchoolId:    req.SchoolId,
	}); err != nil {
		return nil, buildDupPlateHTTPErr(err)
	}
	return nil, nil
}

func (vr *vanRoutes) deleteVan(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if _, httpErr := vr.mustOwnVan(c, id); httpErr != nil {
		return nil, httpErr
	}
	if err := vr.db.DeleteVan(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
