package routes

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/middleware"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/util"
)

type schoolRoutes struct {
	db db.SchoolDatabase
}

func AddSchoolRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := schoolRoutes{db: database}
	schools := group.Group("/schools", middleware.GenAuth(database, authClient, &middleware.AuthConfig{}))
	schools.GET("", util.HandlerWrapper(routes.getSchools, &util.HandlerOpts{}))
	schools.GET("/:id", util.HandlerWrapper(routes.getSchoolById, &util.HandlerOpts{}))
	schools.GET("/:id/gates", util.HandlerWrapper(routes.getGates, &util.HandlerOpts{}))

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	schools.POST("", adminOnly, util.HandlerWrapper(routes.createSchool, &util.HandlerOpts{}))
	schools.PUT("/:id", adminOnly, util.HandlerWrapper(routes.updateSchool, &util.HandlerOpts{}))
	schools.DELETE("/:id", adminOnly, util.HandlerWrapper(routes.deleteSchool, &util.HandlerOpts{}))
	schools.POST("/:id/gates", adminOnly, util.HandlerWrapper(routes.createGate, &util.HandlerOpts{}))

	gates := group.Group("/gates", middleware.GenAuth(database, authClient, &middleware.AuthConfig{}), adminOnly)
	gates.PUT("/:id", util.HandlerWrapper(routes.updateGate, &util.HandlerOpts{}))
	gates.DELETE("/:id", util.HandlerWrapper(routes.deleteGate, &util.HandlerOpts{}))
}

type writeSchoolReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (req *writeSchoolReq) validate() *util.HTTPError {
	if strings.TrimSpace(req.Name) == "" {
		return util.BuildValidationHTTPErr(map[string]string{"name": "name is required"})
	}
	return nil
}

func (req *writeSchoolReq) toWrite() *db.WriteSchool {
	return &db.WriteSchool{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Phone:   req.Phone,
	}
}

func (sr *schoolRoutes) getSchools(c *gin.Context) (interface{}, *util.HTTPError) {
	schools, err := sr.db.GetSchools(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return schools, nil
}

func (sr *schoolRoutes) getSchoolById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	school, err := sr.db.GetSchoolById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if school == nil {
		return nil, &util.NotFoundHTTPErr
	}
	return school, nil
}

func (sr *schoolRoutes) createSchool(c *gin.Context) (interface{}, *util.HTTPError) {
	var req writeSchoolReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	id, err := sr.db.CreateSchool(c, req.toWrite())
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (sr *schoolRoutes) updateSchool(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req writeSchoolReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	if err := sr.db.UpdateSchool(c, id, req.toWrite()); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (sr *schoolRoutes) deleteSchool(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := sr.db.DeleteSchool(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

type writeGateReq struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func (req *writeGateReq) validate() *util.HTTPError {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if req.Lat < -90 || req.Lat > 90 {
		fields["lat"] = "latitude out of range"
	}
	if req.Lng < -180 || req.Lng > 180 {
		fields["lng"] = "longitude out of range"
	}
	if len(fields) > 0 {
		return util.BuildValidationHTTPErr(fields)
	}
	return nil
}

func (sr *schoolRoutes) getGates(c *gin.Context) (interface{}, *util.HTTPError) {
	schoolId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	gates, err := sr.db.GetGatesForSchool(c, schoolId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gates, nil
}

func (sr *schoolRoutes) createGate(c *gin.Context) (interface{}, *util.HTTPError) {
	schoolId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req writeGateReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	school, err := sr.db.GetSchoolById(c, schoolId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if school == nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "school does not exist",
		}
	}
	id, err := sr.db.CreateGate(c, schoolId, &db.WriteGate{
		Name: strings.TrimSpace(req.Name),
		Lat:  req.Lat,
		Lng:  req.Lng,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (sr *schoolRoutes) updateGate(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req writeGateReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	if err := sr.db.UpdateGate(c, id, &db.WriteGate{
		Name: strings.TrimSpace(req.Name),
		Lat:  req.Lat,
		Lng:  req.Lng,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (sr *schoolRoutes) deleteGate(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := sr.db.DeleteGate(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
