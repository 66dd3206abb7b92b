package routes

import (
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/middleware"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/util"
)

type guardianRoutes struct {
	db db.GuardianDatabase
}

func AddGuardianRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := guardianRoutes{db: database}
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	guardians := group.Group("/guardians",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}), adminOnly)
	guardians.GET("", util.HandlerWrapper(routes.getGuardians, &util.HandlerOpts{}))
	guardians.GET("/:id", util.HandlerWrapper(routes.getGuardianById, &util.HandlerOpts{}))
	guardians.POST("", util.HandlerWrapper(routes.createGuardian, &util.HandlerOpts{}))
	guardians.PUT("/:id", util.HandlerWrapper(routes.updateGuardian, &util.HandlerOpts{}))
	guardians.DELETE("/:id", util.HandlerWrapper(routes.deleteGuardian, &util.HandlerOpts{}))
}

type writeGuardianReq struct {
	UserId   string `json:"userId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	SchoolId int64  `json:"schoolId"`
}

func (req *writeGuardianReq) validate() *util.HTTPError {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if req.SchoolId == 0 {
		fields["schoolId"] = "schoolId is required"
	}
	if len(fields) > 0 {
		return util.BuildValidationHTTPErr(fields)
	}
	return nil
}

func (req *writeGuardianReq) toWrite() *db.WriteGuardian {
	return &db.WriteGuardian{
		UserId:   req.UserId,
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		SchoolId: req.SchoolId,
	}
}

func (gr *guardianRoutes) getGuardians(c *gin.Context) (interface{}, *util.HTTPError) {
	var schoolId *int64
	if raw := c.Query("schoolId"); raw != "" {
		id, httpErr := util.ParseId(raw)
		if httpErr != nil {
			return nil, httpErr
		}
		schoolId = &id
	}
	guardians, err := gr.db.GetGuardians(c, schoolId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return guardians, nil
}

func (gr *guardianRoutes) getGuardianById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	guardian, err := gr.db.GetGuardianById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if guardian == nil {
		return nil, &util.NotFoundHTTPErr
	}
	return guardian, nil
}

func (gr *guardianRoutes) createGuardian(c *gin.Context) (interface{}, *util.HTTPError) {
	var req writeGuardianReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	id, err := gr.db.CreateGuardian(c, req.toWrite())
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (gr *guardianRoutes) updateGuardian(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req writeGuardianReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	if err := gr.db.UpdateGuardian(c, id, req.toWrite()); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (gr *guardianRoutes) deleteGuardian(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := gr.db.DeleteGuardian(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
