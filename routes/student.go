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

type studentRoutes struct {
	db db.GuardianDatabase
}

func AddStudentRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := studentRoutes{db: database}
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	students := group.Group("/students",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}), adminOnly)
	students.GET("", util.HandlerWrapper(routes.getStudents, &util.HandlerOpts{}))
	students.POST("", util.HandlerWrapper(routes.createStudent, &util.HandlerOpts{}))
	students.PUT("/:id", util.HandlerWrapper(routes.updateStudent, &util.HandlerOpts{}))
	students.DELETE("/:id", util.HandlerWrapper(routes.deleteStudent, &util.HandlerOpts{}))
}

type writeStudentReq struct {
	Name       string `json:"name"`
	GuardianId int64  `json:"guardianId"`
	SchoolId   int64  `json:"schoolId"`
	GateId     int64  `json:"gateId"`
	VanId      *int64 `json:"vanId"`
}

func (req *writeStudentReq) validate() *util.HTTPError {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if req.GuardianId == 0 {
		fields["guardianId"] = "guardianId is required"
	}
	if req.SchoolId == 0 {
		fields["schoolId"] = "schoolId is required"
	}
	if req.GateId == 0 {
		fields["gateId"] = "gateId is required"
	}
	if len(fields) > 0 {
		return util.BuildValidationHTTPErr(fields)
	}
	return nil
}

func (req *writeStudentReq) toWrite() *db.WriteStudent {
	return &db.WriteStudent{
		Name:       strings.TrimSpace(req.Name),
		GuardianId: req.GuardianId,
		SchoolId:   req.SchoolId,
		GateId:     req.GateId,
		VanId:      req.VanId,
	}
}

func (st *studentRoutes) getStudents(c *gin.Context) (interface{}, *util.HTTPError) {
	query := &db.StudentsQuery{}
	for param, target := range map[string]**int64{
		"schoolId":   &query.SchoolId,
		"guardianId": &query.GuardianId,
		"vanId":      &query.VanId,
	} {
		if raw := c.Query(param); raw != "" {
			id, httpErr := util.ParseId(raw)
			if httpErr != nil {
				return nil, httpErr
			}
			*target = &id
		}
	}
	students, err := st.db.GetStudents(c, query)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return students, nil
}

func (st *studentRoutes) createStudent(c *gin.Context) (interface{}, *util.HTTPError) {
	var req writeStudentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	id, err := st.db.CreateStudent(c, req.toWrite())
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (st *studentRoutes) updateStudent(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req writeStudentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := req.validate(); httpErr != nil {
		return nil, httpErr
	}
	if err := st.db.UpdateStudent(c, id, req.toWrite()); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (st *studentRoutes) deleteStudent(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := st.db.DeleteStudent(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
