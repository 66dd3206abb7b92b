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

type userRoutes struct {
	db db.UserDatabase
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := userRoutes{db: database}
	users := group.Group("/users", middleware.GenAuth(database, authClient, &middleware.AuthConfig{
		AppAccountNotRequired: true,
	}))
	users.PUT("", util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
	users.GET("/me", util.HandlerWrapper(routes.getCurrentUser, &util.HandlerOpts{}))
}

type createUserReq struct {
	DisplayName string     `json:"displayName"`
	Role        model.Role `json:"role"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, util.BuildValidationHTTPErr(map[string]string{
			"displayName": "display name is required",
		})
	}
	role := req.Role
	if role == "" {
		role = model.RoleGuardian
	}
	// admins are seeded out of band, never self-assigned
	if role != model.RoleGuardian && role != model.RoleVanOwner {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "role must be GUARDIAN or VAN_OWNER",
		}
	}
	uid := middleware.MustGetToken(c).UID
	if err := ur.db.CreateUser(c, &model.User{
		Id:          uid,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Role:        role,
		Avatar:      util.Avatar(uid),
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ur *userRoutes) getCurrentUser(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.GetUserMaybe(c)
	if user == nil {
		return nil, &util.HTTPError{
			Status:  http.StatusForbidden,
			Message: "must have a user profile",
		}
	}
	return user, nil
}
