package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/model"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

type AuthConfig struct {
	SessionNotRequired    bool
	AppAccountNotRequired bool
}

// GenAuth verifies the bearer ID token and resolves the local user
// profile. Session/account requirements are relaxed via config for the
// public surfaces.
func GenAuth(userDB db.UserDatabase, authClient *auth.Client, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader, ok := c.Request.Header["Authorization"]
		if !ok || len(authorizationHeader) == 0 {
			if config.SessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no authorization header",
			})
			c.Abort()
			return
		}
		if strings.Index(authorizationHeader[0], "Bearer ") != 0 || len(authorizationHeader[0]) < 8 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "incorrectly formatted authorization header",
			})
			c.Abort()
			return
		}
		token, err := authClient.VerifyIDToken(c, authorizationHeader[0][7:])

		c.Set(TOKEN_KEY, token)

		if err != nil {
			if config.SessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.AppAccountNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

// RequireRole gates a group to the listed roles. An admin passes only
// if ADMIN is listed: route groups spell out who may enter.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUserMaybe(c)
		if user == nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "insufficient role",
		})
		c.Abort()
	}
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

func GetUserMaybe(c *gin.Context) *model.User {
	user, exists := c.Get(USER_KEY)
	if !exists {
		return nil
	}
	return user.(*model.User)
}

func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}
