package middleware

import (
	"net/http"
	"strings"

	"edrina-resto/helpers"
	"edrina-resto/models"

	"github.com/gin-gonic/gin"
)

// Authentication validates the bearer token and stashes the caller's
// identity in the gin context for the controllers.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("Authorization")
		clientToken = strings.TrimPrefix(clientToken, "Bearer ")
		if clientToken == "" {
			clientToken = c.Request.Header.Get("token")
		}
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization token provided"})
			c.Abort()
			return
		}
		claims, err := helpers.ValidateToken(clientToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set("uid", claims.Uid)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// Actor rebuilds the authenticated user from the context values set by
// Authentication.
func Actor(c *gin.Context) models.User {
	username := c.GetString("username")
	role, _ := models.ParseRole(c.GetString("role"))
	return models.User{
		User_id:  c.GetString("uid"),
		Username: &username,
		Role:     role,
	}
}
