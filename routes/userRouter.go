package routes

import (
	controller "edrina-resto/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes are registered before the authentication middleware. The
// websocket endpoint lives here too: a browser handshake cannot attach
// the bearer header.
func AuthRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/api/auth/login", controller.Login())
	incomingRoutes.POST("/api/init", controller.InitSystem())
	incomingRoutes.GET("/api/ws", controller.HandleWebSocket())
}

func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/auth/me", controller.Me())
	incomingRoutes.POST("/api/auth/register", controller.Register())
	incomingRoutes.GET("/api/users", controller.GetUsers())
	incomingRoutes.DELETE("/api/users/:user_id", controller.DeleteUser())
}
