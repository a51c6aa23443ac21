package routes

import (
	controller "edrina-resto/controllers"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/menu", controller.GetMenuItems())
	incomingRoutes.POST("/api/menu", controller.CreateMenuItem())
	incomingRoutes.PUT("/api/menu/:menu_id", controller.UpdateMenuItem())
	incomingRoutes.DELETE("/api/menu/:menu_id", controller.DeleteMenuItem())
}
