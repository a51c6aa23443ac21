package routes

import (
	controller "edrina-resto/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/orders", controller.GetOrders())
	incomingRoutes.GET("/api/orders/:order_id", controller.GetOrder())
	incomingRoutes.POST("/api/orders", controller.CreateOrder())
	incomingRoutes.PUT("/api/orders/:order_id", controller.UpdateOrder())
	incomingRoutes.DELETE("/api/orders/:order_id", controller.DeleteOrder())
}
