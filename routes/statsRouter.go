package routes

import (
	controller "edrina-resto/controllers"

	"github.com/gin-gonic/gin"
)

func StatsRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/stats/daily", controller.GetDailyStats())
	incomingRoutes.GET("/api/export/orders", controller.ExportOrders())
}
