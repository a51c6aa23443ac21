package controllers

import (
	"context"
	"net/http"
	"time"

	"edrina-resto/apperrors"
	"edrina-resto/middleware"
	"edrina-resto/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetDailyStats reports today's order volume and paid revenue for the
// cashier and admin dashboards.
func GetDailyStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapViewStats) {
			abortWithError(c, apperrors.Forbiddenf("admin or cashier access required"))
			return
		}

		now := time.Now().UTC()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		matchStage := bson.D{{Key: "$match", Value: bson.D{
			{Key: "created_at", Value: bson.D{{Key: "$gte", Value: startOfDay}}},
		}}}
		groupStage := bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_orders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "paid_orders", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$status", models.StatusPaid}}}, 1, 0,
				}},
			}}}},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$status", models.StatusPaid}}}, "$total_amount", 0,
				}},
			}}}},
		}}}

		cursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{matchStage, groupStage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while aggregating stats"})
			return
		}
		var rows []bson.M
		if err := cursor.All(ctx, &rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		stats := gin.H{
			"date":          startOfDay.Format("2006-01-02"),
			"total_orders":  0,
			"paid_orders":   0,
			"total_revenue": 0.0,
		}
		if len(rows) > 0 {
			stats["total_orders"] = rows[0]["total_orders"]
			stats["paid_orders"] = rows[0]["paid_orders"]
			stats["total_revenue"] = rows[0]["total_revenue"]
		}
		c.JSON(http.StatusOK, stats)
	}
}

// ExportOrders dumps every order for offline accounting. Admin only.
func ExportOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapExportOrders) {
			abortWithError(c, apperrors.Forbiddenf("admin access required"))
			return
		}

		cursor, err := orderCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while exporting orders"})
			return
		}
		allOrders := []models.Order{}
		if err := cursor.All(ctx, &allOrders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": allOrders})
	}
}
