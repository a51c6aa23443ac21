package controllers

import (
	"context"
	"net/http"
	"time"

	"edrina-resto/apperrors"
	"edrina-resto/database"
	"edrina-resto/lifecycle"
	"edrina-resto/middleware"
	"edrina-resto/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")

var engine = lifecycle.NewEngine()

// scopeFilter translates the per-role view scope into a query filter so
// the database only returns what the caller may see.
func scopeFilter(actor models.User) bson.M {
	switch actor.Role {
	case models.RoleServer:
		return bson.M{"server_id": actor.User_id}
	case models.RoleChef:
		return bson.M{"status": bson.M{"$in": []models.OrderStatus{models.StatusInKitchen, models.StatusReady}}}
	case models.RoleCashier:
		return bson.M{"status": bson.M{"$in": []models.OrderStatus{models.StatusReady, models.StatusPaid}}}
	default:
		return bson.M{}
	}
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		cursor, err := orderCollection.Find(ctx, scopeFilter(actor))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		allOrders := []models.Order{}
		if err := cursor.All(ctx, &allOrders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, allOrders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": c.Param("order_id")}).Decode(&order)
		if err != nil {
			abortWithError(c, apperrors.NotFoundf("order not found"))
			return
		}
		if !lifecycle.VisibleTo(actor, order) {
			abortWithError(c, apperrors.Forbiddenf("order is outside your view"))
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		var body struct {
			Table_number int                `json:"table_number"`
			Items        []models.OrderItem `json:"items"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := engine.Submit(actor, body.Table_number, body.Items)
		if err != nil {
			abortWithError(c, err)
			return
		}
		order.ID = primitive.NewObjectID()

		if _, err := orderCollection.InsertOne(ctx, order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}
		notifyOrderEvent(EventOrderCreated, order)
		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrder handles both mutations the dashboard performs: a server
// replacing the line items wholesale, and the kitchen/cashier advancing
// the status. The lifecycle engine decides legality; the mongo filter
// repeats the status guard so a racing transition makes the update match
// nothing instead of clobbering newer state.
func UpdateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		orderId := c.Param("order_id")

		var body struct {
			Items  *[]models.OrderItem `json:"items"`
			Status *string             `json:"status"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if body.Items == nil && body.Status == nil {
			abortWithError(c, apperrors.Validationf("nothing to update"))
			return
		}
		// Editing items takes the server role, advancing takes the kitchen
		// or cashier; no caller can do both, and accepting both risks a
		// half-applied request. Rejected before anything persists.
		if body.Items != nil && body.Status != nil {
			abortWithError(c, apperrors.Validationf("update either items or status, not both"))
			return
		}

		var order models.Order
		if err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order); err != nil {
			abortWithError(c, apperrors.NotFoundf("order not found"))
			return
		}

		if body.Items != nil {
			updated, err := engine.Edit(actor, order, *body.Items)
			if err != nil {
				abortWithError(c, err)
				return
			}
			if err := applyGuarded(ctx, orderId, models.StatusInKitchen, bson.D{
				{Key: "items", Value: updated.Items},
				{Key: "total_amount", Value: updated.Total_amount},
				{Key: "updated_at", Value: updated.Updated_at},
			}); err != nil {
				abortWithError(c, err)
				return
			}
			order = updated
		}

		if body.Status != nil {
			var updated models.Order
			var err error
			switch models.OrderStatus(*body.Status) {
			case models.StatusReady:
				updated, err = engine.AdvanceToReady(actor, order)
				if err == nil {
					err = applyGuarded(ctx, orderId, models.StatusInKitchen, bson.D{
						{Key: "status", Value: updated.Status},
						{Key: "kitchen_ready_at", Value: updated.Kitchen_ready_at},
						{Key: "updated_at", Value: updated.Updated_at},
					})
				}
				if err == nil {
					notifyOrderEvent(EventOrderReady, updated)
				}
			case models.StatusPaid:
				updated, err = engine.AdvanceToPaid(actor, order)
				if err == nil {
					err = applyGuarded(ctx, orderId, models.StatusReady, bson.D{
						{Key: "status", Value: updated.Status},
						{Key: "paid_at", Value: updated.Paid_at},
						{Key: "updated_at", Value: updated.Updated_at},
					})
				}
				if err == nil {
					notifyOrderEvent(EventOrderPaid, updated)
				}
			default:
				err = apperrors.Validationf("unknown target status %q", *body.Status)
			}
			if err != nil {
				abortWithError(c, err)
				return
			}
			order = updated
		}

		c.JSON(http.StatusOK, order)
	}
}

// applyGuarded writes the update only while the order still holds the
// status the engine decided on. A zero match means another role won the
// race; the caller gets InvalidState, never a silent overwrite.
func applyGuarded(ctx context.Context, orderId string, expect models.OrderStatus, set bson.D) error {
	result, err := orderCollection.UpdateOne(
		ctx,
		bson.M{"order_id": orderId, "status": expect},
		bson.D{{Key: "$set", Value: set}},
		options.Update().SetUpsert(false),
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.InvalidStatef("order is no longer %s", expect)
	}
	return nil
}

// DeleteOrder is the administrative escape hatch; the lifecycle itself
// never deletes.
func DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapDeleteOrder) {
			abortWithError(c, apperrors.Forbiddenf("only admin can delete orders"))
			return
		}

		result, err := orderCollection.DeleteOne(ctx, bson.M{"order_id": c.Param("order_id")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			abortWithError(c, apperrors.NotFoundf("order not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted successfully"})
	}
}
