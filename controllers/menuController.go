package controllers

import (
	"context"
	"net/http"
	"time"

	"edrina-resto/apperrors"
	"edrina-resto/database"
	"edrina-resto/middleware"
	"edrina-resto/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var menuCollection *mongo.Collection = database.OpenCollection(database.Client, "menu")

func GetMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		cursor, err := menuCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing the menu items"})
			return
		}
		allItems := []models.MenuItem{}
		if err := cursor.All(ctx, &allItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, allItems)
	}
}

func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapManageMenu) {
			abortWithError(c, apperrors.Forbiddenf("admin or chef access required"))
			return
		}

		var item models.MenuItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item.Created_at = time.Now()
		item.Updated_at = item.Created_at
		item.ID = primitive.NewObjectID()
		item.Menu_id = uuid.NewString()

		if _, err := menuCollection.InsertOne(ctx, item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func UpdateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapManageMenu) {
			abortWithError(c, apperrors.Forbiddenf("admin or chef access required"))
			return
		}

		var item models.MenuItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		updateObj = append(updateObj, bson.E{Key: "name", Value: item.Name})
		updateObj = append(updateObj, bson.E{Key: "description", Value: item.Description})
		updateObj = append(updateObj, bson.E{Key: "price", Value: item.Price})
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		filter := bson.M{"menu_id": c.Param("menu_id")}
		result, err := menuCollection.UpdateOne(
			ctx,
			filter,
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item update failed"})
			return
		}
		if result.MatchedCount == 0 {
			abortWithError(c, apperrors.NotFoundf("menu item not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "menu item updated successfully"})
	}
}

func DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapManageMenu) {
			abortWithError(c, apperrors.Forbiddenf("admin or chef access required"))
			return
		}

		result, err := menuCollection.DeleteOne(ctx, bson.M{"menu_id": c.Param("menu_id")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			abortWithError(c, apperrors.NotFoundf("menu item not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "menu item deleted successfully"})
	}
}

// seedMenu loads the sample card used by a fresh install.
func seedMenu(ctx context.Context) {
	samples := []models.MenuItem{
		{Name: "Couscous Royal", Description: "Couscous avec viande et légumes", Price: 18.5},
		{Name: "Tajine Agneau", Description: "Tajine d'agneau aux pruneaux", Price: 22.0},
		{Name: "Brick à l'oeuf", Description: "Brick tunisienne à l'oeuf", Price: 8.0},
		{Name: "Salade Mechouia", Description: "Salade grillée tunisienne", Price: 12.0},
		{Name: "Makrouda", Description: "Pâtisserie traditionnelle", Price: 6.0},
		{Name: "Thé à la menthe", Description: "Thé traditionnel", Price: 4.0},
	}
	docs := make([]interface{}, 0, len(samples))
	now := time.Now()
	for _, s := range samples {
		s.ID = primitive.NewObjectID()
		s.Menu_id = uuid.NewString()
		s.Created_at = now
		s.Updated_at = now
		docs = append(docs, s)
	}
	menuCollection.InsertMany(ctx, docs)
}
