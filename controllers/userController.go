package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"edrina-resto/apperrors"
	"edrina-resto/database"
	"edrina-resto/helpers"
	"edrina-resto/middleware"
	"edrina-resto/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")
var validate = validator.New()

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// abortWithError translates the error taxonomy into the JSON error body
// every endpoint uses.
func abortWithError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var creds struct {
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
		}
		if err := c.BindJSON(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var foundUser models.User
		err := userCollection.FindOne(ctx, bson.M{"username": creds.Username}).Decode(&foundUser)
		if err != nil {
			abortWithError(c, apperrors.Authf("invalid credentials"))
			return
		}
		if !VerifyPassword(creds.Password, *foundUser.Password) {
			abortWithError(c, apperrors.Authf("invalid credentials"))
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*foundUser.Username, foundUser.User_id, string(foundUser.Role))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}
		helpers.UpdateAllTokens(token, refreshToken, foundUser.User_id)

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
			"user":         foundUser.Public(),
		})
	}
}

// Me resolves the bearer token back to its user record. The dashboard
// calls this on startup to restore a persisted session.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": c.GetString("uid")}).Decode(&user)
		if err != nil {
			abortWithError(c, apperrors.Authf("user not found"))
			return
		}
		c.JSON(http.StatusOK, user.Public())
	}
}

// Register creates a staff account. Admin only; roles are immutable after
// this point.
func Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapManageUsers) {
			abortWithError(c, apperrors.Forbiddenf("only admin can register new users"))
			return
		}

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"username": user.Username})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking the username"})
			return
		}
		if count > 0 {
			abortWithError(c, apperrors.Validationf("username already exists"))
			return
		}

		password := HashPassword(*user.Password)
		user.Password = &password
		user.Created_at = time.Now()
		user.Updated_at = user.Created_at
		user.ID = primitive.NewObjectID()
		user.User_id = uuid.NewString()

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user was not created"})
			return
		}
		c.JSON(http.StatusOK, user.Public())
	}
}

func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapManageUsers) {
			abortWithError(c, apperrors.Forbiddenf("admin access required"))
			return
		}

		cursor, err := userCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing users"})
			return
		}
		var allUsers []models.User
		if err := cursor.All(ctx, &allUsers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		users := make([]models.User, 0, len(allUsers))
		for _, u := range allUsers {
			users = append(users, u.Public())
		}
		c.JSON(http.StatusOK, users)
	}
}

func DeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		actor := middleware.Actor(c)
		if !actor.Role.Can(models.CapManageUsers) {
			abortWithError(c, apperrors.Forbiddenf("admin access required"))
			return
		}

		result, err := userCollection.DeleteOne(ctx, bson.M{"user_id": c.Param("user_id")})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user delete failed"})
			return
		}
		if result.DeletedCount == 0 {
			abortWithError(c, apperrors.NotFoundf("user not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
	}
}

// seedDefaults creates the default admin account unless one already
// exists. The collection access is passed in as closures so the
// idempotence rule is testable without a live database.
func seedDefaults(
	ctx context.Context,
	countAdmins func(context.Context) (int64, error),
	insertAdmin func(context.Context, models.User) error,
) (bool, error) {
	count, err := countAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	username := defaultAdminUsername
	password := HashPassword(defaultAdminPassword)
	admin := models.User{
		ID:         primitive.NewObjectID(),
		User_id:    uuid.NewString(),
		Username:   &username,
		Password:   &password,
		Role:       models.RoleAdmin,
		Created_at: time.Now(),
		Updated_at: time.Now(),
	}
	if err := insertAdmin(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

// InitSystem seeds the default admin account and the sample menu. Safe to
// call more than once: seeding is skipped when an admin already exists.
func InitSystem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		seeded, err := seedDefaults(ctx,
			func(ctx context.Context) (int64, error) {
				return userCollection.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
			},
			func(ctx context.Context, admin models.User) error {
				_, err := userCollection.InsertOne(ctx, admin)
				return err
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "system initialization failed"})
			return
		}
		if !seeded {
			c.JSON(http.StatusOK, gin.H{"message": "system already initialized"})
			return
		}
		seedMenu(ctx)

		c.JSON(http.StatusOK, gin.H{"message": "system initialized successfully"})
	}
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(userPassword)) == nil
}
