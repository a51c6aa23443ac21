package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id" json:"-"`
	Username *string            `bson:"username" json:"username" validate:"required,min=2,max=50"`
	Password *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Role     Role               `bson:"role" json:"role" validate:"required,eq=server|eq=chef|eq=cashier|eq=admin"`

	Token         *string   `bson:"token" json:"-"`
	Refresh_Token *string   `bson:"refresh_token" json:"-"`
	Created_at    time.Time `bson:"created_at" json:"created_at"`
	Updated_at    time.Time `bson:"updated_at" json:"updated_at"`
	User_id       string    `bson:"user_id" json:"id"`
}

// Public strips the credential fields for API responses.
func (u User) Public() User {
	u.Password = nil
	u.Token = nil
	u.Refresh_Token = nil
	return u
}
