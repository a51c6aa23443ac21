package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusInKitchen OrderStatus = "in_kitchen"
	StatusReady     OrderStatus = "ready"
	StatusPaid      OrderStatus = "paid"
)

// Tables are a fixed bank; orders reference them by number only.
const (
	MinTableNumber = 1
	MaxTableNumber = 8
)

type OrderItem struct {
	Menu_item_id   string  `bson:"menu_item_id" json:"menu_item_id" validate:"required"`
	Menu_item_name string  `bson:"menu_item_name" json:"menu_item_name"`
	Quantity       int     `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Price          float64 `bson:"price" json:"price" validate:"min=0"`
}

type Order struct {
	ID               primitive.ObjectID `bson:"_id" json:"-"`
	Order_id         string             `bson:"order_id" json:"id"`
	Table_number     int                `bson:"table_number" json:"table_number" validate:"required,min=1,max=8"`
	Server_id        string             `bson:"server_id" json:"server_id"`
	Server_name      string             `bson:"server_name" json:"server_name"`
	Items            []OrderItem        `bson:"items" json:"items" validate:"required,min=1,dive"`
	Total_amount     float64            `bson:"total_amount" json:"total_amount"`
	Status           OrderStatus        `bson:"status" json:"status" validate:"required,eq=in_kitchen|eq=ready|eq=paid"`
	Created_at       time.Time          `bson:"created_at" json:"created_at"`
	Updated_at       time.Time          `bson:"updated_at" json:"updated_at"`
	Kitchen_ready_at *time.Time         `bson:"kitchen_ready_at" json:"kitchen_ready_at"`
	Paid_at          *time.Time         `bson:"paid_at" json:"paid_at"`
}
