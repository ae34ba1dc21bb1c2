package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status progression: PENDING -> PROCESSING -> SHIPPED -> DELIVERED
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
)

// OrderItem is one line of an order
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order represents a customer order
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID           string             `bson:"orderId" json:"orderId"`
	CustomerID        primitive.ObjectID `bson:"customerId" json:"customerId"`
	CustomerEmail     string             `bson:"customerEmail" json:"customerEmail"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Total             float64            `bson:"total" json:"total"`
	Status            string             `bson:"status" json:"status"`
	Carrier           string             `bson:"carrier" json:"carrier"`
	TrackingNumber    string             `bson:"trackingNumber" json:"trackingNumber"`
	EstimatedDelivery time.Time          `bson:"estimatedDelivery" json:"estimatedDelivery"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderSummary is the reduced view returned by getCustomerOrders
type OrderSummary struct {
	OrderID           string    `json:"orderId"`
	Status            string    `json:"status"`
	Total             float64   `json:"total"`
	ItemCount         int       `json:"itemCount"`
	CreatedAt         time.Time `json:"createdAt"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

// CreateOrderRequest is the body of POST /api/orders
type CreateOrderRequest struct {
	CustomerID    string             `json:"customerId"`
	CustomerEmail string             `json:"customerEmail"`
	Items         []CreateOrderItem  `json:"items"`
	Total         float64            `json:"total"`
}

// CreateOrderItem is one item line in a create-order request
type CreateOrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
