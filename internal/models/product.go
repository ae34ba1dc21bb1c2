package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog product
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Tags        []string           `bson:"tags" json:"tags"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	Stock       int                `bson:"stock" json:"stock"`
	Rating      float64            `bson:"rating" json:"rating"`
	ReviewCount int                `bson:"reviewCount" json:"reviewCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProductQuery holds list filters parsed from the request
type ProductQuery struct {
	Search   string
	Category string
	Tag      string
	Sort     string // createdAt, price, name, rating
	Order    string // asc or desc
	Page     int
	Limit    int
}

// Pagination describes one page of a paginated listing
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}
