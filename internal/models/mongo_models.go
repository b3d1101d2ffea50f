package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product model - MongoDB (flexible catalog data). Price is a decimal
// string with two fraction digits; all arithmetic on it goes through
// pkg/money.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	CategoryID   primitive.ObjectID `bson:"category_id" json:"category_id"`
	CategoryName string             `bson:"category_name,omitempty" json:"category_name,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        string             `bson:"price" json:"price"`
	Quantity     int                `bson:"quantity" json:"quantity"` // stock on hand
	Available    bool               `bson:"available" json:"available"`
	ImageUrls    []string           `bson:"image_urls" json:"image_urls"`
	Tags         []string           `bson:"tags" json:"tags"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// ProductCategory model - MongoDB
type ProductCategory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	SortOrder    int                `bson:"sort_order" json:"sort_order"`
	ImgUrl       string             `bson:"img_url,omitempty" json:"img_url"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
