package repositories

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-marketplace-backend/internal/models"
)

// UserRepository interface for PostgreSQL user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RestaurantRepository interface for PostgreSQL restaurant operations
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id uint) error
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Restaurant, error)
	List(ctx context.Context, limit, offset int) ([]models.Restaurant, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.Restaurant, error)
}

// OrderRepository interface for PostgreSQL order operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, error)
	GetByRestaurantID(ctx context.Context, restaurantID uint, limit, offset int) ([]models.Order, error)
}

// ProductRepository interface for MongoDB product operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByRestaurantID(ctx context.Context, restaurantID string, limit, offset int) ([]models.Product, error)
	GetByCategoryID(ctx context.Context, categoryID primitive.ObjectID, limit, offset int) ([]models.Product, error)
	Search(ctx context.Context, query string, restaurantID string, limit, offset int) ([]models.Product, error)
}

// ProductCategoryRepository interface for MongoDB category operations
type ProductCategoryRepository interface {
	Create(ctx context.Context, category *models.ProductCategory) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProductCategory, error)
	Update(ctx context.Context, category *models.ProductCategory) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.ProductCategory, error)
}
