package handlers

import (
	"context"

	"golang-marketplace-backend/internal/models"
	"golang-marketplace-backend/internal/services"
)

// ProductServiceInterface defines the contract for product service
type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, restaurantID string, req *services.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, restaurantID, productID string, req *services.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, restaurantID, productID string) error
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	GetMenu(ctx context.Context, restaurantID string) (*services.MenuResponse, error)
	SearchProducts(ctx context.Context, restaurantID, query string, limit, offset int) ([]models.Product, error)
	CreateCategory(ctx context.Context, restaurantID string, req *services.CreateCategoryRequest) (*models.ProductCategory, error)
	GetCategories(ctx context.Context, restaurantID string) ([]models.ProductCategory, error)
	DeleteCategory(ctx context.Context, restaurantID, categoryID string) error
}
