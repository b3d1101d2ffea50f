package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-marketplace-backend/internal/models"
	"golang-marketplace-backend/internal/repositories"
	"golang-marketplace-backend/pkg/cache"
	"golang-marketplace-backend/pkg/messaging"
)

// ProductService serves the storefront menu and the owner dashboard's
// product and category management.
type ProductService struct {
	productRepo   repositories.ProductRepository
	categoryRepo  repositories.ProductCategoryRepository
	cache         *cache.RedisCache
	kafkaProducer *messaging.KafkaProducer
	kafkaBrokers  []string
}

func NewProductService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.ProductCategoryRepository,
	cache *cache.RedisCache,
	kafkaProducer *messaging.KafkaProducer,
	kafkaBrokers []string,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
		kafkaBrokers:  kafkaBrokers,
	}
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id" binding:"required"`
	Price       string   `json:"price" binding:"required"`
	Quantity    int      `json:"quantity"`
	ImageUrls   []string `json:"image_urls"`
	Tags        []string `json:"tags"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *string  `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Available   *bool    `json:"available,omitempty"`
	ImageUrls   []string `json:"image_urls,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	ImgUrl      string `json:"img_url"`
}

type MenuResponse struct {
	RestaurantID string                   `json:"restaurant_id"`
	Categories   []models.ProductCategory `json:"categories"`
	Products     []models.Product         `json:"products"`
}

// normalizePrice validates a monetary input and pins it to two
// fraction digits.
func normalizePrice(price string) (string, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return "", errors.New("price must be a decimal number")
	}
	if d.IsNegative() {
		return "", errors.New("price must not be negative")
	}
	return d.StringFixed(2), nil
}

func (s *ProductService) CreateProduct(ctx context.Context, restaurantID string, req *CreateProductRequest) (*models.Product, error) {
	categoryObjectID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, errors.New("invalid category ID")
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryObjectID)
	if err != nil {
		return nil, errors.New("category not found")
	}
	if category.RestaurantID != restaurantID {
		return nil, errors.New("category does not belong to this restaurant")
	}

	price, err := normalizePrice(req.Price)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		RestaurantID: restaurantID,
		CategoryID:   categoryObjectID,
		CategoryName: category.Name,
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		Quantity:     req.Quantity,
		Available:    true,
		ImageUrls:    req.ImageUrls,
		Tags:         req.Tags,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publishCatalogEvent("product_created", product.ID.Hex(), restaurantID)
	s.clearMenuCache(restaurantID)

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, restaurantID, productID string, req *UpdateProductRequest) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.New("invalid product ID")
	}

	product, err := s.productRepo.GetByID(ctx, objectID)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if product.RestaurantID != restaurantID {
		return nil, errors.New("product does not belong to this restaurant")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		price, err := normalizePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Available != nil {
		product.Available = *req.Available
	}
	if req.ImageUrls != nil {
		product.ImageUrls = req.ImageUrls
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publishCatalogEvent("product_updated", product.ID.Hex(), restaurantID)
	s.clearMenuCache(restaurantID)

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, restaurantID, productID string) error {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return errors.New("invalid product ID")
	}

	product, err := s.productRepo.GetByID(ctx, objectID)
	if err != nil {
		return errors.New("product not found")
	}
	if product.RestaurantID != restaurantID {
		return errors.New("product does not belong to this restaurant")
	}

	if err := s.productRepo.Delete(ctx, objectID); err != nil {
		return err
	}

	s.publishCatalogEvent("product_deleted", productID, restaurantID)
	s.clearMenuCache(restaurantID)

	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.New("invalid product ID")
	}
	return s.productRepo.GetByID(ctx, objectID)
}

// GetMenu returns the restaurant's categories and available products,
// cached for a short window since it backs every storefront page view.
func (s *ProductService) GetMenu(ctx context.Context, restaurantID string) (*MenuResponse, error) {
	cacheKey := menuCacheKey(restaurantID)
	if s.cache != nil {
		var cached MenuResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	categories, err := s.categoryRepo.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.GetByRestaurantID(ctx, restaurantID, 500, 0)
	if err != nil {
		return nil, err
	}

	menu := &MenuResponse{
		RestaurantID: restaurantID,
		Categories:   categories,
		Products:     products,
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, menu, time.Minute*5)
	}

	return menu, nil
}

func (s *ProductService) SearchProducts(ctx context.Context, restaurantID, query string, limit, offset int) ([]models.Product, error) {
	return s.productRepo.Search(ctx, query, restaurantID, limit, offset)
}

func (s *ProductService) CreateCategory(ctx context.Context, restaurantID string, req *CreateCategoryRequest) (*models.ProductCategory, error) {
	category := &models.ProductCategory{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
		ImgUrl:       req.ImgUrl,
		IsActive:     true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.clearMenuCache(restaurantID)
	return category, nil
}

func (s *ProductService) GetCategories(ctx context.Context, restaurantID string) ([]models.ProductCategory, error) {
	return s.categoryRepo.GetByRestaurantID(ctx, restaurantID)
}

func (s *ProductService) DeleteCategory(ctx context.Context, restaurantID, categoryID string) error {
	objectID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return errors.New("invalid category ID")
	}

	category, err := s.categoryRepo.GetByID(ctx, objectID)
	if err != nil {
		return errors.New("category not found")
	}
	if category.RestaurantID != restaurantID {
		return errors.New("category does not belong to this restaurant")
	}

	if err := s.categoryRepo.Delete(ctx, objectID); err != nil {
		return err
	}

	s.clearMenuCache(restaurantID)
	return nil
}

func (s *ProductService) publishCatalogEvent(eventType, entityID, restaurantID string) {
	if s.kafkaProducer == nil {
		return
	}
	event := messaging.CatalogEvent{
		Type:         eventType,
		EntityID:     entityID,
		RestaurantID: restaurantID,
	}
	s.kafkaProducer.SendMessage("catalog_events", s.kafkaBrokers, entityID, event)
}

func (s *ProductService) clearMenuCache(restaurantID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(context.Background(), menuCacheKey(restaurantID))
}

func menuCacheKey(restaurantID string) string {
	return fmt.Sprintf("menu:%s", restaurantID)
}
