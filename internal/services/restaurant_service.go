package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"golang-marketplace-backend/internal/models"
	"golang-marketplace-backend/internal/repositories"
)

// RestaurantService serves restaurant browsing for the storefront and
// restaurant management for the owner dashboard.
type RestaurantService struct {
	restaurantRepo repositories.RestaurantRepository
}

func NewRestaurantService(restaurantRepo repositories.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurantRepo: restaurantRepo}
}

type CreateRestaurantRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Logo           string   `json:"logo"`
	CuisineTypes   []string `json:"cuisine_types"`
	DeliveryFee    string   `json:"delivery_fee"`
	MinOrderAmount string   `json:"min_order_amount"`
	ContactNumber  string   `json:"contact_number"`
}

type UpdateRestaurantRequest struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Logo           *string  `json:"logo,omitempty"`
	CuisineTypes   []string `json:"cuisine_types,omitempty"`
	DeliveryFee    *string  `json:"delivery_fee,omitempty"`
	MinOrderAmount *string  `json:"min_order_amount,omitempty"`
	ContactNumber  *string  `json:"contact_number,omitempty"`
	IsOpen         *bool    `json:"is_open,omitempty"`
}

func normalizeFee(value string) (string, error) {
	if value == "" {
		return "0.00", nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		return "", errors.New("monetary amounts must be non-negative decimals")
	}
	return d.StringFixed(2), nil
}

func (s *RestaurantService) CreateRestaurant(ctx context.Context, ownerID string, req *CreateRestaurantRequest) (*models.Restaurant, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, errors.New("invalid owner ID")
	}

	deliveryFee, err := normalizeFee(req.DeliveryFee)
	if err != nil {
		return nil, err
	}
	minOrderAmount, err := normalizeFee(req.MinOrderAmount)
	if err != nil {
		return nil, err
	}

	restaurant := &models.Restaurant{
		Name:           req.Name,
		Description:    req.Description,
		Logo:           req.Logo,
		CuisineTypes:   req.CuisineTypes,
		OwnerID:        ownerUUID,
		DeliveryFee:    deliveryFee,
		MinOrderAmount: minOrderAmount,
		ContactNumber:  req.ContactNumber,
		IsOpen:         true,
		Status:         "active",
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	return s.restaurantRepo.GetByID(ctx, id)
}

func (s *RestaurantService) ListRestaurants(ctx context.Context, limit, offset int) ([]models.Restaurant, error) {
	return s.restaurantRepo.List(ctx, limit, offset)
}

func (s *RestaurantService) SearchRestaurants(ctx context.Context, query string, limit, offset int) ([]models.Restaurant, error) {
	return s.restaurantRepo.Search(ctx, query, limit, offset)
}

func (s *RestaurantService) GetOwnerRestaurants(ctx context.Context, ownerID string) ([]models.Restaurant, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, errors.New("invalid owner ID")
	}
	return s.restaurantRepo.GetByOwnerID(ctx, ownerUUID)
}

// UpdateRestaurant applies the owner's changes after verifying
// ownership.
func (s *RestaurantService) UpdateRestaurant(ctx context.Context, ownerID string, id uint, req *UpdateRestaurantRequest) (*models.Restaurant, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, errors.New("invalid owner ID")
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}
	if restaurant.OwnerID != ownerUUID {
		return nil, errors.New("restaurant does not belong to this owner")
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}
	if req.Logo != nil {
		restaurant.Logo = *req.Logo
	}
	if req.CuisineTypes != nil {
		restaurant.CuisineTypes = req.CuisineTypes
	}
	if req.DeliveryFee != nil {
		fee, err := normalizeFee(*req.DeliveryFee)
		if err != nil {
			return nil, err
		}
		restaurant.DeliveryFee = fee
	}
	if req.MinOrderAmount != nil {
		min, err := normalizeFee(*req.MinOrderAmount)
		if err != nil {
			return nil, err
		}
		restaurant.MinOrderAmount = min
	}
	if req.ContactNumber != nil {
		restaurant.ContactNumber = *req.ContactNumber
	}
	if req.IsOpen != nil {
		restaurant.IsOpen = *req.IsOpen
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}
