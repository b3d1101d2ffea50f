package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-marketplace-backend/internal/cart"
	"golang-marketplace-backend/internal/models"
	"golang-marketplace-backend/internal/notify"
	"golang-marketplace-backend/internal/repositories"
	"golang-marketplace-backend/pkg/messaging"
)

// ErrInvalidProductID marks a malformed product reference, as opposed
// to a well-formed one that matches nothing.
var ErrInvalidProductID = errors.New("invalid product ID")

// StoreFactory yields the persistence adapter for one storefront
// session's cart.
type StoreFactory interface {
	StoreFor(sessionID string) cart.Store
}

// CartService assembles a cart engine per storefront session: the
// session-keyed store, the notification sink, and the catalog read
// models the engine consumes. All cart semantics live in the engine;
// this layer only does lookups and mapping.
type CartService struct {
	stores         StoreFactory
	productRepo    repositories.ProductRepository
	restaurantRepo repositories.RestaurantRepository
	kafkaProducer  *messaging.KafkaProducer
	kafkaBrokers   []string
}

func NewCartService(
	stores StoreFactory,
	productRepo repositories.ProductRepository,
	restaurantRepo repositories.RestaurantRepository,
	kafkaProducer *messaging.KafkaProducer,
	kafkaBrokers []string,
) *CartService {
	return &CartService{
		stores:         stores,
		productRepo:    productRepo,
		restaurantRepo: restaurantRepo,
		kafkaProducer:  kafkaProducer,
		kafkaBrokers:   kafkaBrokers,
	}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

type CartItemResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	ProductPrice string `json:"product_price"`
	Subtotal     string `json:"subtotal"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	Restaurant *cart.Restaurant   `json:"restaurant"`
	TotalItems int                `json:"total_items"`
	TotalPrice string             `json:"total_price"`
}

// ConflictDetails describes a refused cross-restaurant add so the
// storefront can prompt the user to clear the cart and retry.
type ConflictDetails struct {
	CurrentRestaurant   *cart.Restaurant `json:"current_restaurant"`
	AttemptedRestaurant string           `json:"attempted_restaurant"`
}

type AddItemResult struct {
	Outcome  cart.AddOutcome  `json:"-"`
	Conflict *ConflictDetails `json:"conflict,omitempty"`
	Cart     *CartResponse    `json:"cart"`
}

type ProductStatusResponse struct {
	ProductID string `json:"product_id"`
	InCart    bool   `json:"in_cart"`
	Quantity  int    `json:"quantity"`
	CanAdd    bool   `json:"can_add"`
}

func (s *CartService) engine(sessionID string) *cart.Engine {
	return cart.NewEngine(s.stores.StoreFor(sessionID), s.sinkFor(sessionID))
}

func (s *CartService) sinkFor(sessionID string) notify.Sink {
	if s.kafkaProducer != nil {
		return notify.NewKafkaSink(s.kafkaProducer, s.kafkaBrokers, sessionID)
	}
	return notify.LogSink{}
}

func (s *CartService) GetCart(sessionID string) *CartResponse {
	return buildCartResponse(s.engine(sessionID))
}

// AddItem resolves the product read model, backfills the full
// restaurant record when it can, and delegates to the engine. An
// unknown or unavailable product is an error; a cross-restaurant add is
// not — it comes back as a conflict result with the cart untouched.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *AddToCartRequest) (*AddItemResult, error) {
	product, err := s.lookupProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	eng := s.engine(sessionID)
	outcome := eng.AddItem(*product, req.Quantity)

	result := &AddItemResult{
		Outcome: outcome,
		Cart:    buildCartResponse(eng),
	}
	if outcome == cart.AddConflict {
		attempted := product.RestaurantID
		if product.Restaurant != nil && product.Restaurant.Name != "" {
			attempted = product.Restaurant.Name
		}
		result.Conflict = &ConflictDetails{
			CurrentRestaurant:   eng.Restaurant(),
			AttemptedRestaurant: attempted,
		}
	}
	return result, nil
}

func (s *CartService) UpdateItem(sessionID, itemID string, quantity int) *CartResponse {
	eng := s.engine(sessionID)
	eng.UpdateItemQuantity(itemID, quantity)
	return buildCartResponse(eng)
}

func (s *CartService) RemoveItem(sessionID, itemID string) *CartResponse {
	eng := s.engine(sessionID)
	eng.RemoveItem(itemID)
	return buildCartResponse(eng)
}

func (s *CartService) ClearCart(sessionID string) *CartResponse {
	eng := s.engine(sessionID)
	eng.Clear()
	return buildCartResponse(eng)
}

// CheckProduct answers the storefront's membership queries for one
// product: whether it is in the cart, at what quantity, and whether an
// add would pass the single-restaurant constraint.
func (s *CartService) CheckProduct(ctx context.Context, sessionID, productID string) (*ProductStatusResponse, error) {
	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	eng := s.engine(sessionID)
	return &ProductStatusResponse{
		ProductID: productID,
		InCart:    eng.IsProductInCart(productID),
		Quantity:  eng.GetItemQuantity(productID),
		CanAdd:    eng.CanAddProduct(*product),
	}, nil
}

func (s *CartService) lookupProduct(ctx context.Context, productID string) (*cart.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	product, err := s.productRepo.GetByID(ctx, objectID)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if !product.Available {
		return nil, errors.New("product is not available")
	}

	return s.toCartProduct(ctx, product), nil
}

// toCartProduct maps the catalog document to the engine's read model,
// attaching the full restaurant record when the lookup succeeds. On
// failure the engine falls back to its minimal placeholder.
func (s *CartService) toCartProduct(ctx context.Context, product *models.Product) *cart.Product {
	cp := &cart.Product{
		ID:           product.ID.Hex(),
		Name:         product.Name,
		Price:        product.Price,
		RestaurantID: product.RestaurantID,
	}

	restaurantID, err := strconv.ParseUint(product.RestaurantID, 10, 64)
	if err != nil {
		logrus.WithField("restaurant_id", product.RestaurantID).Warn("cart: product carries non-numeric restaurant reference")
		return cp
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, uint(restaurantID))
	if err != nil {
		logrus.WithError(err).WithField("restaurant_id", restaurantID).Warn("cart: restaurant backfill failed, using placeholder")
		return cp
	}

	cp.Restaurant = &cart.Restaurant{
		ID:             int64(restaurant.ID),
		Name:           restaurant.Name,
		DeliveryFee:    restaurant.DeliveryFee,
		MinOrderAmount: restaurant.MinOrderAmount,
	}
	return cp
}

func buildCartResponse(eng *cart.Engine) *CartResponse {
	items := eng.Items()
	itemResponses := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, CartItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			ProductPrice: item.ProductPrice,
			Subtotal:     item.Subtotal,
		})
	}

	return &CartResponse{
		Items:      itemResponses,
		Restaurant: eng.Restaurant(),
		TotalItems: eng.TotalItems(),
		TotalPrice: eng.TotalPrice(),
	}
}
