package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"golang-marketplace-backend/internal/models"
	"golang-marketplace-backend/internal/repositories"
	"golang-marketplace-backend/pkg/messaging"
	"golang-marketplace-backend/pkg/money"
)

var orderStatuses = map[string]bool{
	"pending":    true,
	"confirmed":  true,
	"preparing":  true,
	"dispatched": true,
	"delivered":  true,
	"cancelled":  true,
}

// OrderService owns the checkout boundary: it maps a session's cart to
// an order-detail payload with a computed total, persists it, and
// clears the cart. It also serves the owner dashboard's order views.
type OrderService struct {
	orderRepo     repositories.OrderRepository
	carts         *CartService
	kafkaProducer *messaging.KafkaProducer
	kafkaBrokers  []string
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	carts *CartService,
	kafkaProducer *messaging.KafkaProducer,
	kafkaBrokers []string,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		carts:         carts,
		kafkaProducer: kafkaProducer,
		kafkaBrokers:  kafkaBrokers,
	}
}

type CheckoutRequest struct {
	Notes string `json:"notes"`
}

type CheckoutResponse struct {
	OrderID     string             `json:"order_id"`
	Items       []models.OrderItem `json:"items"`
	TotalAmount string             `json:"total_amount"`
	Status      string             `json:"status"`
}

// Checkout turns the session cart into a pending order. The item list
// and subtotals come from the engine as-is; the total adds the
// restaurant's delivery fee on top of the cart total.
func (s *OrderService) Checkout(ctx context.Context, sessionID, userID string, req *CheckoutRequest) (*CheckoutResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("invalid user ID")
	}

	eng := s.carts.engine(sessionID)
	items := eng.Items()
	if len(items) == 0 {
		return nil, errors.New("cart is empty")
	}

	restaurant := eng.Restaurant()
	if restaurant == nil || restaurant.ID <= 0 {
		return nil, errors.New("cart has no restaurant")
	}

	cartTotal := eng.TotalPrice()
	if err := checkMinimumOrder(cartTotal, restaurant.MinOrderAmount); err != nil {
		return nil, err
	}

	orderItems := make(models.OrderItems, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		})
	}

	total := cartTotal
	if restaurant.DeliveryFee != "" {
		total = money.Sum(cartTotal, restaurant.DeliveryFee)
	}

	order := &models.Order{
		UserID:       userUUID,
		RestaurantID: uint(restaurant.ID),
		Items:        orderItems,
		TotalAmount:  total,
		Status:       "pending",
		Notes:        req.Notes,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.kafkaProducer != nil {
		event := messaging.OrderEvent{
			Type:         "order_created",
			OrderID:      order.ID.String(),
			UserID:       userID,
			RestaurantID: restaurant.ID,
			Total:        total,
			Data:         orderItems,
		}
		s.kafkaProducer.SendMessage("order_events", s.kafkaBrokers, order.ID.String(), event)
	}

	eng.Clear()

	return &CheckoutResponse{
		OrderID:     order.ID.String(),
		Items:       orderItems,
		TotalAmount: total,
		Status:      order.Status,
	}, nil
}

func checkMinimumOrder(cartTotal, minOrderAmount string) error {
	if minOrderAmount == "" {
		return nil
	}
	min, err := decimal.NewFromString(minOrderAmount)
	if err != nil || min.IsZero() {
		return nil
	}
	total, err := decimal.NewFromString(cartTotal)
	if err != nil {
		return nil
	}
	if total.LessThan(min) {
		return errors.New("order total is below the restaurant minimum")
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, errors.New("invalid order ID")
	}
	return s.orderRepo.GetByID(ctx, id)
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID string, limit, offset int) ([]models.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("invalid user ID")
	}
	return s.orderRepo.GetByUserID(ctx, userUUID, limit, offset)
}

func (s *OrderService) GetRestaurantOrders(ctx context.Context, restaurantID uint, limit, offset int) ([]models.Order, error) {
	return s.orderRepo.GetByRestaurantID(ctx, restaurantID, limit, offset)
}

// UpdateOrderStatus moves an order through the fulfilment flow from
// the owner dashboard.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !orderStatuses[status] {
		return nil, errors.New("invalid order status")
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, errors.New("invalid order ID")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}

	order.Status = status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.kafkaProducer != nil {
		event := messaging.OrderEvent{
			Type:         "order_status_changed",
			OrderID:      order.ID.String(),
			UserID:       order.UserID.String(),
			RestaurantID: int64(order.RestaurantID),
			Total:        order.TotalAmount,
			Data:         map[string]string{"status": status},
		}
		s.kafkaProducer.SendMessage("order_events", s.kafkaBrokers, order.ID.String(), event)
	}

	return order, nil
}
