package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"golang-marketplace-backend/internal/middleware"
	"golang-marketplace-backend/internal/services"
)

type OrderHandler struct {
	orderService      *services.OrderService
	restaurantService *services.RestaurantService
}

func NewOrderHandler(orderService *services.OrderService, restaurantService *services.RestaurantService) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		restaurantService: restaurantService,
	}
}

// RegisterRoutes registers checkout and order management routes
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	orders := router.Group("/orders", authMiddleware.AuthRequired())
	{
		// Checkout converts the session cart into an order
		orders.POST("/checkout", middleware.CartSession(), h.Checkout)
		orders.GET("", h.GetUserOrders)
		orders.GET("/:order_id", h.GetOrder)
	}

	owner := router.Group("/restaurants/:restaurant_id/orders", authMiddleware.AuthRequired(), authMiddleware.RoleRequired("restaurant_owner", "admin"))
	{
		owner.GET("", h.GetRestaurantOrders)
	}

	status := router.Group("/orders/:order_id/status", authMiddleware.AuthRequired(), authMiddleware.RoleRequired("restaurant_owner", "admin"))
	{
		status.PUT("", h.UpdateOrderStatus)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Checkout godoc
// @Summary Checkout the session cart
// @Description Maps the cart's priced item list to an order and clears
// the cart on success.
// @Tags orders
// @Accept json
// @Produce json
// @Success 201 {object} services.CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID := c.GetString("user_id")
	sid := sessionID(c)

	response, err := h.orderService.Checkout(context.Background(), sid, userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Checkout failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(context.Background(), c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Order not found",
			Message: err.Error(),
		})
		return
	}

	// Customers may only read their own orders
	if c.GetString("role") == "customer" && order.UserID.String() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "Forbidden",
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.orderService.GetUserOrders(context.Background(), c.GetString("user_id"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetRestaurantOrders(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid restaurant ID",
			Message: "Restaurant ID must be a positive integer",
		})
		return
	}

	ctx := context.Background()
	if c.GetString("role") != "admin" {
		restaurant, err := h.restaurantService.GetRestaurant(ctx, uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Restaurant not found",
				Message: err.Error(),
			})
			return
		}
		if restaurant.OwnerID.String() != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "Forbidden",
			})
			return
		}
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.orderService.GetRestaurantOrders(ctx, uint(id), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx := context.Background()
	if c.GetString("role") != "admin" {
		existing, err := h.orderService.GetOrder(ctx, c.Param("order_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Order not found",
				Message: err.Error(),
			})
			return
		}
		restaurant, err := h.restaurantService.GetRestaurant(ctx, existing.RestaurantID)
		if err != nil || restaurant.OwnerID.String() != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "Forbidden",
			})
			return
		}
	}

	order, err := h.orderService.UpdateOrderStatus(ctx, c.Param("order_id"), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update order status",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, order)
}
