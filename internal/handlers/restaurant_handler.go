package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"golang-marketplace-backend/internal/middleware"
	"golang-marketplace-backend/internal/services"
)

// ErrorResponse is the error body shared by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type RestaurantHandler struct {
	restaurantService *services.RestaurantService
}

func NewRestaurantHandler(restaurantService *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
	}
}

// RegisterRoutes registers storefront browsing and owner dashboard
// routes for restaurants
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	restaurants := router.Group("/restaurants")
	{
		restaurants.GET("", h.ListRestaurants)
		restaurants.GET("/:restaurant_id", h.GetRestaurant)
	}

	owner := router.Group("/restaurants", authMiddleware.AuthRequired(), authMiddleware.RoleRequired("restaurant_owner", "admin"))
	{
		owner.POST("", h.CreateRestaurant)
		owner.PUT("/:restaurant_id", h.UpdateRestaurant)
	}

	me := router.Group("/my/restaurants", authMiddleware.AuthRequired(), authMiddleware.RoleRequired("restaurant_owner", "admin"))
	{
		me.GET("", h.GetOwnerRestaurants)
	}
}

func restaurantIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid restaurant ID",
			Message: "Restaurant ID must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	query := c.Query("q")
	ctx := context.Background()

	var err error
	var restaurants interface{}
	if query != "" {
		restaurants, err = h.restaurantService.SearchRestaurants(ctx, query, limit, offset)
	} else {
		restaurants, err = h.restaurantService.ListRestaurants(ctx, limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list restaurants",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, ok := restaurantIDParam(c)
	if !ok {
		return
	}

	restaurant, err := h.restaurantService.GetRestaurant(context.Background(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Restaurant not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req services.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID := c.GetString("user_id")
	restaurant, err := h.restaurantService.CreateRestaurant(context.Background(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to create restaurant",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := restaurantIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID := c.GetString("user_id")
	restaurant, err := h.restaurantService.UpdateRestaurant(context.Background(), userID, id, &req)
	if err != nil {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "Failed to update restaurant",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) GetOwnerRestaurants(c *gin.Context) {
	userID := c.GetString("user_id")

	restaurants, err := h.restaurantService.GetOwnerRestaurants(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list restaurants",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}
