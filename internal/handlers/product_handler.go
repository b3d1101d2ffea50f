package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"golang-marketplace-backend/internal/middleware"
	"golang-marketplace-backend/internal/services"
)

type ProductHandler struct {
	productService    ProductServiceInterface
	restaurantService *services.RestaurantService
}

func NewProductHandler(productService ProductServiceInterface, restaurantService *services.RestaurantService) *ProductHandler {
	return &ProductHandler{
		productService:    productService,
		restaurantService: restaurantService,
	}
}

// RegisterRoutes registers storefront menu browsing and the owner
// dashboard's product and category management
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	// Public storefront routes
	router.GET("/restaurants/:restaurant_id/menu", h.GetMenu)
	router.GET("/restaurants/:restaurant_id/products", h.SearchProducts)
	router.GET("/products/:product_id", h.GetProduct)

	// Owner dashboard routes
	owner := router.Group("/restaurants/:restaurant_id", authMiddleware.AuthRequired(), authMiddleware.RoleRequired("restaurant_owner", "admin"))
	{
		owner.POST("/products", h.CreateProduct)
		owner.PUT("/products/:product_id", h.UpdateProduct)
		owner.DELETE("/products/:product_id", h.DeleteProduct)
		owner.POST("/categories", h.CreateCategory)
		owner.GET("/categories", h.GetCategories)
		owner.DELETE("/categories/:category_id", h.DeleteCategory)
	}
}

// ownedRestaurantID resolves the path restaurant and verifies it
// belongs to the authenticated owner. Admins bypass the check.
func (h *ProductHandler) ownedRestaurantID(c *gin.Context) (string, bool) {
	restaurantID := c.Param("restaurant_id")
	id, err := strconv.ParseUint(restaurantID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid restaurant ID",
			Message: "Restaurant ID must be a positive integer",
		})
		return "", false
	}

	if c.GetString("role") == "admin" {
		return restaurantID, true
	}

	restaurant, err := h.restaurantService.GetRestaurant(context.Background(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Restaurant not found",
			Message: err.Error(),
		})
		return "", false
	}

	if restaurant.OwnerID.String() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "Forbidden",
			Message: "Restaurant does not belong to this owner",
		})
		return "", false
	}

	return restaurantID, true
}

func (h *ProductHandler) GetMenu(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	menu, err := h.productService.GetMenu(context.Background(), restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to load menu",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, menu)
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := h.productService.SearchProducts(context.Background(), restaurantID, query, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to search products",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("product_id")

	product, err := h.productService.GetProduct(context.Background(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Product not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	restaurantID, ok := h.ownedRestaurantID(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	product, err := h.productService.CreateProduct(context.Background(), restaurantID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to create product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	restaurantID, ok := h.ownedRestaurantID(c)
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	product, err := h.productService.UpdateProduct(context.Background(), restaurantID, c.Param("product_id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	restaurantID, ok := h.ownedRestaurantID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(context.Background(), restaurantID, c.Param("product_id")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to delete product",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	restaurantID, ok := h.ownedRestaurantID(c)
	if !ok {
		return
	}

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	category, err := h.productService.CreateCategory(context.Background(), restaurantID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to create category",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *ProductHandler) GetCategories(c *gin.Context) {
	restaurantID, ok := h.ownedRestaurantID(c)
	if !ok {
		return
	}

	categories, err := h.productService.GetCategories(context.Background(), restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list categories",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	restaurantID, ok := h.ownedRestaurantID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteCategory(context.Background(), restaurantID, c.Param("category_id")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to delete category",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
