package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"golang-marketplace-backend/internal/cart"
	"golang-marketplace-backend/internal/middleware"
	"golang-marketplace-backend/internal/services"
)

type CartHandler struct {
	cartService CartServiceInterface
}

func NewCartHandler(cartService CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the routes for cart management. Carts are
// keyed by the storefront session header, no login required.
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart", middleware.CartSession())
	{
		// Get the session's cart
		cartGroup.GET("", h.GetCart)
		// Add item to cart
		cartGroup.POST("/items", h.AddItem)
		// Update cart item quantity
		cartGroup.PUT("/items/:item_id", h.UpdateItem)
		// Remove item from cart
		cartGroup.DELETE("/items/:item_id", h.RemoveItem)
		// Clear cart
		cartGroup.DELETE("", h.ClearCart)
		// Cart membership / quantity / can-add for one product
		cartGroup.GET("/products/:product_id", h.CheckProduct)
	}
}

func sessionID(c *gin.Context) string {
	id, _ := c.Get("session_id")
	sid, _ := id.(string)
	return sid
}

// GetCart godoc
// @Summary Get the session's cart
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.GetCart(sessionID(c)))
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add or merge an item into the session's cart. A product
// from a different restaurant than the active cart is refused with 409
// and the details needed to prompt the user.
// @Tags cart
// @Accept json
// @Produce json
// @Param item body services.AddToCartRequest true "Cart item data"
// @Success 200 {object} services.AddItemResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} services.AddItemResult
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	result, err := h.cartService.AddItem(context.Background(), sessionID(c), &req)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, services.ErrInvalidProductID) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{
			Error:   "Failed to add item to cart",
			Message: err.Error(),
		})
		return
	}

	if result.Outcome == cart.AddConflict {
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateItem godoc
// @Summary Update cart item quantity
// @Description Set a line item's quantity; zero removes the item.
// @Tags cart
// @Accept json
// @Produce json
// @Param item body services.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} services.CartResponse
// @Failure 400 {object} ErrorResponse
// @Router /cart/items/{item_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	itemID := c.Param("item_id")
	c.JSON(http.StatusOK, h.cartService.UpdateItem(sessionID(c), itemID, req.Quantity))
}

// RemoveItem godoc
// @Summary Remove item from cart
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartResponse
// @Router /cart/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID := c.Param("item_id")
	c.JSON(http.StatusOK, h.cartService.RemoveItem(sessionID(c), itemID))
}

// ClearCart godoc
// @Summary Clear the session's cart
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.ClearCart(sessionID(c)))
}

// CheckProduct godoc
// @Summary Cart status for one product
// @Description Membership, held quantity, and whether an add would
// pass the single-restaurant constraint.
// @Tags cart
// @Produce json
// @Success 200 {object} services.ProductStatusResponse
// @Failure 404 {object} ErrorResponse
// @Router /cart/products/{product_id} [get]
func (h *CartHandler) CheckProduct(c *gin.Context) {
	productID := c.Param("product_id")

	status, err := h.cartService.CheckProduct(context.Background(), sessionID(c), productID)
	if err != nil {
		code := http.StatusNotFound
		if errors.Is(err, services.ErrInvalidProductID) {
			code = http.StatusBadRequest
		}
		c.JSON(code, ErrorResponse{
			Error:   "Failed to check product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, status)
}
