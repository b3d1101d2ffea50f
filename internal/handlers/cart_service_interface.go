package handlers

import (
	"context"

	"golang-marketplace-backend/internal/services"
)

// CartServiceInterface defines the contract for cart service
type CartServiceInterface interface {
	GetCart(sessionID string) *services.CartResponse
	AddItem(ctx context.Context, sessionID string, req *services.AddToCartRequest) (*services.AddItemResult, error)
	UpdateItem(sessionID, itemID string, quantity int) *services.CartResponse
	RemoveItem(sessionID, itemID string) *services.CartResponse
	ClearCart(sessionID string) *services.CartResponse
	CheckProduct(ctx context.Context, sessionID, productID string) (*services.ProductStatusResponse, error)
}
