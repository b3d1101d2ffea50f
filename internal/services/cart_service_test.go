package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"golang-marketplace-backend/internal/cart"
	"golang-marketplace-backend/internal/cartstore"
	"golang-marketplace-backend/internal/models"
)

type stubProductRepo struct {
	products map[primitive.ObjectID]*models.Product
}

func (r *stubProductRepo) Create(ctx context.Context, product *models.Product) error {
	// The catalog database assigns document ids on insert.
	product.ID = primitive.NewObjectID()
	r.products[product.ID] = product
	return nil
}
func (r *stubProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return product, nil
}
func (r *stubProductRepo) Update(ctx context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}
func (r *stubProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.products, id)
	return nil
}
func (r *stubProductRepo) GetByRestaurantID(ctx context.Context, restaurantID string, limit, offset int) ([]models.Product, error) {
	var out []models.Product
	for _, product := range r.products {
		if product.RestaurantID == restaurantID && product.Available {
			out = append(out, *product)
		}
	}
	return out, nil
}
func (r *stubProductRepo) GetByCategoryID(ctx context.Context, categoryID primitive.ObjectID, limit, offset int) ([]models.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Search(ctx context.Context, query string, restaurantID string, limit, offset int) ([]models.Product, error) {
	return nil, nil
}

type stubRestaurantRepo struct {
	restaurants map[uint]*models.Restaurant
}

func (r *stubRestaurantRepo) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return nil
}
func (r *stubRestaurantRepo) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return restaurant, nil
}
func (r *stubRestaurantRepo) Update(ctx context.Context, restaurant *models.Restaurant) error {
	return nil
}
func (r *stubRestaurantRepo) Delete(ctx context.Context, id uint) error { return nil }
func (r *stubRestaurantRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Restaurant, error) {
	return nil, nil
}
func (r *stubRestaurantRepo) List(ctx context.Context, limit, offset int) ([]models.Restaurant, error) {
	return nil, nil
}
func (r *stubRestaurantRepo) Search(ctx context.Context, query string, limit, offset int) ([]models.Restaurant, error) {
	return nil, nil
}

type cartFixture struct {
	service    *CartService
	pastaID    primitive.ObjectID
	tiramisuID primitive.ObjectID
	burgerID   primitive.ObjectID
}

func newCartFixture() *cartFixture {
	pastaID := primitive.NewObjectID()
	tiramisuID := primitive.NewObjectID()
	burgerID := primitive.NewObjectID()

	productRepo := &stubProductRepo{products: map[primitive.ObjectID]*models.Product{
		pastaID: {
			ID:           pastaID,
			RestaurantID: "5",
			Name:         "Margherita",
			Price:        "10.00",
			Available:    true,
		},
		tiramisuID: {
			ID:           tiramisuID,
			RestaurantID: "5",
			Name:         "Tiramisu",
			Price:        "15.50",
			Available:    true,
		},
		burgerID: {
			ID:           burgerID,
			RestaurantID: "7",
			Name:         "Cheeseburger",
			Price:        "8.00",
			Available:    true,
		},
	}}

	restaurantRepo := &stubRestaurantRepo{restaurants: map[uint]*models.Restaurant{
		5: {ID: 5, Name: "Pasta Place", DeliveryFee: "2.50", MinOrderAmount: "5.00"},
		7: {ID: 7, Name: "Burger Barn", DeliveryFee: "1.00", MinOrderAmount: "0.00"},
	}}

	return &cartFixture{
		service:    NewCartService(cartstore.NewMemoryFactory(), productRepo, restaurantRepo, nil, nil),
		pastaID:    pastaID,
		tiramisuID: tiramisuID,
		burgerID:   burgerID,
	}
}

func TestCartServiceAddItem(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	result, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{
		ProductID: f.pastaID.Hex(),
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, cart.AddAccepted, result.Outcome)
	assert.Nil(t, result.Conflict)

	require.Len(t, result.Cart.Items, 1)
	assert.Equal(t, "Margherita", result.Cart.Items[0].ProductName)
	assert.Equal(t, "20.00", result.Cart.Items[0].Subtotal)
	assert.Equal(t, "20.00", result.Cart.TotalPrice)

	require.NotNil(t, result.Cart.Restaurant)
	assert.Equal(t, "Pasta Place", result.Cart.Restaurant.Name)
	assert.Equal(t, "2.50", result.Cart.Restaurant.DeliveryFee)
}

func TestCartServiceAddItemMergesAcrossRequests(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	_, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: f.pastaID.Hex(), Quantity: 2})
	require.NoError(t, err)

	result, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: f.pastaID.Hex(), Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, cart.AddMerged, result.Outcome)
	require.Len(t, result.Cart.Items, 1)
	assert.Equal(t, 5, result.Cart.Items[0].Quantity)
	assert.Equal(t, "50.00", result.Cart.Items[0].Subtotal)
}

func TestCartServiceAddItemConflict(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	_, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: f.pastaID.Hex(), Quantity: 1})
	require.NoError(t, err)

	result, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: f.burgerID.Hex(), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, cart.AddConflict, result.Outcome)

	require.NotNil(t, result.Conflict)
	assert.Equal(t, "Pasta Place", result.Conflict.CurrentRestaurant.Name)
	assert.Equal(t, "Burger Barn", result.Conflict.AttemptedRestaurant)

	// The returned cart still only holds the first restaurant's item.
	require.Len(t, result.Cart.Items, 1)
	assert.Equal(t, f.pastaID.Hex(), result.Cart.Items[0].ProductID)
}

func TestCartServiceAddItemValidation(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	_, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: "garbage", Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidProductID)

	_, err = f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: primitive.NewObjectID().Hex(), Quantity: 1})
	assert.EqualError(t, err, "product not found")
}

func TestCartServiceSessionsAreIsolated(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	_, err := f.service.AddItem(ctx, "session-a", &AddToCartRequest{ProductID: f.pastaID.Hex(), Quantity: 1})
	require.NoError(t, err)

	other := f.service.GetCart("session-b")
	assert.Empty(t, other.Items)
	assert.Nil(t, other.Restaurant)

	// session-b may open a cart with a different restaurant.
	result, err := f.service.AddItem(ctx, "session-b", &AddToCartRequest{ProductID: f.burgerID.Hex(), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, cart.AddAccepted, result.Outcome)
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	result, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: f.pastaID.Hex(), Quantity: 2})
	require.NoError(t, err)
	itemID := result.Cart.Items[0].ID

	updated := f.service.UpdateItem("session-1", itemID, 5)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "50.00", updated.Items[0].Subtotal)

	removed := f.service.RemoveItem("session-1", itemID)
	assert.Empty(t, removed.Items)
	assert.Nil(t, removed.Restaurant)
}

func TestCartServiceClearCart(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	_, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: f.pastaID.Hex(), Quantity: 2})
	require.NoError(t, err)

	cleared := f.service.ClearCart("session-1")
	assert.Empty(t, cleared.Items)
	assert.Equal(t, "0.00", cleared.TotalPrice)
}

func TestCartServiceCheckProduct(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	_, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: f.pastaID.Hex(), Quantity: 3})
	require.NoError(t, err)

	status, err := f.service.CheckProduct(ctx, "session-1", f.pastaID.Hex())
	require.NoError(t, err)
	assert.True(t, status.InCart)
	assert.Equal(t, 3, status.Quantity)
	assert.True(t, status.CanAdd)

	// Same restaurant, not yet in the cart.
	status, err = f.service.CheckProduct(ctx, "session-1", f.tiramisuID.Hex())
	require.NoError(t, err)
	assert.False(t, status.InCart)
	assert.Equal(t, 0, status.Quantity)
	assert.True(t, status.CanAdd)

	// Other restaurant: present check fails and so would the add.
	status, err = f.service.CheckProduct(ctx, "session-1", f.burgerID.Hex())
	require.NoError(t, err)
	assert.False(t, status.InCart)
	assert.False(t, status.CanAdd)
}

func TestCartServiceRejectsUnavailableProduct(t *testing.T) {
	f := newCartFixture()
	ctx := context.Background()

	hiddenID := primitive.NewObjectID()
	f.service.productRepo.(*stubProductRepo).products[hiddenID] = &models.Product{
		ID:           hiddenID,
		RestaurantID: "5",
		Name:         "Old Special",
		Price:        "9.00",
		Available:    false,
	}

	_, err := f.service.AddItem(ctx, "session-1", &AddToCartRequest{ProductID: hiddenID.Hex(), Quantity: 1})
	assert.EqualError(t, err, "product is not available")
}
