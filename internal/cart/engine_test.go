package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-marketplace-backend/internal/cart"
	"golang-marketplace-backend/internal/cartstore"
)

// recordingSink captures notifications so tests can assert on what the
// engine reported without a broker.
type recordingSink struct {
	added     []string
	removed   []string
	cleared   int
	conflicts [][2]string
}

func (s *recordingSink) ItemAdded(productName string)   { s.added = append(s.added, productName) }
func (s *recordingSink) ItemRemoved(productName string) { s.removed = append(s.removed, productName) }
func (s *recordingSink) CartCleared()                   { s.cleared++ }
func (s *recordingSink) RestaurantConflict(current, attempted string) {
	s.conflicts = append(s.conflicts, [2]string{current, attempted})
}

func newTestEngine() (*cart.Engine, *cartstore.MemoryStore, *recordingSink) {
	store := cartstore.NewMemoryStore()
	sink := &recordingSink{}
	return cart.NewEngine(store, sink), store, sink
}

func pastaProduct() cart.Product {
	return cart.Product{
		ID:           "prod-1",
		Name:         "Margherita",
		Price:        "10.00",
		RestaurantID: "5",
		Restaurant: &cart.Restaurant{
			ID:             5,
			Name:           "Pasta Place",
			DeliveryFee:    "2.50",
			MinOrderAmount: "0.00",
		},
	}
}

func burgerProduct() cart.Product {
	return cart.Product{
		ID:           "prod-9",
		Name:         "Cheeseburger",
		Price:        "8.00",
		RestaurantID: "7",
		Restaurant: &cart.Restaurant{
			ID:   7,
			Name: "Burger Barn",
		},
	}
}

func TestAddItemEstablishesRestaurant(t *testing.T) {
	engine, _, sink := newTestEngine()

	outcome := engine.AddItem(pastaProduct(), 2)
	require.Equal(t, cart.AddAccepted, outcome)

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "prod-1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "20.00", items[0].Subtotal)
	assert.NotEmpty(t, items[0].ID)

	restaurant := engine.Restaurant()
	require.NotNil(t, restaurant)
	assert.Equal(t, int64(5), restaurant.ID)
	assert.Equal(t, "Pasta Place", restaurant.Name)

	assert.Equal(t, []string{"Margherita"}, sink.added)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	engine, _, _ := newTestEngine()

	require.Equal(t, cart.AddAccepted, engine.AddItem(pastaProduct(), 2))
	require.Equal(t, cart.AddMerged, engine.AddItem(pastaProduct(), 3))

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "50.00", items[0].Subtotal)
	assert.Equal(t, 5, engine.TotalItems())
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	engine, _, sink := newTestEngine()

	assert.Equal(t, cart.AddIgnored, engine.AddItem(pastaProduct(), 0))
	assert.Equal(t, cart.AddIgnored, engine.AddItem(pastaProduct(), -3))

	assert.Empty(t, engine.Items())
	assert.Nil(t, engine.Restaurant())
	assert.Empty(t, sink.added)
}

func TestAddItemRefusesOtherRestaurant(t *testing.T) {
	engine, _, sink := newTestEngine()
	require.Equal(t, cart.AddAccepted, engine.AddItem(pastaProduct(), 1))

	outcome := engine.AddItem(burgerProduct(), 1)
	assert.Equal(t, cart.AddConflict, outcome)

	// The refused add must leave the cart exactly as it was.
	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "prod-1", items[0].ProductID)
	assert.Equal(t, int64(5), engine.Restaurant().ID)

	require.Len(t, sink.conflicts, 1)
	assert.Equal(t, "Pasta Place", sink.conflicts[0][0])
	assert.Equal(t, "Burger Barn", sink.conflicts[0][1])
	assert.Equal(t, []string{"Margherita"}, sink.added)
}

func TestAddItemWithBareRestaurantReference(t *testing.T) {
	engine, _, _ := newTestEngine()

	p := pastaProduct()
	p.Restaurant = nil

	require.Equal(t, cart.AddAccepted, engine.AddItem(p, 1))
	restaurant := engine.Restaurant()
	require.NotNil(t, restaurant)
	assert.Equal(t, int64(5), restaurant.ID)

	// Same restaurant id still merges even without the full record.
	assert.Equal(t, cart.AddMerged, engine.AddItem(p, 1))
	assert.True(t, engine.CanAddProduct(p))
	assert.False(t, engine.CanAddProduct(burgerProduct()))
}

func TestRemoveItemResetsRestaurant(t *testing.T) {
	engine, _, sink := newTestEngine()
	engine.AddItem(pastaProduct(), 2)

	itemID := engine.Items()[0].ID
	engine.RemoveItem(itemID)

	assert.Empty(t, engine.Items())
	assert.Nil(t, engine.Restaurant())
	assert.Equal(t, []string{"Margherita"}, sink.removed)

	// Removing an id twice is a no-op, not a failure.
	engine.RemoveItem(itemID)
	assert.Empty(t, engine.Items())
	assert.Len(t, sink.removed, 1)
}

func TestRemoveItemKeepsRestaurantWhileItemsRemain(t *testing.T) {
	engine, _, _ := newTestEngine()
	engine.AddItem(pastaProduct(), 1)

	second := pastaProduct()
	second.ID = "prod-2"
	second.Name = "Carbonara"
	second.Price = "12.00"
	engine.AddItem(second, 1)

	engine.RemoveItem(engine.Items()[0].ID)

	require.Len(t, engine.Items(), 1)
	require.NotNil(t, engine.Restaurant())
	assert.Equal(t, int64(5), engine.Restaurant().ID)
}

func TestUpdateItemQuantityRecomputesSubtotal(t *testing.T) {
	engine, _, _ := newTestEngine()
	engine.AddItem(pastaProduct(), 2)

	engine.UpdateItemQuantity(engine.Items()[0].ID, 5)

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "50.00", items[0].Subtotal)
}

func TestUpdateItemQuantityZeroRemoves(t *testing.T) {
	engine, _, sink := newTestEngine()
	engine.AddItem(pastaProduct(), 2)

	engine.UpdateItemQuantity(engine.Items()[0].ID, 0)

	assert.Empty(t, engine.Items())
	assert.Nil(t, engine.Restaurant())
	assert.Equal(t, []string{"Margherita"}, sink.removed)
}

func TestUpdateItemQuantityUnknownIDIsNoOp(t *testing.T) {
	engine, _, _ := newTestEngine()
	engine.AddItem(pastaProduct(), 2)

	engine.UpdateItemQuantity("no-such-item", 4)

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestClearEmptiesCart(t *testing.T) {
	engine, _, sink := newTestEngine()
	engine.AddItem(pastaProduct(), 2)

	engine.Clear()

	assert.Empty(t, engine.Items())
	assert.Nil(t, engine.Restaurant())
	assert.Equal(t, 1, sink.cleared)

	// A fresh cart accepts any restaurant again.
	assert.Equal(t, cart.AddAccepted, engine.AddItem(burgerProduct(), 1))
}

func TestTotalPriceSumsSubtotals(t *testing.T) {
	engine, _, _ := newTestEngine()

	first := pastaProduct()
	first.Price = "10.00"
	engine.AddItem(first, 1)

	second := pastaProduct()
	second.ID = "prod-2"
	second.Name = "Tiramisu"
	second.Price = "15.50"
	engine.AddItem(second, 1)

	assert.Equal(t, "25.50", engine.TotalPrice())
	assert.Equal(t, 2, engine.TotalItems())
}

func TestTotalPriceEmptyCart(t *testing.T) {
	engine, _, _ := newTestEngine()
	assert.Equal(t, "0.00", engine.TotalPrice())
	assert.Equal(t, 0, engine.TotalItems())
}

func TestProductQueries(t *testing.T) {
	engine, _, _ := newTestEngine()
	engine.AddItem(pastaProduct(), 3)

	assert.True(t, engine.IsProductInCart("prod-1"))
	assert.False(t, engine.IsProductInCart("prod-9"))
	assert.Equal(t, 3, engine.GetItemQuantity("prod-1"))
	assert.Equal(t, 0, engine.GetItemQuantity("prod-9"))
	assert.True(t, engine.CanAddProduct(pastaProduct()))
	assert.False(t, engine.CanAddProduct(burgerProduct()))
}

func TestEngineHydratesFromStore(t *testing.T) {
	store := cartstore.NewMemoryStore()
	first := cart.NewEngine(store, &recordingSink{})
	first.AddItem(pastaProduct(), 2)

	second := cart.NewEngine(store, &recordingSink{})
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "20.00", items[0].Subtotal)
	require.NotNil(t, second.Restaurant())
	assert.Equal(t, int64(5), second.Restaurant().ID)
}

func TestEngineDiscardsBlobWithItemsButNoRestaurant(t *testing.T) {
	store := cartstore.NewMemoryStore()
	store.SeedRaw([]byte(`{"items":[{"id":"a","productId":"prod-1","productName":"Margherita","quantity":1,"productPrice":"10.00","subtotal":"10.00"}],"restaurant":null}`))

	engine := cart.NewEngine(store, &recordingSink{})
	assert.Empty(t, engine.Items())
	assert.Nil(t, engine.Restaurant())

	// The tampered blob must not open a window for a mixed cart: the
	// next add establishes its own restaurant cleanly.
	require.Equal(t, cart.AddAccepted, engine.AddItem(burgerProduct(), 1))
	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "prod-9", items[0].ProductID)
	require.NotNil(t, engine.Restaurant())
	assert.Equal(t, int64(7), engine.Restaurant().ID)
	assert.False(t, engine.CanAddProduct(pastaProduct()))
}

func TestUpdateItemQuantityKeepsSubCentUnitPrice(t *testing.T) {
	store := cartstore.NewMemoryStore()
	store.SeedRaw([]byte(`{"items":[{"id":"a","productId":"prod-1","productName":"Sample","quantity":2,"productPrice":"0.125","subtotal":"0.25"}],"restaurant":{"id":5}}`))

	engine := cart.NewEngine(store, &recordingSink{})
	engine.UpdateItemQuantity("a", 4)

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "0.50", items[0].Subtotal)
}

func TestEngineRecoversFromCorruptBlob(t *testing.T) {
	store := cartstore.NewMemoryStore()
	store.SeedRaw([]byte("{not json"))

	engine := cart.NewEngine(store, &recordingSink{})
	assert.Empty(t, engine.Items())
	assert.Nil(t, engine.Restaurant())

	// The engine must stay usable after discarding the bad blob.
	assert.Equal(t, cart.AddAccepted, engine.AddItem(pastaProduct(), 1))
}
