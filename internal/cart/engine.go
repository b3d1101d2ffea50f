package cart

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"golang-marketplace-backend/internal/notify"
	"golang-marketplace-backend/pkg/money"
)

// AddOutcome reports what AddItem did. The engine never returns errors;
// callers branch on the outcome and inspect state afterwards.
type AddOutcome int

const (
	// AddIgnored means the request was invalid (quantity <= 0) and the
	// cart was left untouched.
	AddIgnored AddOutcome = iota
	// AddAccepted means a new line item was created.
	AddAccepted
	// AddMerged means the quantity was folded into an existing line item.
	AddMerged
	// AddConflict means the product belongs to a different restaurant
	// than the active cart; nothing was applied.
	AddConflict
)

// Engine is the sole mutator of a session's cart state. It enforces the
// single-restaurant constraint, keeps every subtotal consistent with its
// quantity, persists after each mutation, and reports outcomes through
// the notification sink. No method returns an error: internal failures
// are logged and degrade to safe no-ops.
type Engine struct {
	state State
	store Store
	sink  notify.Sink
}

// NewEngine hydrates an engine from the store. A missing or corrupt
// persisted blob yields an empty cart.
func NewEngine(store Store, sink notify.Sink) *Engine {
	return &Engine{
		state: store.Load(),
		store: store,
		sink:  sink,
	}
}

// AddItem adds quantity units of the product to the cart. The first
// successful add of an empty cart establishes the active restaurant; a
// product from any other restaurant is refused with AddConflict and a
// conflict notification, leaving the cart untouched.
func (e *Engine) AddItem(p Product, quantity int) AddOutcome {
	if quantity <= 0 {
		logrus.WithFields(logrus.Fields{
			"product_id": p.ID,
			"quantity":   quantity,
		}).Warn("cart: ignoring add with non-positive quantity")
		return AddIgnored
	}

	if e.state.Restaurant != nil && !e.sameRestaurant(p) {
		attempted := p.RestaurantID
		if p.Restaurant != nil && p.Restaurant.Name != "" {
			attempted = p.Restaurant.Name
		}
		e.sink.RestaurantConflict(e.state.Restaurant.Name, attempted)
		return AddConflict
	}

	if e.state.Restaurant == nil {
		e.state.Restaurant = restaurantFor(p)
	}

	outcome := AddAccepted
	merged := false
	for i, item := range e.state.Items {
		if item.ProductID == p.ID {
			newQuantity := item.Quantity + quantity
			e.state.Items[i].Quantity = newQuantity
			e.state.Items[i].ProductName = p.Name
			e.state.Items[i].ProductPrice = p.Price
			e.state.Items[i].Subtotal = money.Multiply(p.Price, newQuantity)
			merged = true
			outcome = AddMerged
			break
		}
	}

	if !merged {
		e.state.Items = append(e.state.Items, LineItem{
			ID:           newItemID(),
			ProductID:    p.ID,
			ProductName:  p.Name,
			Quantity:     quantity,
			ProductPrice: p.Price,
			Subtotal:     money.Multiply(p.Price, quantity),
		})
	}

	e.commit()
	e.sink.ItemAdded(p.Name)
	return outcome
}

// RemoveItem deletes the line item with the given id. A second call
// with the same id is a logged no-op. Removing the last item resets the
// active restaurant.
func (e *Engine) RemoveItem(itemID string) {
	for i, item := range e.state.Items {
		if item.ID == itemID {
			e.state.Items = append(e.state.Items[:i], e.state.Items[i+1:]...)
			if len(e.state.Items) == 0 {
				e.state.Restaurant = nil
			}
			e.commit()
			e.sink.ItemRemoved(item.ProductName)
			return
		}
	}
	logrus.WithField("item_id", itemID).Warn("cart: remove for unknown item")
}

// UpdateItemQuantity sets a line item's quantity, recomputing its
// subtotal from the recovered unit price. A quantity of zero or below
// is removal, not a stored zero state.
func (e *Engine) UpdateItemQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		e.RemoveItem(itemID)
		return
	}

	for i, item := range e.state.Items {
		if item.ID == itemID {
			unitPrice := money.UnitPrice(item.Subtotal, item.Quantity)
			e.state.Items[i].Quantity = quantity
			e.state.Items[i].Subtotal = money.Times(unitPrice, quantity)
			e.commit()
			return
		}
	}
	logrus.WithField("item_id", itemID).Warn("cart: quantity update for unknown item")
}

// Clear empties the cart. Always succeeds.
func (e *Engine) Clear() {
	e.state = EmptyState()
	e.commit()
	e.sink.CartCleared()
}

// IsProductInCart reports whether a line item exists for the product.
func (e *Engine) IsProductInCart(productID string) bool {
	return e.GetItemQuantity(productID) > 0
}

// GetItemQuantity returns the quantity held for the product, 0 if absent.
func (e *Engine) GetItemQuantity(productID string) int {
	for _, item := range e.state.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// CanAddProduct reports whether adding the product would succeed: the
// cart is empty, or the product belongs to the active restaurant.
func (e *Engine) CanAddProduct(p Product) bool {
	return e.state.Restaurant == nil || e.sameRestaurant(p)
}

// TotalItems is the sum of all line item quantities.
func (e *Engine) TotalItems() int {
	total := 0
	for _, item := range e.state.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums all line subtotals into a two-fraction-digit string.
func (e *Engine) TotalPrice() string {
	subtotals := make([]string, 0, len(e.state.Items))
	for _, item := range e.state.Items {
		subtotals = append(subtotals, item.Subtotal)
	}
	return money.Sum(subtotals...)
}

// Items returns a copy of the current line items in insertion order.
func (e *Engine) Items() []LineItem {
	items := make([]LineItem, len(e.state.Items))
	copy(items, e.state.Items)
	return items
}

// Restaurant returns the active restaurant, nil for an empty cart.
func (e *Engine) Restaurant() *Restaurant {
	if e.state.Restaurant == nil {
		return nil
	}
	r := *e.state.Restaurant
	return &r
}

func (e *Engine) sameRestaurant(p Product) bool {
	if p.Restaurant != nil {
		return p.Restaurant.ID == e.state.Restaurant.ID
	}
	id, err := strconv.ParseInt(p.RestaurantID, 10, 64)
	if err != nil {
		logrus.WithField("restaurant_id", p.RestaurantID).Warn("cart: unparseable restaurant reference")
		return false
	}
	return id == e.state.Restaurant.ID
}

// restaurantFor resolves the restaurant reference to store on the first
// add. Without a full record a minimal placeholder is kept; the service
// layer backfills display fields on later reads.
func restaurantFor(p Product) *Restaurant {
	if p.Restaurant != nil {
		r := *p.Restaurant
		return &r
	}
	id, err := strconv.ParseInt(p.RestaurantID, 10, 64)
	if err != nil {
		logrus.WithField("restaurant_id", p.RestaurantID).Warn("cart: unparseable restaurant reference, storing zero id")
	}
	return &Restaurant{ID: id}
}

func (e *Engine) commit() {
	e.store.Save(e.state)
}

// newItemID mints a session-unique, time-based line item token.
func newItemID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(1000))
}
