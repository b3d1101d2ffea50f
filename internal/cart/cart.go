package cart

// LineItem is one product entry in a cart. Subtotal is kept as a
// two-fraction-digit decimal string and is always consistent with
// Quantity and the unit price used at last write.
type LineItem struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Quantity     int    `json:"quantity"`
	ProductPrice string `json:"productPrice"`
	Subtotal     string `json:"subtotal"`
}

// Restaurant is the display record for the single restaurant all items
// of a non-empty cart belong to.
type Restaurant struct {
	ID             int64  `json:"id"`
	Name           string `json:"name,omitempty"`
	DeliveryFee    string `json:"deliveryFee,omitempty"`
	MinOrderAmount string `json:"minOrderAmount,omitempty"`
}

// Product is the read model the engine consumes when adding items. It
// is mapped from the catalog document by the service layer. Restaurant
// may be nil, in which case a placeholder is built from RestaurantID.
type Product struct {
	ID           string
	Name         string
	Price        string
	RestaurantID string
	Restaurant   *Restaurant
}

// State is the full persisted cart: the ordered line items plus the
// active restaurant. Restaurant is nil exactly when Items is empty.
type State struct {
	Items      []LineItem  `json:"items"`
	Restaurant *Restaurant `json:"restaurant"`
}

// EmptyState returns the default state used when nothing valid is
// persisted.
func EmptyState() State {
	return State{Items: []LineItem{}, Restaurant: nil}
}

// Store persists cart state between sessions. Load must never fail
// outward: any read or decode problem degrades to EmptyState. Save
// failures are logged by the implementation and do not propagate.
type Store interface {
	Load() State
	Save(state State)
}
