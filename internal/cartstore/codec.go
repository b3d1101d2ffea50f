package cartstore

import (
	"encoding/json"

	"golang-marketplace-backend/internal/cart"
)

// Encode serializes a cart state into the persisted blob layout:
// {"items": [...], "restaurant": {...}|null}.
func Encode(state cart.State) ([]byte, error) {
	if state.Items == nil {
		state.Items = []cart.LineItem{}
	}
	return json.Marshal(state)
}

// Decode validates and deserializes a persisted blob. The shape check
// is strict about key presence: a payload missing the "items" key or
// the "restaurant" key is invalid, while an explicit null restaurant is
// fine. Invalid input reports ok=false; callers collapse that to the
// empty state.
func Decode(raw []byte) (cart.State, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return cart.EmptyState(), false
	}

	itemsRaw, hasItems := probe["items"]
	restaurantRaw, hasRestaurant := probe["restaurant"]
	if !hasItems || !hasRestaurant {
		return cart.EmptyState(), false
	}

	var items []cart.LineItem
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return cart.EmptyState(), false
	}
	if items == nil {
		items = []cart.LineItem{}
	}

	var restaurant *cart.Restaurant
	if err := json.Unmarshal(restaurantRaw, &restaurant); err != nil {
		return cart.EmptyState(), false
	}

	// The restaurant/items pairing is an engine invariant. An orphan
	// restaurant is dropped; items without a restaurant cannot be
	// repaired and the whole blob is rejected.
	if len(items) == 0 {
		restaurant = nil
	} else if restaurant == nil {
		return cart.EmptyState(), false
	}

	return cart.State{Items: items, Restaurant: restaurant}, true
}
