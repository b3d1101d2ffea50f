package cartstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-marketplace-backend/internal/cart"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	state := cart.State{
		Items: []cart.LineItem{
			{
				ID:           "1700000000-42",
				ProductID:    "prod-1",
				ProductName:  "Margherita",
				Quantity:     2,
				ProductPrice: "10.00",
				Subtotal:     "20.00",
			},
		},
		Restaurant: &cart.Restaurant{ID: 5, Name: "Pasta Place", DeliveryFee: "2.50"},
	}

	blob, err := Encode(state)
	require.NoError(t, err)

	decoded, ok := Decode(blob)
	require.True(t, ok)
	assert.Equal(t, state.Items, decoded.Items)
	require.NotNil(t, decoded.Restaurant)
	assert.Equal(t, *state.Restaurant, *decoded.Restaurant)
}

func TestEncodeNormalizesNilItems(t *testing.T) {
	blob, err := Encode(cart.State{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"restaurant":null}`, string(blob))
}

func TestDecodeExplicitNullRestaurant(t *testing.T) {
	state, ok := Decode([]byte(`{"items":[],"restaurant":null}`))
	require.True(t, ok)
	assert.Empty(t, state.Items)
	assert.Nil(t, state.Restaurant)
}

func TestDecodeRejectsMissingKeys(t *testing.T) {
	cases := map[string]string{
		"missing items":      `{"restaurant":null}`,
		"missing restaurant": `{"items":[]}`,
		"empty object":       `{}`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			state, ok := Decode([]byte(blob))
			assert.False(t, ok)
			assert.Empty(t, state.Items)
			assert.Nil(t, state.Restaurant)
		})
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"not json":        `{broken`,
		"items not array": `{"items":"nope","restaurant":null}`,
		"top-level array": `[1,2,3]`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := Decode([]byte(blob))
			assert.False(t, ok)
		})
	}
}

func TestDecodeRejectsItemsWithoutRestaurant(t *testing.T) {
	// Items with a null restaurant cannot be repaired: accepting them
	// would hydrate a cart with no active restaurant to enforce.
	blob := `{"items":[{"id":"a","productId":"prod-1","productName":"Margherita","quantity":1,"productPrice":"10.00","subtotal":"10.00"}],"restaurant":null}`
	state, ok := Decode([]byte(blob))
	assert.False(t, ok)
	assert.Empty(t, state.Items)
	assert.Nil(t, state.Restaurant)
}

func TestDecodeNormalizesOrphanRestaurant(t *testing.T) {
	// A restaurant without items violates the pairing the engine keeps;
	// the decoder drops it instead of surfacing the inconsistency.
	state, ok := Decode([]byte(`{"items":[],"restaurant":{"id":5,"name":"Pasta Place"}}`))
	require.True(t, ok)
	assert.Nil(t, state.Restaurant)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	assert.Equal(t, cart.EmptyState(), store.Load())

	state := cart.State{
		Items: []cart.LineItem{
			{ID: "a", ProductID: "prod-1", ProductName: "Margherita", Quantity: 1, ProductPrice: "10.00", Subtotal: "10.00"},
		},
		Restaurant: &cart.Restaurant{ID: 5},
	}
	store.Save(state)

	loaded := store.Load()
	assert.Equal(t, state.Items, loaded.Items)
	require.NotNil(t, loaded.Restaurant)
	assert.Equal(t, int64(5), loaded.Restaurant.ID)
}

func TestMemoryStoreDiscardsMalformedBlob(t *testing.T) {
	store := NewMemoryStore()
	store.SeedRaw([]byte(`{"items":`))
	assert.Equal(t, cart.EmptyState(), store.Load())
}

func TestMemoryFactoryIsolatesSessions(t *testing.T) {
	factory := NewMemoryFactory()

	a := factory.StoreFor("session-a")
	b := factory.StoreFor("session-b")

	a.Save(cart.State{
		Items:      []cart.LineItem{{ID: "x", ProductID: "prod-1", Quantity: 1, Subtotal: "10.00"}},
		Restaurant: &cart.Restaurant{ID: 5},
	})

	assert.Len(t, a.Load().Items, 1)
	assert.Empty(t, b.Load().Items)

	// Same session id resolves to the same backing store.
	assert.Len(t, factory.StoreFor("session-a").Load().Items, 1)
}
