package ports

import (
	"context"
	"encoding/json"

	"foodorder/internal/core/domain/model/kernel"
)

// Restaurant, Item and Customer are read models owned by other services. Raw keeps the
// object exactly as the owner returned it; the typed fields are the ones this service
// relies on.
type (
	Restaurant struct {
		ID      kernel.ID
		OwnerID kernel.ID
		Raw     json.RawMessage
	}

	Item struct {
		ID  kernel.ID
		Raw json.RawMessage
	}

	Customer struct {
		ID  kernel.ID
		Raw json.RawMessage
	}
)

// Directory is the read-only source of restaurant, item and customer facts.
type Directory interface {
	GetRestaurant(ctx context.Context, id kernel.ID) (Restaurant, error)

	// GetItems resolves all ids in one call. Unknown ids are simply absent from the result.
	GetItems(ctx context.Context, ids []kernel.ID) ([]Item, error)

	GetCustomer(ctx context.Context, id kernel.ID) (Customer, error)
}
