// Package directory reads restaurants, items and customers from the services that own
// them. Objects are passed through untouched; only the fields this service relies on
// are decoded.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"foodorder/internal/adapters/out/httpclient"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
)

// Client implements ports.Directory. Restaurants and items come from the catalog
// service, customers from the users service.
type Client struct {
	catalog *httpclient.Client
	users   *httpclient.Client
}

var _ ports.Directory = (*Client)(nil)

func NewClient(catalog, users *httpclient.Client) *Client {
	return &Client{catalog: catalog, users: users}
}

type restaurantRefs struct {
	ID      kernel.ID `json:"id"`
	OwnerID kernel.ID `json:"owner_id"`
}

type idRef struct {
	ID kernel.ID `json:"id"`
}

// GetRestaurant calls GET /restaurants/{id}.
func (c *Client) GetRestaurant(ctx context.Context, id kernel.ID) (ports.Restaurant, error) {
	var raw json.RawMessage
	err := c.catalog.Do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     "/restaurants/" + id.String(),
		Resource: "restaurant",
		ID:       id,
	}, &raw)
	if err != nil {
		return ports.Restaurant{}, err
	}

	var refs restaurantRefs
	if err := json.Unmarshal(raw, &refs); err != nil {
		return ports.Restaurant{}, fmt.Errorf("decode restaurant %d: %w", id, err)
	}
	if refs.ID == 0 {
		refs.ID = id
	}

	return ports.Restaurant{ID: refs.ID, OwnerID: refs.OwnerID, Raw: raw}, nil
}

// GetItems calls GET /items?ids=1,2,3 once for all ids. Duplicates are requested once.
func (c *Client) GetItems(ctx context.Context, ids []kernel.ID) ([]ports.Item, error) {
	if len(ids) == 0 {
		return []ports.Item{}, nil
	}

	seen := make(map[kernel.ID]struct{}, len(ids))
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		parts = append(parts, strconv.FormatInt(id.Int64(), 10))
	}

	var raws []json.RawMessage
	err := c.catalog.Do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     "/items",
		Query:    url.Values{"ids": {strings.Join(parts, ",")}},
		Resource: "items",
		ID:       parts,
	}, &raws)
	if err != nil {
		return nil, err
	}

	items := make([]ports.Item, 0, len(raws))
	for _, raw := range raws {
		var ref idRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, ports.Item{ID: ref.ID, Raw: raw})
	}

	return items, nil
}

// GetCustomer calls GET /users/{id} on the users service.
func (c *Client) GetCustomer(ctx context.Context, id kernel.ID) (ports.Customer, error) {
	var raw json.RawMessage
	err := c.users.Do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     "/users/" + id.String(),
		Resource: "customer",
		ID:       id,
	}, &raw)
	if err != nil {
		return ports.Customer{}, err
	}

	return ports.Customer{ID: id, Raw: raw}, nil
}
