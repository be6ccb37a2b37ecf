// Package ledger is the client of the delivery ledger service.
package ledger

import (
	"context"
	"net/http"
	"net/url"

	"foodorder/internal/adapters/out/httpclient"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// Client implements ports.Ledger over the ledger HTTP API.
type Client struct {
	http *httpclient.Client
}

var _ ports.Ledger = (*Client)(nil)

func NewClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

type statusChange struct {
	Active *bool   `json:"active,omitempty"`
	Status *string `json:"status,omitempty"`
}

// CreateDelivery calls POST /deliveries. The ledger answers 409 when the order already
// has a delivery.
func (c *Client) CreateDelivery(ctx context.Context, req ports.NewLedgerDelivery) (ports.LedgerDelivery, error) {
	var created ports.LedgerDelivery
	err := c.http.Do(ctx, httpclient.Request{
		Method:   http.MethodPost,
		Path:     "/deliveries",
		Body:     req,
		Resource: "delivery for order",
		ID:       req.OrderID,
	}, &created)
	return created, err
}

// DeactivateDelivery calls PUT /deliveries/{id}/status with {"active": false}.
func (c *Client) DeactivateDelivery(ctx context.Context, id kernel.ID) error {
	inactive := false
	return c.changeStatus(ctx, id, statusChange{Active: &inactive})
}

// AdvanceDelivery calls PUT /deliveries/{id}/status with {"status": status}.
func (c *Client) AdvanceDelivery(ctx context.Context, id kernel.ID, status string) error {
	return c.changeStatus(ctx, id, statusChange{Status: &status})
}

// FindActiveByCourier calls GET /deliveries?courier_id=&active=true and returns every
// match. A courier may hold several active deliveries, so this is a list and not the
// single delivery a per-courier lookup would suggest; cancellation filters it by order.
func (c *Client) FindActiveByCourier(ctx context.Context, courierID kernel.ID) ([]ports.LedgerDelivery, error) {
	return c.find(ctx, url.Values{
		"courier_id": {courierID.String()},
		"active":     {"true"},
	})
}

// FindByOrder calls GET /deliveries?order_id= and returns the single match.
func (c *Client) FindByOrder(ctx context.Context, orderID kernel.ID) (ports.LedgerDelivery, error) {
	found, err := c.find(ctx, url.Values{"order_id": {orderID.String()}})
	if err != nil {
		return ports.LedgerDelivery{}, err
	}
	if len(found) == 0 {
		return ports.LedgerDelivery{}, errs.NewObjectNotFoundError("delivery for order", orderID)
	}
	return found[0], nil
}

func (c *Client) changeStatus(ctx context.Context, id kernel.ID, body statusChange) error {
	return c.http.Do(ctx, httpclient.Request{
		Method:   http.MethodPut,
		Path:     "/deliveries/" + id.String() + "/status",
		Body:     body,
		Resource: "delivery",
		ID:       id,
	}, nil)
}

func (c *Client) find(ctx context.Context, query url.Values) ([]ports.LedgerDelivery, error) {
	found := make([]ports.LedgerDelivery, 0)
	err := c.http.Do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     "/deliveries",
		Query:    query,
		Resource: "deliveries",
		ID:       query.Encode(),
	}, &found)
	if err != nil {
		return nil, err
	}
	return found, nil
}
