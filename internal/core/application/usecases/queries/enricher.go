// Package queries contains read operations. Order reads are enriched with data owned
// by other services; those lookups degrade to empty values instead of failing the read.
package queries

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// defaultEnrichConcurrency bounds how many orders of a listing are enriched at once.
const defaultEnrichConcurrency = 8

// EnrichedOrder is an order together with the facts other services hold about it.
// Items is never nil; Restaurant, Customer and Delivery are nil when unavailable.
type EnrichedOrder struct {
	Order      *order.Order
	Progress   float64
	Items      []ports.Item
	Restaurant *ports.Restaurant
	Customer   *ports.Customer
	Delivery   *ports.LedgerDelivery
}

// Enricher fans out to the Directory and the Ledger. Every lookup is independent:
// a failing collaborator blanks only its own field.
type Enricher struct {
	directory   ports.Directory
	ledger      ports.Ledger
	concurrency int
	logger      *slog.Logger
}

func NewEnricher(directory ports.Directory, ledger ports.Ledger, concurrency int, logger *slog.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}
	return &Enricher{
		directory:   directory,
		ledger:      ledger,
		concurrency: concurrency,
		logger:      logger.With("component", "enricher"),
	}
}

// Enrich never fails; lookup errors are logged.
func (e *Enricher) Enrich(ctx context.Context, o *order.Order) EnrichedOrder {
	view := EnrichedOrder{
		Order:    o,
		Progress: o.Progress(),
		Items:    []ports.Item{},
	}

	var g errgroup.Group

	g.Go(func() error {
		items, err := e.directory.GetItems(ctx, o.ItemIDs())
		if err != nil {
			e.lookupFailed(ctx, o, "items", err)
			return nil
		}
		if items != nil {
			view.Items = items
		}
		return nil
	})

	g.Go(func() error {
		r, err := e.directory.GetRestaurant(ctx, o.RestaurantID())
		if err != nil {
			e.lookupFailed(ctx, o, "restaurant", err)
			return nil
		}
		view.Restaurant = &r
		return nil
	})

	g.Go(func() error {
		c, err := e.directory.GetCustomer(ctx, o.CustomerID())
		if err != nil {
			e.lookupFailed(ctx, o, "customer", err)
			return nil
		}
		view.Customer = &c
		return nil
	})

	g.Go(func() error {
		d, err := e.ledger.FindByOrder(ctx, o.ID())
		if err != nil {
			e.lookupFailed(ctx, o, "delivery", err)
			return nil
		}
		view.Delivery = &d
		return nil
	})

	_ = g.Wait()
	return view
}

// EnrichAll enriches orders concurrently, keeping their order.
func (e *Enricher) EnrichAll(ctx context.Context, orders []*order.Order) []EnrichedOrder {
	views := make([]EnrichedOrder, len(orders))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, o := range orders {
		g.Go(func() error {
			views[i] = e.Enrich(ctx, o)
			return nil
		})
	}
	_ = g.Wait()

	return views
}

func (e *Enricher) lookupFailed(ctx context.Context, o *order.Order, field string, err error) {
	e.logger.WarnContext(ctx, "enrichment lookup failed",
		"order_id", o.ID(), "field", field, "error", err)
}
