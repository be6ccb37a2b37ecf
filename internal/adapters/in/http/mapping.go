package http

import (
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/ports"
	"foodorder/internal/generated/ledgerservers"
	"foodorder/internal/generated/servers"
)

func toOrder(o *order.Order) servers.Order {
	return servers.Order{
		Id:           o.ID().Int64(),
		CustomerId:   o.CustomerID().Int64(),
		RestaurantId: o.RestaurantID().Int64(),
		Status:       servers.OrderStatus(o.Status().String()),
		TotalPrice:   o.TotalPrice().Float64(),
		Address:      o.Address().Ptr(),
		ItemIds:      fromIDs(o.ItemIDs()),
		Progress:     o.Progress(),
		CreatedAt:    o.CreatedAt(),
		DeletedAt:    o.DeletedAt(),
	}
}

func toOrderView(v queries.EnrichedOrder) servers.OrderView {
	o := toOrder(v.Order)
	view := servers.OrderView{
		Id:           o.Id,
		CustomerId:   o.CustomerId,
		RestaurantId: o.RestaurantId,
		Status:       o.Status,
		TotalPrice:   o.TotalPrice,
		Address:      o.Address,
		ItemIds:      o.ItemIds,
		Progress:     v.Progress,
		CreatedAt:    o.CreatedAt,
		DeletedAt:    o.DeletedAt,
		Items:        make([]servers.Object, 0, len(v.Items)),
	}

	for _, item := range v.Items {
		view.Items = append(view.Items, servers.Object(item.Raw))
	}
	if v.Restaurant != nil {
		raw := servers.NullableObject(v.Restaurant.Raw)
		view.Restaurant = &raw
	}
	if v.Customer != nil {
		raw := servers.NullableObject(v.Customer.Raw)
		view.Customer = &raw
	}
	if v.Delivery != nil {
		d := toDeliveryView(*v.Delivery)
		view.Delivery = &d
	}

	return view
}

func toDeliveryView(d ports.LedgerDelivery) servers.Delivery {
	return servers.Delivery{
		Id:           d.ID.Int64(),
		CourierId:    d.CourierID.Int64(),
		OrderId:      d.OrderID.Int64(),
		Status:       d.Status,
		Active:       d.Active,
		PickupTime:   d.PickupTime,
		DeliveryTime: d.DeliveryTime,
		TotalPrice:   d.TotalPrice,
		Address:      d.Address,
		CreatedAt:    d.CreatedAt,
	}
}

func toOutboxMessage(m *outbox.Message) servers.OutboxMessage {
	return servers.OutboxMessage{
		Id:            m.ID().Raw(),
		OrderId:       m.OrderID().Int64(),
		Kind:          m.Kind().String(),
		Status:        servers.OutboxStatus(m.Status().String()),
		Attempts:      m.Attempts(),
		LastError:     nonEmpty(m.LastError()),
		Payload:       servers.Object(m.Payload()),
		NextAttemptAt: m.NextAttemptAt(),
		CreatedAt:     m.CreatedAt(),
		ProcessedAt:   m.ProcessedAt(),
	}
}

func outboxRowToResponse(r queries.ListOutboxMessagesQueryResponse) servers.OutboxMessage {
	return servers.OutboxMessage{
		Id:            r.ID,
		OrderId:       r.OrderID,
		Kind:          r.Kind,
		Status:        servers.OutboxStatus(r.Status),
		Attempts:      r.Attempts,
		LastError:     nonEmpty(r.LastError),
		Payload:       servers.Object(r.Payload),
		NextAttemptAt: r.NextAttemptAt,
		CreatedAt:     r.CreatedAt,
		ProcessedAt:   r.ProcessedAt,
	}
}

func toLedgerDelivery(d *delivery.Delivery) ledgerservers.Delivery {
	return ledgerservers.Delivery{
		Id:           d.ID().Int64(),
		CourierId:    d.CourierID().Int64(),
		OrderId:      d.OrderID().Int64(),
		Status:       ledgerservers.DeliveryStatus(d.Status().String()),
		Active:       d.IsActive(),
		PickupTime:   d.PickupTime(),
		DeliveryTime: d.DeliveryTime(),
		TotalPrice:   d.TotalPrice().String(),
		Address:      d.Address().Ptr(),
		CreatedAt:    d.CreatedAt(),
	}
}

func fromIDs(ids []kernel.ID) []int64 {
	values := make([]int64, len(ids))
	for i, id := range ids {
		values[i] = id.Int64()
	}
	return values
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
