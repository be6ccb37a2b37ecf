package http

import (
	"errors"
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/generated/servers"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const defaultOutboxPageSize = 100

// Server implements servers.ServerInterface for the orchestrator API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	transitionOrderHandler    commands.TransitionOrderCommandHandler
	deleteOrderHandler        commands.DeleteOrderCommandHandler
	retryOutboxMessageHandler commands.RetryOutboxMessageCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	listOrdersHandler         queries.ListOrdersQueryHandler
	listOutboxMessagesHandler queries.ListOutboxMessagesQueryHandler
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	retryOutboxMessageHandler commands.RetryOutboxMessageCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	listOutboxMessagesHandler queries.ListOutboxMessagesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		deleteOrderHandler:        deleteOrderHandler,
		retryOutboxMessageHandler: retryOutboxMessageHandler,
		getOrderHandler:           getOrderHandler,
		listOrdersHandler:         listOrdersHandler,
		listOutboxMessagesHandler: listOutboxMessagesHandler,
	}
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, statusErr := parseOrderStatus(body.Status)
	price, priceErr := kernel.MoneyFromFloat(body.TotalPrice)
	address, addressErr := parseAddress(body.Address)
	if err := errors.Join(statusErr, priceErr, addressErr); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.ID(body.CustomerId),
		kernel.ID(body.RestaurantId),
		status,
		price,
		toIDs(body.Items),
		address,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	id, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{
		OrderId: id.Int64(),
		Status:  servers.OrderStatus(cmd.Status().String()),
	})
}

// UpdateOrder handles PUT /orders/{id}. When the order changed but a required delivery
// operation failed, the response is a 500 that carries the changed order.
func (s *Server) UpdateOrder(ctx echo.Context, id servers.OrderID) error {
	var body servers.OrderPatch
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var (
		status  *order.Status
		price   *kernel.Money
		courier *kernel.ID
		errList []error
	)
	if body.Status != nil {
		st, err := order.ParseStatus(string(*body.Status))
		errList = append(errList, err)
		status = &st
	}
	if body.TotalPrice != nil {
		p, err := kernel.MoneyFromFloat(*body.TotalPrice)
		errList = append(errList, err)
		price = &p
	}
	if body.CourierId != nil {
		c := kernel.ID(*body.CourierId)
		courier = &c
	}
	if err := errors.Join(errList...); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(kernel.ID(id), status, price, courier)
	if err != nil {
		return respondError(ctx, err)
	}

	o, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var partial *errs.PartialFailureError
		if errors.As(err, &partial) && o != nil {
			return ctx.JSON(http.StatusInternalServerError, servers.PartialFailure{
				Code:              http.StatusInternalServerError,
				Message:           "order was updated but " + partial.Operation + " failed",
				Detail:            causeOf(partial),
				OrderStateChanged: true,
				Order:             toOrder(o),
			})
		}
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// GetOrder handles GET /orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id servers.OrderID, params servers.GetOrderParams) error {
	includeDeleted := params.IncludeDeleted != nil && *params.IncludeDeleted

	query, err := queries.NewGetOrderQuery(kernel.ID(id), includeDeleted)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderView(view))
}

// ListOrders handles GET /orders?restaurant_id= and GET /orders?customer_id=.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(optionalID(params.RestaurantId), optionalID(params.CustomerId))
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]servers.OrderView, len(views))
	for i, v := range views {
		response[i] = toOrderView(v)
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteOrder handles DELETE /orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id servers.OrderID) error {
	cmd, err := commands.NewDeleteOrderCommand(kernel.ID(id))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListOutboxMessages handles GET /outbox. Without a status it lists failed messages,
// the ones waiting for manual reconciliation.
func (s *Server) ListOutboxMessages(ctx echo.Context, params servers.ListOutboxMessagesParams) error {
	status := outbox.StatusFailed
	if params.Status != nil {
		st, err := outbox.ParseStatus(string(*params.Status))
		if err != nil {
			return respondError(ctx, err)
		}
		status = st
	}

	limit := defaultOutboxPageSize
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListOutboxMessagesQuery(status, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	messages, err := s.listOutboxMessagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]servers.OutboxMessage, len(messages))
	for i, m := range messages {
		response[i] = outboxRowToResponse(m)
	}

	return ctx.JSON(http.StatusOK, response)
}

// RetryOutboxMessage handles POST /outbox/{id}/retry.
func (s *Server) RetryOutboxMessage(ctx echo.Context, id openapi_types.UUID) error {
	messageID, err := kernel.UUIDFromRaw(id)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRetryOutboxMessageCommand(messageID)
	if err != nil {
		return respondError(ctx, err)
	}

	m, err := s.retryOutboxMessageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOutboxMessage(m))
}

func parseOrderStatus(s *servers.OrderStatus) (order.Status, error) {
	if s == nil {
		return order.Unknown, nil
	}
	return order.ParseStatus(string(*s))
}

func parseAddress(s *string) (kernel.Address, error) {
	if s == nil {
		return kernel.Address{}, nil
	}
	return kernel.NewAddress(*s)
}

func optionalID(v *int64) kernel.ID {
	if v == nil {
		return 0
	}
	return kernel.ID(*v)
}

func toIDs(values []int64) []kernel.ID {
	ids := make([]kernel.ID, len(values))
	for i, v := range values {
		ids[i] = kernel.ID(v)
	}
	return ids
}

func causeOf(err *errs.PartialFailureError) string {
	if err.Cause == nil {
		return err.Error()
	}
	return err.Cause.Error()
}
