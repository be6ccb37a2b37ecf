package http

import (
	"errors"
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/generated/ledgerservers"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// LedgerServer implements ledgerservers.ServerInterface for the delivery ledger.
type LedgerServer struct {
	createDeliveryHandler       commands.CreateDeliveryCommandHandler
	changeDeliveryStatusHandler commands.ChangeDeliveryStatusCommandHandler

	findDeliveriesHandler queries.FindDeliveriesQueryHandler
	getDeliveryHandler    queries.GetDeliveryQueryHandler
}

var _ ledgerservers.ServerInterface = (*LedgerServer)(nil)

func NewLedgerServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	changeDeliveryStatusHandler commands.ChangeDeliveryStatusCommandHandler,
	findDeliveriesHandler queries.FindDeliveriesQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
) *LedgerServer {
	return &LedgerServer{
		createDeliveryHandler:       createDeliveryHandler,
		changeDeliveryStatusHandler: changeDeliveryStatusHandler,
		findDeliveriesHandler:       findDeliveriesHandler,
		getDeliveryHandler:          getDeliveryHandler,
	}
}

// CreateDelivery handles POST /deliveries. A second delivery for the same order is 409.
func (s *LedgerServer) CreateDelivery(ctx echo.Context) error {
	var body ledgerservers.NewDelivery
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ledgerservers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var activeErr error
	if body.Active != nil && !*body.Active {
		activeErr = errs.NewValueIsInvalidErrorWithCause("active", errors.New("new deliveries are always active"))
	}
	price, priceErr := parsePrice(body.TotalPrice)
	address, addressErr := parseAddress(body.Address)
	if err := errors.Join(activeErr, priceErr, addressErr); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(kernel.ID(body.CourierId), kernel.ID(body.OrderId), price, address)
	if err != nil {
		return respondError(ctx, err)
	}

	d, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toLedgerDelivery(d))
}

// ChangeDeliveryStatus handles PUT /deliveries/{id}/status.
func (s *LedgerServer) ChangeDeliveryStatus(ctx echo.Context, id ledgerservers.DeliveryID) error {
	var body ledgerservers.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ledgerservers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := requestedDeliveryStatus(body)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeDeliveryStatusCommand(kernel.ID(id), status)
	if err != nil {
		return respondError(ctx, err)
	}

	d, err := s.changeDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toLedgerDelivery(d))
}

// FindDeliveries handles GET /deliveries.
func (s *LedgerServer) FindDeliveries(ctx echo.Context, params ledgerservers.FindDeliveriesParams) error {
	query, err := queries.NewFindDeliveriesQuery(optionalID(params.CourierId), optionalID(params.OrderId), params.Active)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveries, err := s.findDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ledgerservers.Delivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = toLedgerDelivery(d)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDelivery handles GET /deliveries/{id}.
func (s *LedgerServer) GetDelivery(ctx echo.Context, id ledgerservers.DeliveryID) error {
	d, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), kernel.ID(id))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toLedgerDelivery(d))
}

// requestedDeliveryStatus accepts {"active": false} as a cancellation, {"status": s} as a
// lifecycle step, or both when they agree.
func requestedDeliveryStatus(body ledgerservers.StatusChange) (delivery.Status, error) {
	deactivate := body.Active != nil && !*body.Active

	switch {
	case body.Status != nil:
		status, err := delivery.ParseStatus(string(*body.Status))
		if err != nil {
			return delivery.Unknown, err
		}
		if deactivate && status != delivery.Cancelled {
			return delivery.Unknown, errs.NewValueIsInvalidErrorWithCause(
				"status",
				errors.New("active=false only goes with status cancelled"),
			)
		}
		return status, nil
	case deactivate:
		return delivery.Cancelled, nil
	case body.Active != nil:
		return delivery.Unknown, errs.NewValueIsInvalidErrorWithCause("active", errors.New("a delivery cannot be reactivated"))
	default:
		return delivery.Unknown, errs.NewValueIsRequiredError("status or active")
	}
}

func parsePrice(s *string) (kernel.Money, error) {
	if s == nil {
		return kernel.Money{}, nil
	}
	return kernel.MoneyFromString(*s)
}
