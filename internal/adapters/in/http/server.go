// Package http exposes the order operations over REST with echo.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Server handles HTTP requests for orders.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderHandler:       updateOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		deleteOrderHandler:       deleteOrderHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
		logger:                   logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders.
//
//	@Summary	Create an order with its items
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		CreateOrderRequest	true	"Order"
//	@Success	201		{object}	OrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badBody(ctx, err)
	}

	cmd, err := body.toCommand()
	if err != nil {
		return s.fail(ctx, "Invalid order data", err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to create order", err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetOrders handles GET /api/v1/orders. Malformed paging or filter values fall back to defaults.
//
//	@Summary	List orders, newest first
//	@Tags		orders
//	@Produce	json
//	@Param		page	query		int		false	"Zero-based page"	default(0)
//	@Param		limit	query		int		false	"Page size"			default(10)	maximum(100)
//	@Param		userId	query		int		false	"Owner filter"
//	@Param		status	query		string	false	"Status filter"
//	@Success	200		{object}	OrderListResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/orders [get]
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewListOrdersQuery(
		ctx.QueryParam("page"),
		ctx.QueryParam("limit"),
		ctx.QueryParam("userId"),
		ctx.QueryParam("status"),
	)

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to retrieve orders", err)
	}

	return ctx.JSON(http.StatusOK, toOrderListResponse(result))
}

// GetOrder handles GET /api/v1/orders/{id}.
//
//	@Summary	Get an order with its items
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return s.fail(ctx, "Invalid order id", err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, "Invalid order id", err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to retrieve order", err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(found))
}

// UpdateOrder handles PUT /api/v1/orders/{id}.
//
//	@Summary	Update an order, optionally replacing its items
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Order ID"
//	@Param		order	body		UpdateOrderRequest	true	"Changes"
//	@Success	200		{object}	OrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/orders/{id} [put]
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return s.fail(ctx, "Invalid order id", err)
	}

	var body UpdateOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return s.badBody(ctx, err)
	}

	cmd, err := body.toCommand(orderID)
	if err != nil {
		return s.fail(ctx, "Invalid order data", err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to update order", err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{id}/status.
//
//	@Summary	Move an order to another status
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Order ID"
//	@Param		status	body		UpdateStatusRequest	true	"New status"
//	@Success	200		{object}	OrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/orders/{id}/status [patch]
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return s.fail(ctx, "Invalid order id", err)
	}

	var body UpdateStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return s.badBody(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, body.Status)
	if err != nil {
		return s.fail(ctx, "Invalid status", err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to update order status", err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
//
//	@Summary	Delete an order and its items
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	DeleteResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/orders/{id} [delete]
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return s.fail(ctx, "Invalid order id", err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, "Invalid order id", err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to delete order", err)
	}

	return ctx.JSON(http.StatusOK, DeleteResponse{
		Success: true,
		Message: "Order " + orderID.String() + " deleted",
	})
}

// bindOrderID reads the {id} path segment the way generated servers do.
func bindOrderID(ctx echo.Context) (kernel.ID, error) {
	var raw int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.NewID("id", raw)
}

func (s *Server) badBody(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Invalid request body",
		Cause:   err.Error(),
	})
}

// fail maps err to a status code. Unexpected failures are also logged.
// Cause is diagnostic text, not a contract.
func (s *Server) fail(ctx echo.Context, message string, err error) error {
	switch {
	case errs.IsValidation(err):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: message, Cause: err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "Order not found", Cause: err.Error()})
	}

	req := ctx.Request()
	attrs := []any{
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", ctx.Response().Header().Get(echo.HeaderXRequestID),
		"error", err,
	}
	if id := ctx.Param("id"); id != "" {
		attrs = append(attrs, "order_id", id)
	}
	if userID, ok := ctx.Get(authenticatedUserKey).(kernel.ID); ok {
		attrs = append(attrs, "user_id", userID.Int64())
	}
	s.logger.ErrorContext(req.Context(), message, attrs...)

	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: message, Cause: err.Error()})
}
