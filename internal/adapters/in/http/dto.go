package http

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Amounts are accepted as JSON numbers or strings and always rendered as
// strings with two fractional digits.

// ItemRequest is one requested line. Quantity defaults to 1 when omitted.
type ItemRequest struct {
	ProductID   *int64           `json:"productId"`
	ProductName string           `json:"productName"`
	Quantity    *int             `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	Notes       *string          `json:"notes,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	UserID                *int64           `json:"userId"`
	TotalAmount           *decimal.Decimal `json:"totalAmount"`
	ShippingAddress       string           `json:"shippingAddress"`
	PaymentMethod         *string          `json:"paymentMethod,omitempty"`
	PaymentStatus         *string          `json:"paymentStatus,omitempty"`
	DeliveryNotes         *string          `json:"deliveryNotes,omitempty"`
	EstimatedDeliveryTime *time.Time       `json:"estimatedDeliveryTime,omitempty"`
	DriverID              *int64           `json:"driverId,omitempty"`
	Items                 []ItemRequest    `json:"items"`
}

// UpdateOrderRequest is the body of PUT /api/v1/orders/{id}. Every field is optional;
// a non-empty items list replaces the whole item set.
type UpdateOrderRequest struct {
	UserID                *int64           `json:"userId,omitempty"`
	TotalAmount           *decimal.Decimal `json:"totalAmount,omitempty"`
	Status                *string          `json:"status,omitempty"`
	PaymentMethod         *string          `json:"paymentMethod,omitempty"`
	PaymentStatus         *string          `json:"paymentStatus,omitempty"`
	ShippingAddress       *string          `json:"shippingAddress,omitempty"`
	DeliveryNotes         *string          `json:"deliveryNotes,omitempty"`
	EstimatedDeliveryTime *time.Time       `json:"estimatedDeliveryTime,omitempty"`
	DriverID              *int64           `json:"driverId,omitempty"`
	Items                 []ItemRequest    `json:"items,omitempty"`
}

// UpdateStatusRequest is the body of PATCH /api/v1/orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ItemResponse is one order line. Amounts are decimal strings with two fractional digits.
type ItemResponse struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"orderId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   string  `json:"unitPrice"`
	TotalPrice  string  `json:"totalPrice"`
	Notes       *string `json:"notes"`
}

// OrderResponse is the full order aggregate as returned by every single-order route.
type OrderResponse struct {
	ID                    int64          `json:"id"`
	UserID                int64          `json:"userId"`
	TotalAmount           string         `json:"totalAmount"`
	Status                string         `json:"status"`
	PaymentMethod         string         `json:"paymentMethod"`
	PaymentStatus         string         `json:"paymentStatus"`
	ShippingAddress       string         `json:"shippingAddress"`
	DeliveryNotes         *string        `json:"deliveryNotes"`
	EstimatedDeliveryTime *time.Time     `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time     `json:"actualDeliveryTime"`
	DriverID              *int64         `json:"driverId"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	Items                 []ItemResponse `json:"items"`
}

// OrderListResponse is one page of orders.
type OrderListResponse struct {
	Items      []OrderResponse `json:"items"`
	TotalCount int64           `json:"totalCount"`
	TotalPages int             `json:"totalPages"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	var driverID *int64
	if id := o.DriverID(); id != nil {
		raw := id.Int64()
		driverID = &raw
	}

	items := make([]ItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemResponse{
			ID:          item.ID().Int64(),
			OrderID:     o.ID().Int64(),
			ProductID:   item.ProductID().Int64(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().String(),
			TotalPrice:  item.TotalPrice().String(),
			Notes:       item.Notes(),
		})
	}

	return OrderResponse{
		ID:                    o.ID().Int64(),
		UserID:                o.UserID().Int64(),
		TotalAmount:           o.TotalAmount().String(),
		Status:                o.Status().String(),
		PaymentMethod:         string(o.PaymentMethod()),
		PaymentStatus:         string(o.PaymentStatus()),
		ShippingAddress:       o.ShippingAddress(),
		DeliveryNotes:         o.DeliveryNotes(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		DriverID:              driverID,
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Items:                 items,
	}
}

func toOrderListResponse(result queries.ListOrdersResult) OrderListResponse {
	items := make([]OrderResponse, 0, len(result.Items))
	for _, o := range result.Items {
		items = append(items, toOrderResponse(o))
	}
	return OrderListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
		Page:       result.Page,
		Limit:      result.Limit,
	}
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	if r.TotalAmount == nil {
		return commands.CreateOrderCommand{}, errs.NewValueIsRequiredError("totalAmount")
	}

	var (
		userID  kernel.ID
		details order.Details
	)
	if r.UserID != nil {
		userID = kernel.ID(*r.UserID)
	}

	totalAmount, totalErr := kernel.NewMoney("totalAmount", *r.TotalAmount)
	specs, specsErr := toItemSpecs(r.Items)
	methodErr := parseOptional(r.PaymentMethod, order.ParsePaymentMethod, &details.PaymentMethod)
	paymentErr := parseOptional(r.PaymentStatus, order.ParsePaymentStatus, &details.PaymentStatus)
	if err := errors.Join(totalErr, specsErr, methodErr, paymentErr); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	details.DeliveryNotes = r.DeliveryNotes
	details.EstimatedDeliveryTime = r.EstimatedDeliveryTime
	details.DriverID = optionalID(r.DriverID)

	return commands.NewCreateOrderCommand(userID, totalAmount, r.ShippingAddress, specs, details)
}

func (r UpdateOrderRequest) toCommand(orderID kernel.ID) (commands.UpdateOrderCommand, error) {
	changes := commands.OrderChanges{
		UserID:                optionalID(r.UserID),
		ShippingAddress:       r.ShippingAddress,
		DeliveryNotes:         r.DeliveryNotes,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		DriverID:              optionalID(r.DriverID),
	}

	var totalErr error
	if r.TotalAmount != nil {
		var total kernel.Money
		total, totalErr = kernel.NewMoney("totalAmount", *r.TotalAmount)
		changes.TotalAmount = &total
	}

	var status order.Status
	var method order.PaymentMethod
	var payment order.PaymentStatus
	statusErr := parseOptional(r.Status, order.ParseStatus, &status)
	methodErr := parseOptional(r.PaymentMethod, order.ParsePaymentMethod, &method)
	paymentErr := parseOptional(r.PaymentStatus, order.ParsePaymentStatus, &payment)
	if r.Status != nil {
		changes.Status = &status
	}
	if r.PaymentMethod != nil {
		changes.PaymentMethod = &method
	}
	if r.PaymentStatus != nil {
		changes.PaymentStatus = &payment
	}

	specs, specsErr := toItemSpecs(r.Items)
	if err := errors.Join(totalErr, statusErr, methodErr, paymentErr, specsErr); err != nil {
		return commands.UpdateOrderCommand{}, err
	}
	changes.Items = specs

	return commands.NewUpdateOrderCommand(orderID, changes)
}

func toItemSpecs(items []ItemRequest) ([]commands.ItemSpec, error) {
	specs := make([]commands.ItemSpec, 0, len(items))
	var joined error
	for idx, item := range items {
		spec := commands.ItemSpec{
			ProductName: item.ProductName,
			Quantity:    1,
			Notes:       item.Notes,
		}
		if item.ProductID != nil {
			spec.ProductID = kernel.ID(*item.ProductID)
		}
		if item.Quantity != nil {
			spec.Quantity = *item.Quantity
		}

		if item.UnitPrice == nil {
			joined = errors.Join(joined, fmt.Errorf("items[%d]: %w", idx, errs.NewValueIsRequiredError("unitPrice")))
			continue
		}
		price, err := kernel.NewMoney("unitPrice", *item.UnitPrice)
		if err != nil {
			joined = errors.Join(joined, fmt.Errorf("items[%d]: %w", idx, err))
			continue
		}
		spec.UnitPrice = price
		specs = append(specs, spec)
	}
	if joined != nil {
		return nil, joined
	}
	return specs, nil
}

func parseOptional[T any](raw *string, parse func(string) (T, error), dst *T) error {
	if raw == nil {
		return nil
	}
	v, err := parse(*raw)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func optionalID(raw *int64) *kernel.ID {
	if raw == nil {
		return nil
	}
	id := kernel.ID(*raw)
	return &id
}
