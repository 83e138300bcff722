package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer order moving through the delivery lifecycle.
type Order struct {
	ID                int64
	UserID            int64
	CustomerName      string
	CustomerAddress   string
	Status            OrderStatus
	TotalPrice        decimal.Decimal
	CourierID         *int64
	CourierAssignedAt *time.Time
	CreatedAt         time.Time
	CompletionProof   *string
	Items             []OrderItem
}

// OrderItem is a line item snapshot taken when the order was placed.
type OrderItem struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// OrderItemRow is one order x item row as returned by the order/item join.
type OrderItemRow struct {
	OrderID         int64
	UserID          int64
	CustomerName    string
	CustomerAddress string
	Status          OrderStatus
	TotalPrice      decimal.Decimal
	CourierID       *int64
	CreatedAt       time.Time
	CompletionProof *string
	Item            OrderItem
}

// Header returns the order part of the row, without items.
func (r OrderItemRow) Header() Order {
	return Order{
		ID:              r.OrderID,
		UserID:          r.UserID,
		CustomerName:    r.CustomerName,
		CustomerAddress: r.CustomerAddress,
		Status:          r.Status,
		TotalPrice:      r.TotalPrice,
		CourierID:       r.CourierID,
		CreatedAt:       r.CreatedAt,
		CompletionProof: r.CompletionProof,
	}
}

// ItemsTotal sums quantity * unit price over the items.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// StatusChange is a request to move an order to another status.
// Status is raw boundary input and is normalized by the engine.
type StatusChange struct {
	OrderID   int64
	Status    string
	CourierID *int64
	Proof     string
	Actor     Actor
}

// OrderFilter narrows an order listing. Zero values do not filter.
type OrderFilter struct {
	Statuses  []OrderStatus
	Exclude   []OrderStatus
	CourierID *int64
	UserID    *int64
}

// Stats aggregates dashboard counters.
type Stats struct {
	OrderCount int64
	Sales      decimal.Decimal
}

// AuditReport holds counts of rows violating lifecycle invariants.
type AuditReport struct {
	CouriersOverloaded int64
	ProofMismatches    int64
}
