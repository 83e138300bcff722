package domain

import "strings"

// OrderStatus is the canonical order status vocabulary.
type OrderStatus string

// List of order statuses
const (
	OrderPending   OrderStatus = "Pending"
	OrderProcess   OrderStatus = "Process"
	OrderDelivered OrderStatus = "Delivered"
	OrderCompleted OrderStatus = "Completed"
	OrderCanceled  OrderStatus = "Canceled"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderProcess, OrderDelivered, OrderCompleted, OrderCanceled,
}

// legacy spellings seen at the storefront, admin and courier call sites
var statusAliases = map[string]OrderStatus{
	"pending":    OrderPending,
	"process":    OrderProcess,
	"proccess":   OrderProcess,
	"processing": OrderProcess,
	"delivered":  OrderDelivered,
	"delivering": OrderDelivered,
	"completed":  OrderCompleted,
	"complete":   OrderCompleted,
	"canceled":   OrderCanceled,
	"cancelled":  OrderCanceled,
}

// ParseOrderStatus normalizes raw boundary input to the canonical status.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// Valid checks if the OrderStatus is one of the canonical values
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// transitions lists the allowed non-identity moves.
// Cancellation is pre-delivery only, so Delivered has no Canceled edge.
var transitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderProcess, OrderDelivered, OrderCanceled},
	OrderProcess:   {OrderDelivered, OrderCanceled},
	OrderDelivered: {OrderCompleted},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}
