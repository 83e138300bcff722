package orders

import "bakery-dispatch/internal/domain"

// StatusPlaced announces a new order from checkout; Order carries its payload.
const StatusPlaced = "placed"

// Event is a single order event
type Event struct {
	OrderID   int64
	Status    string
	CourierID *int64
	Proof     string
	Order     *domain.Order
}
