package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/service/orders"
)

// EventDTO is the wire form of an order event.
type EventDTO struct {
	OrderID   int64     `json:"order_id" validate:"gte=0"`
	Status    string    `json:"status" validate:"required"`
	CourierID *int64    `json:"courier_id,omitempty" validate:"omitempty,gt=0"`
	Proof     string    `json:"proof,omitempty"`
	Order     *OrderDTO `json:"order,omitempty"`
}

// OrderDTO is the checkout payload of a placed event.
type OrderDTO struct {
	UserID      int64           `json:"user_id" validate:"gt=0"`
	UserName    string          `json:"user_name" validate:"required"`
	UserAddress string          `json:"user_address"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Items       []ItemDTO       `json:"items" validate:"required,min=1,dive"`
}

// ItemDTO is one line item of a placed order.
type ItemDTO struct {
	ProductID   int64           `json:"product_id" validate:"gt=0"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	Price       decimal.Decimal `json:"price"`
}

// decodeEvent parses and validates a message value. All errors are permanent.
func decodeEvent(v *validator.Validate, raw []byte) (orders.Event, error) {
	var dto EventDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return orders.Event{}, Permanent(fmt.Errorf("bad json: %w", err))
	}
	dto.Status = strings.TrimSpace(dto.Status)
	if err := v.Struct(dto); err != nil {
		return orders.Event{}, Permanent(fmt.Errorf("invalid event: %w", err))
	}

	placed := strings.EqualFold(dto.Status, orders.StatusPlaced)
	if !placed && dto.OrderID == 0 {
		return orders.Event{}, Permanent(errors.New("empty order_id"))
	}
	if placed && dto.Order == nil {
		return orders.Event{}, Permanent(errors.New("placed event without order"))
	}

	ev := orders.Event{
		OrderID:   dto.OrderID,
		Status:    dto.Status,
		CourierID: dto.CourierID,
		Proof:     strings.TrimSpace(dto.Proof),
	}
	if dto.Order != nil {
		o, err := dto.Order.toDomain()
		if err != nil {
			return orders.Event{}, Permanent(err)
		}
		ev.Order = &o
	}
	return ev, nil
}

// toDomain converts the payload; a zero total is recomputed from the items.
func (d OrderDTO) toDomain() (domain.Order, error) {
	o := domain.Order{
		UserID:          d.UserID,
		CustomerName:    strings.TrimSpace(d.UserName),
		CustomerAddress: strings.TrimSpace(d.UserAddress),
		TotalPrice:      d.TotalPrice,
		Items:           make([]domain.OrderItem, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		if it.Price.IsNegative() {
			return domain.Order{}, fmt.Errorf("negative price for product %d", it.ProductID)
		}
		o.Items = append(o.Items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		})
	}
	if o.TotalPrice.IsNegative() {
		return domain.Order{}, errors.New("negative order total")
	}
	if o.TotalPrice.IsZero() {
		o.TotalPrice = o.ItemsTotal()
	}
	return o, nil
}
