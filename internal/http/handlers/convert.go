package handlers

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"bakery-dispatch/internal/domain"
)

func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func orderToResponse(o domain.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       money(it.UnitPrice),
		})
	}
	return orderDTO{
		ID:              o.ID,
		OrderID:         o.ID,
		UserID:          o.UserID,
		UserName:        o.CustomerName,
		UserAddress:     o.CustomerAddress,
		TotalPrice:      money(o.TotalPrice),
		Status:          string(o.Status),
		CourierID:       o.CourierID,
		CourierAssigned: o.CourierAssignedAt,
		Proof:           o.CompletionProof,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}

func groupedEntry(o domain.Order) any {
	return orderToResponse(o)
}

func courierToResponse(c domain.CourierLoad) courierDTO {
	return courierDTO{
		ID:          c.ID,
		Name:        c.Name,
		Username:    c.Username,
		Phone:       c.Phone,
		Status:      string(c.Status()),
		Assignments: c.Assignments,
	}
}

func couriersToResponse(list []domain.CourierLoad) []courierDTO {
	out := make([]courierDTO, 0, len(list))
	for _, c := range list {
		out = append(out, courierToResponse(c))
	}
	return out
}
