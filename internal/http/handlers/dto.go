package handlers

import (
	"encoding/json"
	"time"
)

type orderItemDTO struct {
	ProductID   int64       `json:"product_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	Price       json.Number `json:"price"`
}

// orderDTO keeps the field names the admin panel and courier app read.
type orderDTO struct {
	ID              int64          `json:"id"`
	OrderID         int64          `json:"order_id"`
	UserID          int64          `json:"user_id"`
	UserName        string         `json:"user_name"`
	UserAddress     string         `json:"user_address"`
	TotalPrice      json.Number    `json:"totalPrice"`
	Status          string         `json:"status"`
	CourierID       *int64         `json:"id_kurir"`
	CourierAssigned *time.Time     `json:"kurir_assigned_at,omitempty"`
	Proof           *string        `json:"bukti"`
	CreatedAt       time.Time      `json:"created_at"`
	Items           []orderItemDTO `json:"items"`
}

type courierDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"nama"`
	Username    string `json:"user_name"`
	Phone       string `json:"no_hp"`
	Status      string `json:"status"`
	Assignments int64  `json:"total_pesanan"`
}

type changeStatusRequest struct {
	Status    string `json:"status" validate:"required"`
	CourierID *int64 `json:"id_kurir,omitempty" validate:"omitempty,gt=0"`
	Proof     string `json:"bukti,omitempty"`
}

type reassignRequest struct {
	OrderID   int64 `json:"orderId" validate:"required,gt=0"`
	CourierID int64 `json:"courierId" validate:"required,gt=0"`
}

type assignmentResponse struct {
	OrderID   int64 `json:"order_id"`
	CourierID int64 `json:"id_kurir"`
}

type messageResponse struct {
	Message string    `json:"message"`
	Order   *orderDTO `json:"order,omitempty"`
}
