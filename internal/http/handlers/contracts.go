package handlers

import (
	"context"
	"io"

	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/service/orderview"
)

type orderViews interface {
	Active(ctx context.Context) ([]domain.Order, error)
	ActiveGrouped(ctx context.Context) (orderview.GroupedOrders, error)
	Completed(ctx context.Context) ([]domain.Order, error)
	CustomerOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	CourierActive(ctx context.Context, courierID int64) (orderview.GroupedOrders, error)
	CourierHistory(ctx context.Context, courierID int64) ([]domain.Order, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type statusChanger interface {
	ChangeStatus(ctx context.Context, req domain.StatusChange) (domain.Order, error)
	Reassign(ctx context.Context, orderID, courierID int64, actor domain.Actor) (domain.Order, error)
}

type courierPicker interface {
	AssignCourier(ctx context.Context, orderID int64) (int64, error)
}

type proofStore interface {
	Save(r io.Reader, original string) (string, error)
	Remove(name string) error
}

type courierReader interface {
	Get(ctx context.Context, id int64) (*domain.CourierLoad, error)
	List(ctx context.Context) ([]domain.CourierLoad, error)
}
