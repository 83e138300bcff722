package dispatch

import (
	"cmp"
	"slices"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
)

// Policy picks the courier for an order that is about to be delivered.
type Policy struct{}

// Select returns the id of the preferred courier.
//
// Busy couriers are never chosen. Couriers whose last assignment is not Completed come first,
// never-assigned ones before the rest, lowest id winning. Couriers who just completed their
// last order are the fallback, again by lowest id.
func (Policy) Select(roster []domain.CourierLoad) (int64, error) {
	var available, exhausted []domain.CourierLoad
	for _, c := range roster {
		switch c.Status() {
		case domain.CourierAvailable:
			available = append(available, c)
		case domain.CourierCompleted:
			exhausted = append(exhausted, c)
		}
	}

	if len(available) > 0 {
		slices.SortStableFunc(available, func(a, b domain.CourierLoad) int {
			if c := cmp.Compare(assigned(a), assigned(b)); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		return available[0].ID, nil
	}
	if len(exhausted) > 0 {
		slices.SortStableFunc(exhausted, func(a, b domain.CourierLoad) int {
			return cmp.Compare(a.ID, b.ID)
		})
		return exhausted[0].ID, nil
	}
	return 0, apperr.ErrNoCourierAvailable
}

func assigned(c domain.CourierLoad) int {
	if c.Assignments > 0 {
		return 1
	}
	return 0
}
