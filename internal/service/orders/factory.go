package orders

import (
	"context"
	"strings"

	"bakery-dispatch/internal/domain"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	onPlaced actionFunc
	onStatus actionFunc
}

func newActionFactory(onPlaced, onStatus actionFunc) *actionFactory {
	return &actionFactory{onPlaced: onPlaced, onStatus: onStatus}
}

// get resolves the action for a raw event status; legacy spellings are accepted.
func (f *actionFactory) get(status string) (actionFunc, bool) {
	if strings.EqualFold(strings.TrimSpace(status), StatusPlaced) {
		return f.onPlaced, true
	}
	if _, ok := domain.ParseOrderStatus(status); ok {
		return f.onStatus, true
	}
	return nil, false
}
