package services

import (
	"qrdine/internal/common"
	"qrdine/internal/models"
)

// orderTransitions lists, per status, the statuses an order may move to.
// Served and Cancelled have no entry and are therefore terminal.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusReceived:  {models.OrderStatusPreparing, models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusServed, models.OrderStatusCancelled},
}

// CanTransition reports whether from -> to is a legal move
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal targets from the given status
func NextStatuses(from models.OrderStatus) []models.OrderStatus {
	next := orderTransitions[from]
	out := make([]models.OrderStatus, len(next))
	copy(out, next)
	return out
}

func checkTransition(from, to models.OrderStatus) error {
	if !from.IsTerminal() && CanTransition(from, to) {
		return nil
	}
	return &common.IllegalTransitionError{From: string(from), To: string(to)}
}
