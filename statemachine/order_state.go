package statemachine

import (
	"errors"

	"food-ordering-api/models"
)

// Actors that may drive a transition. Payment confirmation is the only way
// into CONFIRMED; staff (admin/manager) advance and cancel orders.
const (
	ActorPayment = "payment"
	ActorStaff   = "staff"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// A successful payment confirms a pending order
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorPayment},
	// Staff advance a confirmed order through the kitchen
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorStaff},
	{From: models.StatusPreparing, To: models.StatusDelivered, Actor: ActorStaff},
	// Staff can cancel anything not yet delivered
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorStaff},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorStaff},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: ActorStaff},
	// DELIVERED and CANCELLED are terminal
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
