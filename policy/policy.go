// Package policy holds the pure authorization predicates. Callers interpret
// false as deny and raise the appropriate error kind.
package policy

import "food-ordering-api/models"

// CanCheckout reports whether the role may process a checkout.
func CanCheckout(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

// CanCancel reports whether the role may cancel orders.
func CanCancel(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

// CanManagePayments reports whether the role may manage payment methods.
func CanManagePayments(role models.Role) bool {
	return role == models.RoleAdmin
}

// CanViewOrder reports whether the requester may view an order owned by
// orderUserID.
func CanViewOrder(role models.Role, orderUserID, requesterID string) bool {
	if role == models.RoleAdmin || role == models.RoleManager {
		return true
	}
	return orderUserID == requesterID
}
