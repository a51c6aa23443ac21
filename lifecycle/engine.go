// Package lifecycle holds the order state machine: which role may move an
// order, and through which statuses. Persistence stays in the controllers;
// every operation here takes an order value and returns the mutated copy,
// leaving the input untouched on failure.
package lifecycle

import (
	"time"

	"edrina-resto/apperrors"
	"edrina-resto/models"

	"github.com/google/uuid"
)

type Engine struct {
	now   func() time.Time
	newID func() string
}

func NewEngine() *Engine {
	return &Engine{now: time.Now, newID: uuid.NewString}
}

// NewEngineWith injects the clock and id source, for tests.
func NewEngineWith(now func() time.Time, newID func() string) *Engine {
	return &Engine{now: now, newID: newID}
}

// Total recomputes the order amount from its line items. Orders and carts
// both settle their totals through this single function.
func Total(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// mergeItems collapses duplicate lines for the same menu item, summing
// quantities. An order never holds two lines for one item.
func mergeItems(items []models.OrderItem) []models.OrderItem {
	merged := make([]models.OrderItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if i, ok := index[it.Menu_item_id]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.Menu_item_id] = len(merged)
		merged = append(merged, it)
	}
	return merged
}

func validateItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return apperrors.Validationf("order must contain at least one item")
	}
	for _, it := range items {
		if it.Menu_item_id == "" {
			return apperrors.Validationf("order item is missing its menu item reference")
		}
		if it.Quantity < 1 {
			return apperrors.Validationf("quantity for %q must be at least 1", it.Menu_item_name)
		}
		if it.Price < 0 {
			return apperrors.Validationf("price for %q cannot be negative", it.Menu_item_name)
		}
	}
	return nil
}

// Submit creates a new order in in_kitchen state. Only the server role
// creates orders; the actor becomes the order's owner.
func (e *Engine) Submit(actor models.User, tableNumber int, items []models.OrderItem) (models.Order, error) {
	if !actor.Role.Can(models.CapSubmitOrder) {
		return models.Order{}, apperrors.Forbiddenf("only servers can create orders")
	}
	if tableNumber < models.MinTableNumber || tableNumber > models.MaxTableNumber {
		return models.Order{}, apperrors.Validationf("table number must be between %d and %d",
			models.MinTableNumber, models.MaxTableNumber)
	}
	if err := validateItems(items); err != nil {
		return models.Order{}, err
	}
	items = mergeItems(items)

	now := e.now()
	order := models.Order{
		Order_id:     e.newID(),
		Table_number: tableNumber,
		Server_id:    actor.User_id,
		Items:        items,
		Total_amount: Total(items),
		Status:       models.StatusInKitchen,
		Created_at:   now,
		Updated_at:   now,
	}
	if actor.Username != nil {
		order.Server_name = *actor.Username
	}
	return order, nil
}

// Edit replaces the order's line items wholesale and recomputes the total.
// Permitted only to the owning server while the order is still in_kitchen;
// inside that window concurrent edits are last-write-wins.
func (e *Engine) Edit(actor models.User, order models.Order, items []models.OrderItem) (models.Order, error) {
	if !actor.Role.Can(models.CapEditOrder) {
		return models.Order{}, apperrors.Forbiddenf("role %s cannot edit orders", actor.Role)
	}
	if order.Server_id != actor.User_id {
		return models.Order{}, apperrors.Forbiddenf("servers can only edit their own orders")
	}
	if order.Status != models.StatusInKitchen {
		return models.Order{}, apperrors.InvalidStatef("cannot edit an order that is %s", order.Status)
	}
	if err := validateItems(items); err != nil {
		return models.Order{}, err
	}
	items = mergeItems(items)

	order.Items = items
	order.Total_amount = Total(items)
	order.Updated_at = e.now()
	return order, nil
}

// AdvanceToReady moves in_kitchen -> ready and stamps the kitchen time.
func (e *Engine) AdvanceToReady(actor models.User, order models.Order) (models.Order, error) {
	if !actor.Role.Can(models.CapAdvanceToReady) {
		return models.Order{}, apperrors.Forbiddenf("only the kitchen can mark orders ready")
	}
	if order.Status != models.StatusInKitchen {
		return models.Order{}, apperrors.InvalidStatef("cannot mark a %s order ready", order.Status)
	}
	now := e.now()
	order.Status = models.StatusReady
	order.Kitchen_ready_at = &now
	order.Updated_at = now
	return order, nil
}

// AdvanceToPaid moves ready -> paid and stamps the payment time. There is
// no path from in_kitchen straight to paid.
func (e *Engine) AdvanceToPaid(actor models.User, order models.Order) (models.Order, error) {
	if !actor.Role.Can(models.CapAdvanceToPaid) {
		return models.Order{}, apperrors.Forbiddenf("only the cashier can mark orders paid")
	}
	if order.Status != models.StatusReady {
		return models.Order{}, apperrors.InvalidStatef("cannot mark a %s order paid", order.Status)
	}
	now := e.now()
	order.Status = models.StatusPaid
	order.Paid_at = &now
	order.Updated_at = now
	return order, nil
}

// VisibleTo implements the per-role view scope: servers see their own
// orders, the kitchen sees in_kitchen and ready, the cashier sees ready
// and paid, admins see everything.
func VisibleTo(actor models.User, order models.Order) bool {
	switch actor.Role {
	case models.RoleServer:
		return order.Server_id == actor.User_id
	case models.RoleChef:
		return order.Status == models.StatusInKitchen || order.Status == models.StatusReady
	case models.RoleCashier:
		return order.Status == models.StatusReady || order.Status == models.StatusPaid
	case models.RoleAdmin:
		return true
	}
	return false
}
