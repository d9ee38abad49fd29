package models

import (
	"time"
)

// Order statuses. Only StatusNew is set by order placement; the rest are
// admin-side transitions.
const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDone      = "done"
	OrderStatusCancelled = "cancelled"
)

// Order represents an accepted customer purchase. It is created exactly once,
// atomically together with the stock decrement, and never mutated by the
// order path afterwards.
type Order struct {
	ID           string                 `json:"id" firestore:"-"`
	ProductID    string                 `json:"product_id" firestore:"productId"`
	Quantity     int                    `json:"quantity" firestore:"quantity"`
	SelectedSize string                 `json:"selected_size,omitempty" firestore:"selectedSize,omitempty"`
	Status       string                 `json:"status" firestore:"status"`
	// Fields carries customer-supplied form data (name, phone, address and
	// whatever else the order form sends). It is persisted verbatim and never
	// validated by the order path.
	Fields    map[string]interface{} `json:"fields,omitempty" firestore:"fields,omitempty"`
	CreatedAt time.Time              `json:"created_at" firestore:"createdAt"`
}

// OrderRequest is the order form payload. ProductID is the only field the
// transactional core requires; Quantity defaults to 1 when omitted.
type OrderRequest struct {
	ProductID    string                 `json:"product_id" binding:"required"`
	Quantity     *int                   `json:"quantity"`
	SelectedSize string                 `json:"selected_size"`
	Fields       map[string]interface{} `json:"fields"`
}

// EffectiveQuantity resolves the optional quantity to its default.
func (r *OrderRequest) EffectiveQuantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// WantsSize reports whether a concrete size was selected, i.e. the value is
// neither empty nor the not-applicable sentinel.
func (r *OrderRequest) WantsSize() bool {
	return r.SelectedSize != "" && r.SelectedSize != SizeNotApplicable
}

// OrderStatusInput is used by the admin console to move an order through its
// lifecycle after creation.
type OrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}
