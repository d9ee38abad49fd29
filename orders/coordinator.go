// Package orders holds the order transaction coordinator: the only code path
// allowed to decrement stock. Everything else in the service talks to the
// store through its unconstrained direct methods.
package orders

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"boutiqueapi/models"
	"boutiqueapi/store"
)

// Coordinator accepts one order request and either commits a consistent state
// change (stock decrement + order record, atomically) or commits nothing and
// reports why.
type Coordinator struct {
	store store.Store
	log   *slog.Logger
	now   func() time.Time
}

// New returns a coordinator over the given store.
func New(st store.Store, log *slog.Logger) *Coordinator {
	return &Coordinator{store: st, log: log, now: time.Now}
}

// PlaceOrder runs the whole read-check-decrement-create sequence as a single
// atomic transaction. It does not retry on a conflict abort; the caller may,
// and a retry is always safe because each attempt re-reads fresh state.
//
// On success it returns the new order's id. On failure it returns an *Error
// carrying the detailed reason; no writes take effect.
func (c *Coordinator) PlaceOrder(ctx context.Context, req *models.OrderRequest) (string, error) {
	qty := req.EffectiveQuantity()
	if qty < 1 {
		return "", failf(ReasonSystem, errors.New("quantity must be a positive integer"))
	}

	orderID := c.store.NewID()
	err := c.store.RunTransaction(ctx, func(tx store.Tx) error {
		p, err := tx.GetProduct(req.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			return failf(ReasonProductNotFound, err)
		}
		if err != nil {
			return failf(ReasonSystem, err)
		}

		if p.StockQuantity < qty {
			return failf(ReasonOutOfStock, nil)
		}

		// The per-size cap is independent of and additional to the global
		// one: both must pass. Missing size label counts as zero.
		sizeGated := p.HasSizes() && req.WantsSize()
		if sizeGated && p.SizeStock[req.SelectedSize] < qty {
			return failf(ReasonSizeOutOfStock, nil)
		}

		p.StockQuantity -= qty
		if sizeGated {
			p.SizeStock[req.SelectedSize] -= qty
		}
		if err := tx.PutProduct(p); err != nil {
			return failf(ReasonSystem, err)
		}

		order := &models.Order{
			ID:           orderID,
			ProductID:    req.ProductID,
			Quantity:     qty,
			SelectedSize: req.SelectedSize,
			Status:       models.OrderStatusNew,
			Fields:       req.Fields,
			CreatedAt:    c.now().UTC(),
		}
		if err := tx.CreateOrder(order); err != nil {
			return failf(ReasonSystem, err)
		}
		return nil
	})
	if err != nil {
		var oe *Error
		if !errors.As(err, &oe) {
			// Commit-level failure (conflict abort, store unreachable).
			oe = failf(ReasonSystem, err)
			err = oe
		}
		c.log.Warn("order rejected",
			"product_id", req.ProductID,
			"quantity", qty,
			"selected_size", req.SelectedSize,
			"reason", string(oe.Reason),
			"err", err)
		return "", err
	}

	c.log.Info("order placed",
		"order_id", orderID,
		"product_id", req.ProductID,
		"quantity", qty,
		"selected_size", req.SelectedSize)
	return orderID, nil
}

// PlaceOrderWithRetry is the explicit retry policy around PlaceOrder: up to
// attempts tries, retrying only when the store aborted the commit because of
// a conflicting concurrent write. Any other failure is returned as-is.
func (c *Coordinator) PlaceOrderWithRetry(ctx context.Context, req *models.OrderRequest, attempts int) (string, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		id, err := c.PlaceOrder(ctx, req)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}
