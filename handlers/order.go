package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"boutiqueapi/models"
	"boutiqueapi/orders"
	"boutiqueapi/store"

	"github.com/gin-gonic/gin"
)

// PlaceOrder accepts the storefront order form and runs the atomic stock
// decrement + order creation. The response carries only the collapsed public
// error code; the detailed reason stays in the server logs.
func (a *App) PlaceOrder(c *gin.Context) {
	var req models.OrderRequest

	// Parse request body
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": orders.CodeSystemError})
		return
	}

	if req.Quantity != nil && *req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": orders.CodeSystemError})
		return
	}

	orderID, err := a.Orders.PlaceOrderWithRetry(c.Request.Context(), &req, a.Cfg.OrderConflictRetries)
	if err != nil {
		code := orders.PublicCode(err)
		httpStatus := http.StatusInternalServerError
		if code == orders.CodeStockLimitExceeded {
			httpStatus = http.StatusConflict
		}
		c.JSON(httpStatus, gin.H{"success": false, "error": code})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": orderID})
}

// GetAllOrders retrieves all orders (admin only)
func (a *App) GetAllOrders(c *gin.Context) {
	// Pagination parameters
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	all, err := a.Store.ListOrders(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	total := len(all)
	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": all[offset:end],
		"pagination": gin.H{
			"page":         page,
			"limit":        limit,
			"total_orders": total,
		},
	})
}

// GetOrderDetails retrieves a specific order (admin only)
func (a *App) GetOrderDetails(c *gin.Context) {
	orderID := c.Param("id")

	order, err := a.Store.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus moves an order through its lifecycle (admin only).
// Status changes after creation are an administrative concern and do not
// touch stock.
func (a *App) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var input models.OrderStatusInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Status {
	case models.OrderStatusNew, models.OrderStatusConfirmed, models.OrderStatusShipped,
		models.OrderStatusDone, models.OrderStatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	order, err := a.Store.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	order.Status = input.Status
	if err := a.Store.PutOrder(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order status updated successfully"})
}
