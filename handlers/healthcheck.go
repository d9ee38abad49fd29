package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckConnection verifies the store is reachable
func (a *App) CheckConnection(c *gin.Context) {
	if err := a.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
