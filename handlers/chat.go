package handlers

import (
	"net/http"
	"time"

	"boutiqueapi/models"

	"github.com/gin-gonic/gin"
)

// GetMyMessages returns the authenticated customer's chat thread
func (a *App) GetMyMessages(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user ID not found"})
		return
	}

	messages, err := a.Store.ListMessages(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostMessage appends a message to the authenticated customer's thread
func (a *App) PostMessage(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user ID not found"})
		return
	}

	var input models.MessageInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := models.Message{
		ID:        a.Store.NewID(),
		ChatID:    userID.(string),
		Sender:    userID.(string),
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.Store.AddMessage(c.Request.Context(), &message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// ListChats returns all chat threads (admin only)
func (a *App) ListChats(c *gin.Context) {
	chats, err := a.Store.ListChats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch chats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// GetChatMessages returns one customer's thread (admin only)
func (a *App) GetChatMessages(c *gin.Context) {
	chatID := c.Param("id")

	messages, err := a.Store.ListMessages(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostAdminMessage appends a reply from the shop to a customer's thread
// (admin only)
func (a *App) PostAdminMessage(c *gin.Context) {
	chatID := c.Param("id")

	var input models.MessageInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := models.Message{
		ID:        a.Store.NewID(),
		ChatID:    chatID,
		Sender:    "admin",
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.Store.AddMessage(c.Request.Context(), &message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}
