package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/polito-se2-21-r03/spg/internal/models"
	"github.com/polito-se2-21-r03/spg/internal/repository"
)

type UserHandler struct {
	users   repository.UserRepository
	wallets repository.WalletRepository
}

func NewUserHandler(users repository.UserRepository, wallets repository.WalletRepository) *UserHandler {
	return &UserHandler{users: users, wallets: wallets}
}

// GET /api/user?role=CLIENT
func (h *UserHandler) GetUsersByRole(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	users, err := h.users.FindByRole(models.Role(role))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/client/:clientId/wallet
func (h *UserHandler) GetClientWallet(c *gin.Context) {
	clientID, ok := paramUint(c, "clientId")
	if !ok {
		return
	}

	wallet, err := h.wallets.FindByUserID(clientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, wallet)
}
