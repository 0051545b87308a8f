package bank

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mithunit18/freelance/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Submit godoc
// @Summary      Submit bank details
// @Description  Registers the payout destination for the authenticated creator.
// @Tags         bank
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SubmitRequest  true  "Bank account"
// @Success      200      {object}  Details
// @Failure      400      {object}  api.ErrorResponse
// @Router       /bank-details [post]
func (h *Handler) Submit(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bank details"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// Get godoc
// @Summary      Get own bank details
// @Tags         bank
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Details
// @Failure      404  {object}  api.ErrorResponse
// @Router       /bank-details [get]
func (h *Handler) Get(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	details, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrDetailsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank details not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, details)
}
