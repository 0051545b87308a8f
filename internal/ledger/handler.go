package ledger

import (
	"net/http"
	"strconv"

	"github.com/Mithunit18/freelance/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetBalance godoc
// @Summary      Get own balance
// @Description  Returns the creator's withdrawable and lifetime-paid amounts.
// @Tags         balance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Balance
// @Failure      401  {object}  api.ErrorResponse
// @Router       /balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	payeeID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	balance, err := h.repo.GetBalance(c.Request.Context(), payeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load balance"})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// ListTransactions godoc
// @Summary      List own ledger entries
// @Tags         balance
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {array}   Entry
// @Router       /balance/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	payeeID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.repo.ListEntries(c.Request.Context(), payeeID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ledger entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
