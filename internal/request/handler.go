package request

import (
	"errors"
	"net/http"

	"github.com/Mithunit18/freelance/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Create godoc
// @Summary      Create project request
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Project request"
// @Success      201      {object}  Request
// @Failure      400      {object}  api.ErrorResponse
// @Router       /requests [post]
func (h *Handler) Create(c *gin.Context) {
	clientID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), clientID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary      Get project request
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      string  true  "Request ID"
// @Success      200        {object}  Request
// @Failure      404        {object}  api.ErrorResponse
// @Router       /requests/{requestID} [get]
func (h *Handler) Get(c *gin.Context) {
	req, err := h.repo.GetByID(c.Request.Context(), c.Param("requestID"))
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, req)
}

// Respond godoc
// @Summary      Respond to project request
// @Description  Creator accepts, declines or opens negotiation on a request.
// @Tags         requests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        requestID  path      string          true  "Request ID"
// @Param        request    body      RespondRequest  true  "Response action"
// @Success      200        {object}  Request
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /requests/{requestID}/respond [post]
func (h *Handler) Respond(c *gin.Context) {
	creatorID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body RespondRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.repo.GetByID(c.Request.Context(), c.Param("requestID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if req.CreatorID != creatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only respond to own requests"})
		return
	}

	status := map[string]string{
		"accept":    StatusAccepted,
		"decline":   StatusDeclined,
		"negotiate": StatusNegotiating,
	}[body.Action]

	if err := h.repo.UpdateStatus(c.Request.Context(), req.ID, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
		return
	}

	req.Status = status
	c.JSON(http.StatusOK, req)
}

// ListMine godoc
// @Summary      List own project requests
// @Tags         requests
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Request
// @Router       /requests [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	role, _ := auth.GetUserRole(c)

	var (
		requests []Request
		err      error
	)
	if role == auth.RoleCreator {
		requests, err = h.repo.ListByCreator(c.Request.Context(), userID)
	} else {
		requests, err = h.repo.ListByClient(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, requests)
}
