package handlers

import (
	"net/http"

	"github.com/ArowuTest/skillprize-backend/internal/middleware"
	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles checkout requests
type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrder handles POST /contests/:id/payments/order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Capture handles POST /contests/:id/payments/capture and returns the new entry
func (h *PaymentHandler) Capture(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	var req models.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.paymentService.Capture(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.EntryStatusResponse{Stage: entry.Stage(), Entry: entry})
}

// ListMine handles GET /me/payments
func (h *PaymentHandler) ListMine(c *gin.Context) {
	payments, err := h.paymentService.ListUserPayments(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
