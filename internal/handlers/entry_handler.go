package handlers

import (
	"net/http"

	"github.com/ArowuTest/skillprize-backend/internal/middleware"
	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// EntryHandler exposes the entry lifecycle to the authenticated user
type EntryHandler struct {
	entryService services.EntryService
}

func NewEntryHandler(entryService services.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// Status handles GET /contests/:id/entry. A missing entry is reported as AWAITING_PAYMENT, not 404.
func (h *EntryHandler) Status(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	entry, found, err := h.entryService.GetEntry(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, models.EntryStatusResponse{Stage: models.StageAwaitingPayment})
		return
	}

	c.JSON(http.StatusOK, models.EntryStatusResponse{Stage: entry.Stage(), Entry: entry})
}

// Initiate handles POST /contests/:id/initiate
func (h *EntryHandler) Initiate(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	quote, err := h.entryService.Initiate(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// SubmitQualification handles POST /contests/:id/qualification
func (h *EntryHandler) SubmitQualification(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	var req models.QualificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.entryService.SubmitQualification(c.Request.Context(), middleware.UserID(c), id, *req.SelectedAnswer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMine handles GET /me/entries
func (h *EntryHandler) ListMine(c *gin.Context) {
	entries, err := h.entryService.ListUserEntries(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
