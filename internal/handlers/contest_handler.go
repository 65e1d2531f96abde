package handlers

import (
	"net/http"

	"github.com/ArowuTest/skillprize-backend/internal/middleware"
	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// ContestHandler serves the contest catalogue
type ContestHandler struct {
	contestService services.ContestService
}

func NewContestHandler(contestService services.ContestService) *ContestHandler {
	return &ContestHandler{contestService: contestService}
}

// List handles GET /contests?category=&search=&sortBy=
func (h *ContestHandler) List(c *gin.Context) {
	filter := models.ContestFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
	}

	contests, err := h.contestService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contests)
}

// Get handles GET /contests/:id
func (h *ContestHandler) Get(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	contest, err := h.contestService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest)
}

// Create handles POST /admin/contests
func (h *ContestHandler) Create(c *gin.Context) {
	var req models.ContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contest, err := h.contestService.Create(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contest)
}

// Update handles PUT /admin/contests/:id
func (h *ContestHandler) Update(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	var req models.ContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contest, err := h.contestService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest)
}

// Delete handles DELETE /admin/contests/:id
func (h *ContestHandler) Delete(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	if err := h.contestService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contest deleted"})
}
