package handlers

import (
	"context"
	"net/http"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionHandler serves qualification questions. Only the admin routes see the correct answer.
type QuestionHandler struct {
	quizService services.QuizService
}

func NewQuestionHandler(quizService services.QuizService) *QuestionHandler {
	return &QuestionHandler{quizService: quizService}
}

// GetPublic handles GET /contests/:id/question
func (h *QuestionHandler) GetPublic(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	q, err := h.quizService.GetQuestion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

// Get handles GET /admin/contests/:id/question
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	q, err := h.quizService.GetForAdmin(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

// Create handles POST /admin/contests/:id/question
func (h *QuestionHandler) Create(c *gin.Context) {
	h.save(c, http.StatusCreated, h.quizService.Create)
}

// Update handles PUT /admin/contests/:id/question
func (h *QuestionHandler) Update(c *gin.Context) {
	h.save(c, http.StatusOK, h.quizService.Update)
}

func (h *QuestionHandler) save(c *gin.Context, status int, op func(ctx context.Context, id primitive.ObjectID, req *models.QuestionRequest) (*models.QualificationQuestion, error)) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := op(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(status, q)
}

// Delete handles DELETE /admin/contests/:id/question
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}
