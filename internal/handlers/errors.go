package handlers

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/skillprize-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrNotAuthenticated, http.StatusUnauthorized},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrAlreadyEntered, http.StatusConflict},
	{services.ErrAlreadySettled, http.StatusConflict},
	{services.ErrContestClosed, http.StatusConflict},
	{services.ErrContestFull, http.StatusConflict},
	{services.ErrQuestionExists, http.StatusConflict},
	{services.ErrPaymentProcessed, http.StatusConflict},
	{services.ErrEmailTaken, http.StatusConflict},
	{services.ErrEntryNotFound, http.StatusNotFound},
	{services.ErrContestNotFound, http.StatusNotFound},
	{services.ErrQuestionNotFound, http.StatusNotFound},
	{services.ErrPaymentNotFound, http.StatusNotFound},
	{services.ErrUserNotFound, http.StatusNotFound},
	{services.ErrPaymentFailed, http.StatusPaymentRequired},
	{services.ErrInvalidContest, http.StatusBadRequest},
	{services.ErrInvalidFilter, http.StatusBadRequest},
	{services.ErrInvalidQuestion, http.StatusBadRequest},
}

// respondError writes the service error with its HTTP status
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error()})
			return
		}
	}

	var collabErr *services.CollaboratorError
	if errors.As(err, &collabErr) {
		slog.Error("Upstream dependency failed", "op", collabErr.Op, "error", collabErr.Cause, "path", c.FullPath())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unavailable, please try again"})
		return
	}

	slog.Error("Unhandled error", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// contestIDParam parses the :id path parameter, writing a 400 when it is malformed
func contestIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}
