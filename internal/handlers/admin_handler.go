package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Users handles GET /admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Entries handles GET /admin/entries
func (h *AdminHandler) Entries(c *gin.Context) {
	entries, err := h.adminService.ListEntries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ExportEntries handles GET /admin/contests/:id/export.
// The CSV is buffered so a failure can still be reported as JSON.
func (h *AdminHandler) ExportEntries(c *gin.Context) {
	id, ok := contestIDParam(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.adminService.ExportContestEntries(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("contest-%s-entries-%s.csv", id.Hex(), time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
