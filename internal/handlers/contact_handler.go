package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/mbsnyc/mbsnyc-api/internal/services"
)

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := ParseValidationErrors(err); len(details) > 0 {
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details, err)
			return
		}
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	submission, err := h.service.SubmitContactForm(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to submit form", err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// ListSubmissions handles GET /api/contact
func (h *ContactHandler) ListSubmissions(c *gin.Context) {
	var opts models.ContactListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		if details := ParseValidationErrors(err); len(details) > 0 {
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details, err)
			return
		}
		respondError(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	submissions, err := h.service.ListSubmissions(c.Request.Context(), opts)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch submissions", err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}
