package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alowais/internal/validation"
)

// SubmitInquiry captures a visitor inquiry: validate, persist, notify.
// Validation rejects before any store call; notification outcomes never
// change the response.
func (h *Handlers) SubmitInquiry(c *gin.Context) {
	var in validation.InquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validation.ValidateInquiry(&in); err != nil {
		respondError(c, err)
		return
	}

	inquiry, err := h.inquiries.Submit(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, inquiry)
}

// ListInquiries returns inquiries for triage (Staff/Admin only)
func (h *Handlers) ListInquiries(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	inquiries, err := h.inquiries.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, inquiries)
}

// updateStatusRequest carries an inquiry status transition
type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateInquiryStatus moves an inquiry to a new triage status (Staff/Admin only)
func (h *Handlers) UpdateInquiryStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	inquiry, err := h.inquiries.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, inquiry)
}
