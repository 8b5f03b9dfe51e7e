package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alowais/internal/services"
	"alowais/internal/validation"
)

// ListProperties returns the public catalog, filtered from query params
func (h *Handlers) ListProperties(c *gin.Context) {
	filters := services.PropertyFilters{
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}

	if v := c.Query("minPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = &price
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = &price
		}
	}
	if v := c.Query("bedrooms"); v != "" {
		if bedrooms, err := strconv.Atoi(v); err == nil {
			filters.Bedrooms = &bedrooms
		}
	}

	properties, err := h.properties.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, properties)
}

// GetProperty returns a single listing by id
func (h *Handlers) GetProperty(c *gin.Context) {
	property, err := h.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, property)
}

// CreateProperty adds a listing (Admin only)
func (h *Handlers) CreateProperty(c *gin.Context) {
	var in validation.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validation.ValidateProperty(&in); err != nil {
		respondError(c, err)
		return
	}

	property, err := h.properties.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, property)
}

// UpdateProperty replaces a listing (Admin only)
func (h *Handlers) UpdateProperty(c *gin.Context) {
	var in validation.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validation.ValidateProperty(&in); err != nil {
		respondError(c, err)
		return
	}

	property, err := h.properties.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, property)
}

// DeleteProperty removes a listing (Admin only)
func (h *Handlers) DeleteProperty(c *gin.Context) {
	if err := h.properties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAllProperties wipes the catalog (Admin only)
func (h *Handlers) DeleteAllProperties(c *gin.Context) {
	deleted, err := h.properties.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}
