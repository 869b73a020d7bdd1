package api

import (
	"net/http"

	"github.com/avelora/flightbook/internal/service/reference"
	"github.com/gin-gonic/gin"
)

// PageHandler backs the site's landing pages with reference data so the
// external presentation layer can render them.
type PageHandler struct {
	reference reference.ReferenceUseCase
}

func NewPageHandler(ref reference.ReferenceUseCase) *PageHandler {
	return &PageHandler{reference: ref}
}

func (h *PageHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.home)
	router.GET("/destination", h.destinations)
	router.GET("/pricing", h.pricing)
	router.GET("/contact", h.contact)
}

func (h *PageHandler) home(c *gin.Context) {
	airports, err := h.reference.Airports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     "home",
		"airports": airports,
	})
}

func (h *PageHandler) destinations(c *gin.Context) {
	airports, err := h.reference.Airports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":         "destination",
		"destinations": airports,
	})
}

func (h *PageHandler) pricing(c *gin.Context) {
	classes, err := h.reference.TravelClasses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	offerings, err := h.reference.ServiceOfferings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":              "pricing",
		"travel_classes":    classes,
		"service_offerings": offerings,
	})
}

func (h *PageHandler) contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":  "contact",
		"email": "support@flightbook.example",
		"phone": "+92-21-111-000-111",
	})
}
