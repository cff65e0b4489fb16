package contracts

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"docustamp/contract-portal-backend/internal/catalog"
	"docustamp/contract-portal-backend/internal/stamp"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-merged-pdf", h.Generate)
	customers := rg.Group("/contracts/:customer")
	{
		customers.GET("/latest", h.Latest)
		customers.GET("/archive", h.Archive)
		customers.GET("/history", h.History)
	}
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.TemplateNames) == 0 || len(req.Context) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must include 'template_names' (as a list) and 'context'."})
		return
	}

	doc, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="merged_document.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc.Bytes)
}

func (h *Handler) Latest(c *gin.Context) {
	data, err := h.service.Latest(c.Request.Context(), c.Param("customer"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) Archive(c *gin.Context) {
	customer := c.Param("customer")
	data, err := h.service.Archive(c.Request.Context(), customer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_contracts.zip"`, customer))
	c.Data(http.StatusOK, "application/zip", data)
}

func (h *Handler) History(c *gin.Context) {
	records, err := h.service.History(c.Request.Context(), c.Param("customer"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// respondError maps pipeline errors to the response taxonomy. Internal
// details never reach the caller; everything unexpected is logged and
// collapsed into a generic server error.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotReady):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server is not configured correctly. Cannot connect to storage."})
	case errors.Is(err, stamp.ErrSpecNotFound), errors.Is(err, stamp.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": "No documents found for this customer."})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected server error occurred."})
	}
}
