package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantdefender/internal/middleware"
)

type createScanRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

func (h HandlerSet) CreateScan(c *gin.Context) {
	var req createScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	scan, err := h.scans.Create(c.Request.Context(), middleware.UserID(c), req.ImageBase64)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, scan)
}

func (h HandlerSet) ListScans(c *gin.Context) {
	scans, err := h.scans.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, scans)
}

func (h HandlerSet) GetScan(c *gin.Context) {
	scan, err := h.scans.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, scan)
}
