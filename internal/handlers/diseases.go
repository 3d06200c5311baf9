package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantdefender/internal/catalog"
)

func (h HandlerSet) ListDiseases(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Diseases())
}
