package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

// ListConsulenti: i consulenti attivi, per i filtri della lista lead.
func (h *Handler) ListConsulenti(c *gin.Context) {
	var consulenti []models.Consulente
	if err := h.DB.Where("is_active = ?", true).Order("nome asc").Find(&consulenti).Error; err != nil {
		h.internalError(c, "lista consulenti", err)
		return
	}
	c.JSON(http.StatusOK, consulenti)
}

func (h *Handler) CreaConsulente(c *gin.Context) {
	var req struct {
		Nome string `json:"nome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Nome) == "" {
		violazioni(c, map[string]string{"nome": "obbligatorio"})
		return
	}

	consulente := models.Consulente{Nome: strings.TrimSpace(req.Nome), IsActive: true}
	if err := h.DB.Create(&consulente).Error; err != nil {
		h.internalError(c, "crea consulente", err)
		return
	}

	c.JSON(http.StatusCreated, consulente)
}
