package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lucaromano98/debiti-stop/internal/middleware"
	"github.com/lucaromano98/debiti-stop/internal/models"
)

type notaRequest struct {
	Testo string `json:"testo"`
}

func (h *Handler) CreaNota(c *gin.Context) {
	cliente, ok := h.clienteDaParam(c)
	if !ok {
		return
	}

	var req notaRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Testo) == "" {
		violazioni(c, map[string]string{"testo": "obbligatorio"})
		return
	}

	nota := models.Nota{ClienteID: cliente.ID, Testo: req.Testo}
	if u := middleware.CurrentUser(c); u != nil {
		nota.Autore = u.NomeCompleto()
	}

	if err := h.DB.Create(&nota).Error; err != nil {
		h.internalError(c, "crea nota", err)
		return
	}

	c.JSON(http.StatusCreated, nota)
}

func (h *Handler) AggiornaNota(c *gin.Context) {
	var nota models.Nota
	if err := h.DB.First(&nota, paramID(c, "id")).Error; err != nil {
		notFound(c, "nota non trovata")
		return
	}

	var req notaRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Testo) == "" {
		violazioni(c, map[string]string{"testo": "obbligatorio"})
		return
	}

	nota.Testo = req.Testo
	if err := h.DB.Save(&nota).Error; err != nil {
		h.internalError(c, "aggiorna nota", err)
		return
	}

	c.JSON(http.StatusOK, nota)
}

func (h *Handler) EliminaNota(c *gin.Context) {
	var nota models.Nota
	if err := h.DB.First(&nota, paramID(c, "id")).Error; err != nil {
		notFound(c, "nota non trovata")
		return
	}

	if err := h.DB.Delete(&nota).Error; err != nil {
		h.internalError(c, "elimina nota", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "nota eliminata", "cliente_id": nota.ClienteID})
}
