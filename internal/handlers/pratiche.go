package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

type praticaRequest struct {
	Titolo        string   `json:"titolo"`
	Descrizione   string   `json:"descrizione"`
	Importo       *float64 `json:"importo"`
	PraticaAttiva *bool    `json:"pratica_attiva"`
}

func (r *praticaRequest) applica(p *models.Pratica) {
	p.Titolo = r.Titolo
	p.Descrizione = r.Descrizione
	p.Importo = r.Importo
	if r.PraticaAttiva != nil {
		p.PraticaAttiva = *r.PraticaAttiva
	}
}

func (h *Handler) CreaPratica(c *gin.Context) {
	cliente, ok := h.clienteDaParam(c)
	if !ok {
		return
	}

	var req praticaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}

	pratica := models.Pratica{ClienteID: cliente.ID, PraticaAttiva: true}
	req.applica(&pratica)

	if err := h.DB.Create(&pratica).Error; err != nil {
		h.internalError(c, "crea pratica", err)
		return
	}

	c.JSON(http.StatusCreated, pratica)
}

func (h *Handler) AggiornaPratica(c *gin.Context) {
	var pratica models.Pratica
	if err := h.DB.First(&pratica, paramID(c, "id")).Error; err != nil {
		notFound(c, "pratica non trovata")
		return
	}

	var req praticaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}

	req.applica(&pratica)
	if err := h.DB.Save(&pratica).Error; err != nil {
		h.internalError(c, "aggiorna pratica", err)
		return
	}

	c.JSON(http.StatusOK, pratica)
}

func (h *Handler) EliminaPratica(c *gin.Context) {
	var pratica models.Pratica
	if err := h.DB.First(&pratica, paramID(c, "id")).Error; err != nil {
		notFound(c, "pratica non trovata")
		return
	}

	if err := h.DB.Delete(&pratica).Error; err != nil {
		h.internalError(c, "elimina pratica", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "pratica eliminata", "cliente_id": pratica.ClienteID})
}
