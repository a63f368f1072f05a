package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucaromano98/debiti-stop/internal/middleware"
	"github.com/lucaromano98/debiti-stop/internal/models"
)

type schedaRequest struct {
	Obiettivo               string   `json:"obiettivo"`
	Occupazione             string   `json:"occupazione"`
	EsposizionePatrimoniale string   `json:"esposizione_patrimoniale"`
	EsposizioneFinanziaria  string   `json:"esposizione_finanziaria"`
	EsposizioneTotale       *float64 `json:"esposizione_totale"`
	HaCQS                   bool     `json:"ha_cqs"`
	HaEquitalia             bool     `json:"ha_equitalia"`
	Note                    string   `json:"note"`
}

func (r *schedaRequest) applica(s *models.SchedaConsulenza) {
	s.Obiettivo = r.Obiettivo
	s.Occupazione = r.Occupazione
	s.EsposizionePatrimoniale = r.EsposizionePatrimoniale
	s.EsposizioneFinanziaria = r.EsposizioneFinanziaria
	s.EsposizioneTotale = r.EsposizioneTotale
	s.HaCQS = r.HaCQS
	s.HaEquitalia = r.HaEquitalia
	s.Note = r.Note
}

// CreaSchedaCliente compila una scheda di consulenza per un cliente.
func (h *Handler) CreaSchedaCliente(c *gin.Context) {
	cliente, ok := h.clienteDaParam(c)
	if !ok {
		return
	}
	h.creaScheda(c, &cliente.ID, nil)
}

// CreaSchedaLead compila una scheda di consulenza per un lead.
func (h *Handler) CreaSchedaLead(c *gin.Context) {
	lead, ok := h.leadDaParam(c)
	if !ok {
		return
	}
	h.creaScheda(c, nil, &lead.ID)
}

func (h *Handler) creaScheda(c *gin.Context, clienteID, leadID *uint) {
	var req schedaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}

	scheda := models.SchedaConsulenza{ClienteID: clienteID, LeadID: leadID}
	req.applica(&scheda)
	if u := middleware.CurrentUser(c); u != nil {
		scheda.CompilataDaID = &u.ID
	}

	if err := h.DB.Create(&scheda).Error; err != nil {
		if errors.Is(err, models.ErrSchedaSenzaTarget) {
			violazioni(c, map[string]string{"target": err.Error()})
			return
		}
		h.internalError(c, "crea scheda", err)
		return
	}

	c.JSON(http.StatusCreated, scheda)
}

func (h *Handler) DettaglioScheda(c *gin.Context) {
	var scheda models.SchedaConsulenza
	if err := h.DB.First(&scheda, paramID(c, "id")).Error; err != nil {
		notFound(c, "scheda non trovata")
		return
	}
	c.JSON(http.StatusOK, scheda)
}

func (h *Handler) AggiornaScheda(c *gin.Context) {
	var scheda models.SchedaConsulenza
	if err := h.DB.First(&scheda, paramID(c, "id")).Error; err != nil {
		notFound(c, "scheda non trovata")
		return
	}

	var req schedaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}

	req.applica(&scheda)
	if err := h.DB.Save(&scheda).Error; err != nil {
		h.internalError(c, "aggiorna scheda", err)
		return
	}

	c.JSON(http.StatusOK, scheda)
}

// EliminaScheda: riservata agli admin, come l'eliminazione dei clienti.
func (h *Handler) EliminaScheda(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil || !u.Ruolo.CanDelete() {
		forbidden(c, "solo gli admin possono eliminare le schede")
		return
	}

	var scheda models.SchedaConsulenza
	if err := h.DB.First(&scheda, paramID(c, "id")).Error; err != nil {
		notFound(c, "scheda non trovata")
		return
	}

	if err := h.DB.Delete(&scheda).Error; err != nil {
		h.internalError(c, "elimina scheda", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "scheda eliminata"})
}
