package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucaromano98/debiti-stop/internal/middleware"
	"github.com/lucaromano98/debiti-stop/internal/models"
	"github.com/lucaromano98/debiti-stop/internal/query"
	"github.com/lucaromano98/debiti-stop/internal/services"
)

type leadRequest struct {
	Nome                 string     `json:"nome"`
	Cognome              string     `json:"cognome"`
	Telefono             string     `json:"telefono"`
	Email                string     `json:"email"`
	Stato                string     `json:"stato"`
	AppuntamentoPrevisto *time.Time `json:"appuntamento_previsto"`
	MotivazioneNegativa  string     `json:"motivazione_negativa"`
	NoteOperatori        string     `json:"note_operatori"`
	Provenienza          string     `json:"provenienza"`
	ConsulenteID         *uint      `json:"consulente_id"`
	PrimoContatto        *time.Time `json:"primo_contatto"`
	InAcquisizione       bool       `json:"in_acquisizione"`
	RichiamareIl         *time.Time `json:"richiamare_il"`
}

func (r *leadRequest) valida() map[string]string {
	v := map[string]string{}
	if strings.TrimSpace(r.Nome) == "" {
		v["nome"] = "obbligatorio"
	}
	if strings.TrimSpace(r.Cognome) == "" {
		v["cognome"] = "obbligatorio"
	}
	if r.Stato != "" && !models.StatoLead(r.Stato).Valido() {
		v["stato"] = "valore non ammesso"
	}
	if r.Provenienza != "" && !models.Provenienza(r.Provenienza).Valida() {
		v["provenienza"] = "valore non ammesso"
	}
	return v
}

func (r *leadRequest) applica(lead *models.Lead) {
	lead.Nome = strings.TrimSpace(r.Nome)
	lead.Cognome = strings.TrimSpace(r.Cognome)
	lead.Telefono = strings.TrimSpace(r.Telefono)
	lead.Email = strings.TrimSpace(r.Email)
	if r.Stato != "" {
		lead.Stato = models.StatoLead(r.Stato)
	} else if lead.Stato == "" {
		lead.Stato = models.LeadInCorso
	}
	lead.AppuntamentoPrevisto = r.AppuntamentoPrevisto
	lead.MotivazioneNegativa = r.MotivazioneNegativa
	lead.NoteOperatori = r.NoteOperatori
	lead.Provenienza = models.Provenienza(r.Provenienza)
	lead.ConsulenteID = r.ConsulenteID
	lead.PrimoContatto = r.PrimoContatto
	lead.InAcquisizione = r.InAcquisizione
	lead.RichiamareIl = r.RichiamareIl
}

func (h *Handler) ListLead(c *gin.Context) {
	now := time.Now()
	f := query.ParseLeadFilter(c.Request.URL.Query(), now)

	var leads []models.Lead
	total, err := paginate(f.Apply(h.DB, now), f.Page, f.Per, &leads)
	if err != nil {
		h.internalError(c, "lista lead", err)
		return
	}

	c.JSON(http.StatusOK, paginated{Items: leads, Total: total, Page: f.Page, Per: f.Per})
}

// CreaLead salva il lead; se nasce già con esito positivo viene
// convertito subito in cliente.
func (h *Handler) CreaLead(c *gin.Context) {
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}
	if v := req.valida(); len(v) > 0 {
		violazioni(c, v)
		return
	}

	var lead models.Lead
	req.applica(&lead)
	if err := h.DB.Create(&lead).Error; err != nil {
		h.internalError(c, "crea lead", err)
		return
	}

	if lead.Stato == models.LeadPositivo {
		cliente, err := services.ConvertiLead(h.DB, &lead, middleware.CurrentUser(c))
		if err != nil {
			h.internalError(c, "conversione lead", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"lead": lead, "cliente": cliente})
		return
	}

	c.JSON(http.StatusCreated, lead)
}

func (h *Handler) DettaglioLead(c *gin.Context) {
	lead, ok := h.leadDaParam(c)
	if !ok {
		return
	}

	var schede []models.SchedaConsulenza
	h.DB.Where("lead_id = ?", lead.ID).Order("created_at desc").Find(&schede)

	c.JSON(http.StatusOK, gin.H{"lead": lead, "schede": schede})
}

func (h *Handler) AggiornaLead(c *gin.Context) {
	lead, ok := h.leadDaParam(c)
	if !ok {
		return
	}

	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}
	if v := req.valida(); len(v) > 0 {
		violazioni(c, v)
		return
	}

	req.applica(lead)
	if err := h.DB.Save(lead).Error; err != nil {
		h.internalError(c, "aggiorna lead", err)
		return
	}

	if lead.Stato == models.LeadPositivo {
		cliente, err := services.ConvertiLead(h.DB, lead, middleware.CurrentUser(c))
		if err != nil {
			h.internalError(c, "conversione lead", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lead": lead, "cliente": cliente})
		return
	}

	c.JSON(http.StatusOK, lead)
}

// ConvertiLead è la conversione esplicita, idempotente.
func (h *Handler) ConvertiLead(c *gin.Context) {
	lead, ok := h.leadDaParam(c)
	if !ok {
		return
	}

	cliente, err := services.ConvertiLead(h.DB, lead, middleware.CurrentUser(c))
	if err != nil {
		h.internalError(c, "conversione lead", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead, "cliente": cliente})
}

func (h *Handler) ArchiviaLead(c *gin.Context) {
	lead, ok := h.leadDaParam(c)
	if !ok {
		return
	}

	lead.IsArchiviato = true
	if err := h.DB.Model(lead).Select("is_archiviato").Updates(map[string]any{"is_archiviato": true}).Error; err != nil {
		h.internalError(c, "archivia lead", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "lead archiviato"})
}

// ToggleMessaggio inverte il flag "messaggio inviato".
func (h *Handler) ToggleMessaggio(c *gin.Context) {
	lead, ok := h.leadDaParam(c)
	if !ok {
		return
	}

	lead.MessaggioInviato = !lead.MessaggioInviato
	if err := h.DB.Model(lead).Select("messaggio_inviato").
		Updates(map[string]any{"messaggio_inviato": lead.MessaggioInviato}).Error; err != nil {
		h.internalError(c, "toggle messaggio", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// ToggleNoRisposta inverte "no risposta"; quando torna falso azzera
// anche "messaggio inviato".
func (h *Handler) ToggleNoRisposta(c *gin.Context) {
	lead, ok := h.leadDaParam(c)
	if !ok {
		return
	}

	lead.NoRisposta = !lead.NoRisposta
	update := map[string]any{"no_risposta": lead.NoRisposta}
	if !lead.NoRisposta {
		lead.MessaggioInviato = false
		update["messaggio_inviato"] = false
	}
	if err := h.DB.Model(lead).Select("no_risposta", "messaggio_inviato").
		Updates(update).Error; err != nil {
		h.internalError(c, "toggle no risposta", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *Handler) ToggleConsulenza(c *gin.Context) {
	lead, ok := h.leadDaParam(c)
	if !ok {
		return
	}

	lead.ConsulenzaEffettuata = !lead.ConsulenzaEffettuata
	if err := h.DB.Model(lead).Select("consulenza_effettuata").
		Updates(map[string]any{"consulenza_effettuata": lead.ConsulenzaEffettuata}).Error; err != nil {
		h.internalError(c, "toggle consulenza", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// leadDaParam carica il lead non archiviato indicato nel path.
func (h *Handler) leadDaParam(c *gin.Context) (*models.Lead, bool) {
	var lead models.Lead
	if err := h.DB.Where("is_archiviato = ?", false).First(&lead, paramID(c, "id")).Error; err != nil {
		notFound(c, "lead non trovato")
		return nil, false
	}
	return &lead, true
}
