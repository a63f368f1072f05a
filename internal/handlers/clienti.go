package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/middleware"
	"github.com/lucaromano98/debiti-stop/internal/models"
	"github.com/lucaromano98/debiti-stop/internal/query"
)

type clienteRequest struct {
	Nome                  string `json:"nome"`
	Cognome               string `json:"cognome"`
	Email                 string `json:"email"`
	Telefono              string `json:"telefono"`
	Residenza             string `json:"residenza"`
	EsperienzaFinanziaria string `json:"esperienza_finanziaria"`
	Visure                string `json:"visure"`
	Note                  string `json:"note"`
	Stato                 string `json:"stato"`
	IstanzaVisibilita     bool   `json:"istanza_visibilita"`
	DocumentiInviati      bool   `json:"documenti_inviati"`
	PeriziaInviata        bool   `json:"perizia_inviata"`
}

func (r *clienteRequest) valida() map[string]string {
	v := map[string]string{}
	if strings.TrimSpace(r.Nome) == "" {
		v["nome"] = "obbligatorio"
	}
	if strings.TrimSpace(r.Cognome) == "" {
		v["cognome"] = "obbligatorio"
	}
	if r.Stato != "" && !models.StatoCliente(r.Stato).Valido() {
		v["stato"] = "valore non ammesso"
	}
	return v
}

func (r *clienteRequest) applica(cliente *models.Cliente) {
	cliente.Nome = strings.TrimSpace(r.Nome)
	cliente.Cognome = strings.TrimSpace(r.Cognome)
	cliente.Email = strings.TrimSpace(r.Email)
	cliente.Telefono = strings.TrimSpace(r.Telefono)
	cliente.Residenza = r.Residenza
	cliente.EsperienzaFinanziaria = r.EsperienzaFinanziaria
	cliente.Visure = r.Visure
	cliente.Note = r.Note
	if r.Stato != "" {
		cliente.Stato = models.StatoCliente(r.Stato)
	} else if cliente.Stato == "" {
		cliente.Stato = models.ClienteAttivo
	}
	cliente.IstanzaVisibilita = r.IstanzaVisibilita
	cliente.DocumentiInviati = r.DocumentiInviati
	cliente.PeriziaInviata = r.PeriziaInviata

	// perizia inviata implica cliente attivo
	if cliente.PeriziaInviata && cliente.Stato != models.ClienteAttivo {
		cliente.Stato = models.ClienteAttivo
	}
}

func (h *Handler) ListClienti(c *gin.Context) {
	f := query.ParseClienteFilter(c.Request.URL.Query())

	var clienti []models.Cliente
	total, err := paginate(f.Apply(h.DB), f.Page, f.Per, &clienti)
	if err != nil {
		h.internalError(c, "lista clienti", err)
		return
	}

	c.JSON(http.StatusOK, paginated{Items: clienti, Total: total, Page: f.Page, Per: f.Per})
}

// ExportClientiXLSX esporta la lista filtrata (non paginata) in xlsx.
func (h *Handler) ExportClientiXLSX(c *gin.Context) {
	f := query.ParseClienteFilter(c.Request.URL.Query())

	var clienti []models.Cliente
	if err := f.Apply(h.DB).Find(&clienti).Error; err != nil {
		h.internalError(c, "export clienti", err)
		return
	}

	xf := excelize.NewFile()
	defer xf.Close()
	sheet := xf.GetSheetName(0)

	header := []any{"Nome", "Cognome", "Email", "Telefono", "Stato", "Data creazione"}
	_ = xf.SetSheetRow(sheet, "A1", &header)
	for i, cl := range clienti {
		row := []any{
			cl.Nome, cl.Cognome, cl.Email, cl.Telefono,
			string(cl.Stato), cl.DataCreazione.Format("2006-01-02"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		_ = xf.SetSheetRow(sheet, cell, &row)
	}

	buf, err := xf.WriteToBuffer()
	if err != nil {
		h.internalError(c, "export clienti", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="clienti.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) CreaCliente(c *gin.Context) {
	var req clienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}
	if v := req.valida(); len(v) > 0 {
		violazioni(c, v)
		return
	}

	var cliente models.Cliente
	req.applica(&cliente)

	if err := h.DB.Create(&cliente).Error; err != nil {
		h.internalError(c, "crea cliente", err)
		return
	}

	c.JSON(http.StatusCreated, cliente)
}

func (h *Handler) DettaglioCliente(c *gin.Context) {
	id := paramID(c, "id")
	var cliente models.Cliente
	if err := h.DB.First(&cliente, id).Error; err != nil {
		notFound(c, "cliente non trovato")
		return
	}

	var documenti []models.DocumentoCliente
	h.DB.Where("cliente_id = ?", id).Order("caricato_il desc").Find(&documenti)
	docsPerCategoria := map[string][]models.DocumentoCliente{}
	for _, d := range documenti {
		key := string(d.Categoria)
		docsPerCategoria[key] = append(docsPerCategoria[key], d)
	}

	var pratiche []models.Pratica
	h.DB.Where("cliente_id = ?", id).Order("data_creazione desc").Find(&pratiche)

	var note []models.Nota
	h.DB.Where("cliente_id = ?", id).Order("creata_il desc").Find(&note)

	var schede []models.SchedaConsulenza
	h.DB.Where("cliente_id = ?", id).Order("created_at desc").Find(&schede)

	c.JSON(http.StatusOK, gin.H{
		"cliente":   cliente,
		"documenti": docsPerCategoria,
		"pratiche":  pratiche,
		"note":      note,
		"schede":    schede,
	})
}

func (h *Handler) AggiornaCliente(c *gin.Context) {
	id := paramID(c, "id")
	var cliente models.Cliente
	if err := h.DB.First(&cliente, id).Error; err != nil {
		notFound(c, "cliente non trovato")
		return
	}

	var req clienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "dati non validi")
		return
	}
	if v := req.valida(); len(v) > 0 {
		violazioni(c, v)
		return
	}

	req.applica(&cliente)
	if err := h.DB.Save(&cliente).Error; err != nil {
		h.internalError(c, "aggiorna cliente", err)
		return
	}

	c.JSON(http.StatusOK, cliente)
}

// EliminaCliente rimuove il cliente e tutto ciò che possiede. Solo admin.
func (h *Handler) EliminaCliente(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil || !u.Ruolo.CanDelete() {
		forbidden(c, "solo gli admin possono eliminare clienti")
		return
	}

	id := paramID(c, "id")
	var cliente models.Cliente
	if err := h.DB.First(&cliente, id).Error; err != nil {
		notFound(c, "cliente non trovato")
		return
	}

	var documenti []models.DocumentoCliente
	h.DB.Where("cliente_id = ?", id).Find(&documenti)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.Notifica{}, &models.SchedaConsulenza{}, &models.Nota{},
			&models.Pratica{}, &models.DocumentoCliente{},
		} {
			if err := tx.Where("cliente_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&cliente).Error
	})
	if err != nil {
		h.internalError(c, "elimina cliente", err)
		return
	}

	// pulizia best-effort dello storage
	if h.Store != nil {
		for _, d := range documenti {
			if err := h.Store.Delete(d.FilePath); err != nil {
				h.Log.Warn("file non rimosso dallo storage", zap.String("path", d.FilePath), zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"detail": "cliente eliminato"})
}
