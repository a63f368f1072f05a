package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

func leadRoutes(h *Handler, u *models.Utente) *gin.Engine {
	r := nuovoRouter(comeUtente(u))
	r.GET("/lead", h.ListLead)
	r.POST("/lead", h.CreaLead)
	r.GET("/lead/:id", h.DettaglioLead)
	r.PUT("/lead/:id", h.AggiornaLead)
	r.POST("/lead/:id/converti", h.ConvertiLead)
	r.POST("/lead/:id/archivia", h.ArchiviaLead)
	r.POST("/lead/:id/toggle-messaggio", h.ToggleMessaggio)
	r.POST("/lead/:id/toggle-no-risposta", h.ToggleNoRisposta)
	r.POST("/lead/:id/toggle-consulenza", h.ToggleConsulenza)
	return r
}

func TestCreaLeadValidazione(t *testing.T) {
	h := setupHandler(t)
	r := leadRoutes(h, nil)

	w := doJSON(t, r, http.MethodPost, "/lead", map[string]any{
		"nome": "Luca", "cognome": "Neri", "stato": "forse", "provenienza": "radio",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Campi map[string]string `json:"campi"`
	}
	decodeJSON(t, w, &resp)
	require.Contains(t, resp.Campi, "stato")
	require.Contains(t, resp.Campi, "provenienza")
}

func TestCreaLeadDefaultInCorso(t *testing.T) {
	h := setupHandler(t)
	r := leadRoutes(h, nil)

	w := doJSON(t, r, http.MethodPost, "/lead", map[string]any{"nome": "Luca", "cognome": "Neri"})
	require.Equal(t, http.StatusCreated, w.Code)

	var lead models.Lead
	decodeJSON(t, w, &lead)
	require.Equal(t, models.LeadInCorso, lead.Stato)
	require.False(t, lead.Convertito)
}

func TestCreaLeadPositivoConverteSubito(t *testing.T) {
	h := setupHandler(t)
	operatore := utenteDiProva(t, h, models.RuoloOperatore)
	r := leadRoutes(h, operatore)

	w := doJSON(t, r, http.MethodPost, "/lead", map[string]any{
		"nome": "Luca", "cognome": "Neri", "email": "luca@example.com", "stato": "positivo",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Lead    models.Lead    `json:"lead"`
		Cliente models.Cliente `json:"cliente"`
	}
	decodeJSON(t, w, &resp)
	require.True(t, resp.Lead.Convertito)
	require.NotZero(t, resp.Cliente.ID)
	require.Equal(t, models.ClienteAttivo, resp.Cliente.Stato)
	require.NotNil(t, resp.Lead.ConvertitoDaID)
	require.Equal(t, operatore.ID, *resp.Lead.ConvertitoDaID)
}

func TestConvertiLeadEndpointIdempotente(t *testing.T) {
	h := setupHandler(t)
	r := leadRoutes(h, utenteDiProva(t, h, models.RuoloAdmin))

	lead := models.Lead{Nome: "Gino", Cognome: "Rossi", Email: "gino@example.com"}
	require.NoError(t, h.DB.Create(&lead).Error)

	var prima struct {
		Cliente models.Cliente `json:"cliente"`
	}
	w := doJSON(t, r, http.MethodPost, "/lead/1/converti", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &prima)

	var seconda struct {
		Cliente models.Cliente `json:"cliente"`
	}
	w = doJSON(t, r, http.MethodPost, "/lead/1/converti", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &seconda)

	require.Equal(t, prima.Cliente.ID, seconda.Cliente.ID)

	var n int64
	require.NoError(t, h.DB.Model(&models.Cliente{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestArchiviaLeadSparisceDalleListe(t *testing.T) {
	h := setupHandler(t)
	r := leadRoutes(h, nil)

	require.NoError(t, h.DB.Create(&models.Lead{Nome: "Luca", Cognome: "Neri"}).Error)

	w := doJSON(t, r, http.MethodPost, "/lead/1/archivia", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/lead/1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Total int64 `json:"total"`
	}
	w = doJSON(t, r, http.MethodGet, "/lead", nil)
	decodeJSON(t, w, &resp)
	require.Zero(t, resp.Total)
}

func TestToggleMessaggio(t *testing.T) {
	h := setupHandler(t)
	r := leadRoutes(h, nil)

	require.NoError(t, h.DB.Create(&models.Lead{Nome: "Luca", Cognome: "Neri"}).Error)

	w := doJSON(t, r, http.MethodPost, "/lead/1/toggle-messaggio", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lead models.Lead
	require.NoError(t, h.DB.First(&lead, 1).Error)
	require.True(t, lead.MessaggioInviato)

	w = doJSON(t, r, http.MethodPost, "/lead/1/toggle-messaggio", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, h.DB.First(&lead, 1).Error)
	require.False(t, lead.MessaggioInviato)
}

func TestToggleNoRispostaAzzeraMessaggio(t *testing.T) {
	h := setupHandler(t)
	r := leadRoutes(h, nil)

	require.NoError(t, h.DB.Create(&models.Lead{
		Nome: "Luca", Cognome: "Neri", NoRisposta: true, MessaggioInviato: true,
	}).Error)

	// spegnere no_risposta azzera anche messaggio_inviato
	w := doJSON(t, r, http.MethodPost, "/lead/1/toggle-no-risposta", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lead models.Lead
	require.NoError(t, h.DB.First(&lead, 1).Error)
	require.False(t, lead.NoRisposta)
	require.False(t, lead.MessaggioInviato)

	// riaccenderlo non tocca messaggio_inviato
	w = doJSON(t, r, http.MethodPost, "/lead/1/toggle-no-risposta", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, h.DB.First(&lead, 1).Error)
	require.True(t, lead.NoRisposta)
	require.False(t, lead.MessaggioInviato)
}

func TestAggiornaLeadPositivoConverte(t *testing.T) {
	h := setupHandler(t)
	r := leadRoutes(h, nil)

	require.NoError(t, h.DB.Create(&models.Lead{Nome: "Sara", Cognome: "Blu", Telefono: "3400000001"}).Error)

	w := doJSON(t, r, http.MethodPut, "/lead/1", map[string]any{
		"nome": "Sara", "cognome": "Blu", "telefono": "3400000001", "stato": "positivo",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Lead    models.Lead    `json:"lead"`
		Cliente models.Cliente `json:"cliente"`
	}
	decodeJSON(t, w, &resp)
	require.True(t, resp.Lead.Convertito)
	require.Equal(t, "3400000001", resp.Cliente.Telefono)
}
