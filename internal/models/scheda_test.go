package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

func TestSchedaRichiedeUnSoloTarget(t *testing.T) {
	db := setupDB(t)

	cliente := models.Cliente{Nome: "Anna", Cognome: "Bianchi"}
	require.NoError(t, db.Create(&cliente).Error)
	lead := models.Lead{Nome: "Luca", Cognome: "Neri"}
	require.NoError(t, db.Create(&lead).Error)

	senza := models.SchedaConsulenza{Obiettivo: "saldo e stralcio"}
	require.ErrorIs(t, db.Create(&senza).Error, models.ErrSchedaSenzaTarget)

	doppia := models.SchedaConsulenza{ClienteID: &cliente.ID, LeadID: &lead.ID}
	require.ErrorIs(t, db.Create(&doppia).Error, models.ErrSchedaSenzaTarget)

	perCliente := models.SchedaConsulenza{ClienteID: &cliente.ID, Obiettivo: "saldo e stralcio"}
	require.NoError(t, db.Create(&perCliente).Error)

	perLead := models.SchedaConsulenza{LeadID: &lead.ID, HaCQS: true}
	require.NoError(t, db.Create(&perLead).Error)
}

func TestRuoli(t *testing.T) {
	require.True(t, models.RuoloAdmin.CanDelete())
	require.False(t, models.RuoloOperatore.CanDelete())
	require.False(t, models.RuoloLegale.CanDelete())

	require.True(t, models.RuoloLegale.CanAccessPortal())
	require.False(t, models.Ruolo("ospite").Valido())
	require.False(t, models.Ruolo("ospite").CanAccessPortal())
}

func TestNomeCompleto(t *testing.T) {
	u := models.Utente{Username: "mrossi", Nome: "Mario", Cognome: "Rossi"}
	require.Equal(t, "Mario Rossi", u.NomeCompleto())

	soloUsername := models.Utente{Username: "mrossi"}
	require.Equal(t, "mrossi", soloUsername.NomeCompleto())

	soloCognome := models.Utente{Username: "mrossi", Cognome: "Rossi"}
	require.Equal(t, "Rossi", soloCognome.NomeCompleto())
}
