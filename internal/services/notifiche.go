package services

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

// NotificaDocumento descrive un caricamento da notificare. Documento può
// essere nil nei caricamenti multipli; in quel caso DocumentoIDs elenca
// le righe create.
type NotificaDocumento struct {
	Actor          *models.Utente
	Cliente        *models.Cliente
	Documento      *models.DocumentoCliente
	Count          int
	CategoriaLabel string
	Subtitle       string
	DocumentoIDs   []uint
}

// TestoNotificaDocumento costruisce il testo leggibile:
// "<attore> ha caricato <un file|N file>( (<categoria>))? in <cliente>".
func TestoNotificaDocumento(n NotificaDocumento) string {
	actorName := "Qualcuno"
	if n.Actor != nil {
		if full := n.Actor.NomeCompleto(); full != "" {
			actorName = full
		}
	}

	cliLabel := "cliente sconosciuto"
	if n.Cliente != nil {
		cliLabel = n.Cliente.Nominativo()
	}

	catLabel := n.CategoriaLabel
	if catLabel == "" && n.Documento != nil {
		catLabel = n.Documento.Categoria.Label()
	}

	count := n.Count
	if count <= 0 {
		count = 1
	}
	filePart := "un file"
	if count > 1 {
		filePart = fmt.Sprintf("%d file", count)
	}
	catPart := ""
	if catLabel != "" {
		catPart = fmt.Sprintf(" (%s)", catLabel)
	}

	return fmt.Sprintf("%s ha caricato %s%s in %s", actorName, filePart, catPart, cliLabel)
}

// NotificaDocumentoCaricato persiste la notifica di caricamento.
// Contratto fire-and-forget: qualunque errore di persistenza viene
// loggato e assorbito, il flusso di upload non deve mai fallire per
// colpa di una notifica.
func NotificaDocumentoCaricato(db *gorm.DB, log *zap.Logger, n NotificaDocumento) {
	count := n.Count
	if count <= 0 {
		count = 1
	}

	notifica := models.Notifica{
		Tipo:  models.NotificaDocumento,
		Testo: TestoNotificaDocumento(n),
		Payload: models.PayloadNotifica{
			Count:        count,
			Subtitle:     n.Subtitle,
			DocumentoIDs: n.DocumentoIDs,
		},
	}
	if notifica.Payload.DocumentoIDs == nil {
		notifica.Payload.DocumentoIDs = []uint{}
	}
	if n.Actor != nil && n.Actor.ID != 0 {
		notifica.ActorID = &n.Actor.ID
	}
	if n.Cliente != nil && n.Cliente.ID != 0 {
		notifica.ClienteID = &n.Cliente.ID
	}
	if n.Documento != nil && n.Documento.ID != 0 {
		notifica.DocumentoID = &n.Documento.ID
		notifica.Payload.DocumentoID = &n.Documento.ID
	}

	if err := db.Create(&notifica).Error; err != nil {
		if log != nil {
			log.Warn("notifica documento non salvata", zap.Error(err))
		}
	}
}
