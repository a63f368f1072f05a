package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

var ErrLeadMancante = errors.New("lead mancante")

// ConvertiLead converte un lead in cliente, riusando un cliente
// esistente quando la dedup trova una corrispondenza:
//
//  1. match per email (case-insensitive), poi per telefono esatto;
//     a parità vince l'id più basso
//  2. nessun match: nuovo cliente "active" con l'anagrafica del lead
//  3. il lead viene marcato convertito, collegato al cliente e forzato
//     a stato positivo
//
// Tutto avviene in un'unica transazione. Richiamarla su un lead già
// convertito è sicuro: la dedup ritrova lo stesso cliente.
func ConvertiLead(db *gorm.DB, lead *models.Lead, utente *models.Utente) (*models.Cliente, error) {
	if lead == nil {
		return nil, ErrLeadMancante
	}

	var cliente models.Cliente
	err := db.Transaction(func(tx *gorm.DB) error {
		// Lock di riga sul lead: due conversioni concorrenti dello
		// stesso lead non devono creare due clienti. sqlite non ha
		// FOR UPDATE e serializza comunque le scritture.
		locked := tx
		if tx.Dialector.Name() == "postgres" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := locked.First(lead, lead.ID).Error; err != nil {
			return fmt.Errorf("lettura lead %d: %w", lead.ID, err)
		}

		trovato := false
		if lead.Email != "" {
			err := tx.Where("LOWER(email) = LOWER(?)", lead.Email).
				Order("id asc").First(&cliente).Error
			switch {
			case err == nil:
				trovato = true
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		if !trovato && lead.Telefono != "" {
			err := tx.Where("telefono = ?", lead.Telefono).
				Order("id asc").First(&cliente).Error
			switch {
			case err == nil:
				trovato = true
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		if !trovato {
			cliente = models.Cliente{
				Nome:     lead.Nome,
				Cognome:  lead.Cognome,
				Email:    lead.Email,
				Telefono: lead.Telefono,
				Stato:    models.ClienteAttivo,
			}
			if err := tx.Create(&cliente).Error; err != nil {
				return fmt.Errorf("creazione cliente: %w", err)
			}
		}

		now := time.Now()
		lead.Convertito = true
		lead.ConvertitoIl = &now
		lead.ConvertitoDaID = nil
		if utente != nil && utente.ID != 0 {
			lead.ConvertitoDaID = &utente.ID
		}
		lead.ConvertitoClienteID = &cliente.ID
		lead.Stato = models.LeadPositivo

		return tx.Model(lead).
			Select("convertito", "convertito_il", "convertito_da_id", "convertito_cliente_id", "stato").
			Updates(map[string]any{
				"convertito":            lead.Convertito,
				"convertito_il":         lead.ConvertitoIl,
				"convertito_da_id":      lead.ConvertitoDaID,
				"convertito_cliente_id": lead.ConvertitoClienteID,
				"stato":                 lead.Stato,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &cliente, nil
}
