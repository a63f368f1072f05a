package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSchedaSenzaTarget = errors.New("la scheda deve riferirsi a un cliente oppure a un lead")

// SchedaConsulenza è il modulo di intake finanziario, legato in modo
// esclusivo a un cliente o a un lead.
type SchedaConsulenza struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClienteID *uint    `gorm:"index" json:"cliente_id"`
	Cliente   *Cliente `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	LeadID    *uint    `gorm:"index" json:"lead_id"`
	Lead      *Lead    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CompilataDaID *uint   `json:"compilata_da_id"`
	CompilataDa   *Utente `gorm:"foreignKey:CompilataDaID;constraint:OnDelete:SET NULL" json:"-"`

	Obiettivo               string   `gorm:"size:255" json:"obiettivo"`
	Occupazione             string   `gorm:"size:120" json:"occupazione"`
	EsposizionePatrimoniale string   `gorm:"type:text" json:"esposizione_patrimoniale"`
	EsposizioneFinanziaria  string   `gorm:"type:text" json:"esposizione_finanziaria"`
	EsposizioneTotale       *float64 `json:"esposizione_totale"`
	HaCQS                   bool     `gorm:"column:ha_cqs" json:"ha_cqs"` // cessione del quinto
	HaEquitalia             bool     `json:"ha_equitalia"`
	Note                    string   `gorm:"type:text" json:"note"`

	CreatedAt time.Time `json:"created_at"`
}

func (SchedaConsulenza) TableName() string { return "schede_consulenza" }

// BeforeSave: il target è obbligatorio e mutuamente esclusivo.
func (s *SchedaConsulenza) BeforeSave(tx *gorm.DB) error {
	if (s.ClienteID == nil) == (s.LeadID == nil) {
		return ErrSchedaSenzaTarget
	}
	return nil
}
