package models

import "time"

// Pratica è il fascicolo economico/legale di un cliente.
type Pratica struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ClienteID uint    `gorm:"not null;index" json:"cliente_id"`
	Cliente   Cliente `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Titolo        string   `gorm:"size:200" json:"titolo"`
	Descrizione   string   `gorm:"type:text" json:"descrizione"`
	Importo       *float64 `json:"importo"`
	PraticaAttiva bool     `gorm:"default:true" json:"pratica_attiva"`

	DataCreazione time.Time `gorm:"autoCreateTime;column:data_creazione" json:"data_creazione"`
	AggiornataIl  time.Time `gorm:"autoUpdateTime;column:aggiornata_il" json:"aggiornata_il"`
}

func (Pratica) TableName() string { return "pratiche" }
