package models

import "time"

// Nota è un'annotazione libera degli operatori su un cliente.
type Nota struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ClienteID uint    `gorm:"not null;index" json:"cliente_id"`
	Cliente   Cliente `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Autore   string    `gorm:"column:autore_nome;size:100" json:"autore"`
	Testo    string    `gorm:"type:text;not null" json:"testo"`
	CreataIl time.Time `gorm:"autoCreateTime;column:creata_il" json:"creata_il"`
}

func (Nota) TableName() string { return "note" }
