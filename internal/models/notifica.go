package models

import "time"

type TipoNotifica string

const (
	NotificaDocumento TipoNotifica = "documento"
	NotificaGenerica  TipoNotifica = "generica"
)

// PayloadNotifica è il dettaglio strutturato allegato alla notifica.
type PayloadNotifica struct {
	Count        int    `json:"count"`
	Subtitle     string `json:"subtitle,omitempty"`
	DocumentoID  *uint  `json:"documento_id"`
	DocumentoIDs []uint `json:"documento_ids"`
}

type Notifica struct {
	ID   uint         `gorm:"primaryKey" json:"id"`
	Tipo TipoNotifica `gorm:"type:varchar(20);default:generica" json:"tipo"`

	ActorID     *uint             `gorm:"index" json:"actor_id"`
	Actor       *Utente           `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL" json:"-"`
	ClienteID   *uint             `gorm:"index" json:"cliente_id"`
	Cliente     *Cliente          `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE" json:"-"`
	DocumentoID *uint             `json:"documento_id"`
	Documento   *DocumentoCliente `gorm:"foreignKey:DocumentoID;constraint:OnDelete:SET NULL" json:"-"`

	Testo     string          `gorm:"size:500" json:"testo"`
	Payload   PayloadNotifica `gorm:"serializer:json" json:"payload"`
	IsRead    bool            `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

func (Notifica) TableName() string { return "notifiche" }
