package models

import "time"

type StatoLead string

const (
	LeadInCorso  StatoLead = "in_corso"
	LeadNegativo StatoLead = "negativo"
	LeadPositivo StatoLead = "positivo"
)

func (s StatoLead) Valido() bool {
	switch s {
	case LeadInCorso, LeadNegativo, LeadPositivo:
		return true
	}
	return false
}

type Provenienza string

const (
	ProvenienzaTikTok      Provenienza = "tiktok"
	ProvenienzaMeta        Provenienza = "meta"
	ProvenienzaGoogle      Provenienza = "google"
	ProvenienzaPassaparola Provenienza = "passaparola"
)

func (p Provenienza) Valida() bool {
	switch p {
	case ProvenienzaTikTok, ProvenienzaMeta, ProvenienzaGoogle, ProvenienzaPassaparola:
		return true
	}
	return false
}

type Lead struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Nome     string `gorm:"size:100;not null" json:"nome"`
	Cognome  string `gorm:"size:100;not null" json:"cognome"`
	Telefono string `gorm:"size:20" json:"telefono"`
	Email    string `gorm:"size:254" json:"email"`

	Stato                StatoLead  `gorm:"type:varchar(20);default:in_corso;index" json:"stato"`
	AppuntamentoPrevisto *time.Time `gorm:"column:appuntamento_previsto" json:"appuntamento_previsto"`
	MotivazioneNegativa  string     `gorm:"type:text" json:"motivazione_negativa"`
	NoteOperatori        string     `gorm:"type:text" json:"note_operatori"`

	Provenienza   Provenienza `gorm:"type:varchar(20);default:''" json:"provenienza"`
	ConsulenteID  *uint       `gorm:"index" json:"consulente_id"`
	Consulente    *Consulente `gorm:"constraint:OnDelete:SET NULL" json:"consulente,omitempty"`
	PrimoContatto *time.Time  `gorm:"column:primo_contatto" json:"primo_contatto"`

	// Audit conversione / archiviazione
	Convertito          bool       `gorm:"index:idx_lead_convertito_archiviato" json:"convertito"`
	ConvertitoIl        *time.Time `gorm:"column:convertito_il" json:"convertito_il"`
	ConvertitoDaID      *uint      `gorm:"column:convertito_da_id" json:"convertito_da_id"`
	ConvertitoDa        *Utente    `gorm:"foreignKey:ConvertitoDaID;constraint:OnDelete:SET NULL" json:"-"`
	ConvertitoClienteID *uint      `gorm:"column:convertito_cliente_id" json:"convertito_cliente_id"`
	ConvertitoCliente   *Cliente   `gorm:"foreignKey:ConvertitoClienteID;constraint:OnDelete:SET NULL" json:"-"`
	IsArchiviato        bool       `gorm:"index:idx_lead_convertito_archiviato" json:"is_archiviato"`
	CreatoIl            time.Time  `gorm:"autoCreateTime;column:creato_il;index" json:"creato_il"`

	// Flag operativi
	ConsulenzaEffettuata bool       `json:"consulenza_effettuata"`
	NoRisposta           bool       `json:"no_risposta"`
	MessaggioInviato     bool       `json:"messaggio_inviato"`
	InAcquisizione       bool       `json:"in_acquisizione"`
	RichiamareIl         *time.Time `gorm:"column:richiamare_il" json:"richiamare_il"`
}

func (Lead) TableName() string { return "lead" }
