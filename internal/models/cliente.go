package models

import (
	"fmt"
	"strings"
	"time"
)

type StatoCliente string

const (
	ClienteAttivo         StatoCliente = "active"
	ClienteNonAttivo      StatoCliente = "inactive"
	ClienteLegale         StatoCliente = "legal"
	ClienteIstanza        StatoCliente = "istanza"
	ClienteStragiudiziale StatoCliente = "stragiudiziale"
)

func (s StatoCliente) Valido() bool {
	switch s {
	case ClienteAttivo, ClienteNonAttivo, ClienteLegale, ClienteIstanza, ClienteStragiudiziale:
		return true
	}
	return false
}

type Cliente struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Nome     string `gorm:"size:100;not null" json:"nome"`
	Cognome  string `gorm:"size:100;not null" json:"cognome"`
	Email    string `gorm:"size:254" json:"email"`
	Telefono string `gorm:"size:20" json:"telefono"`

	Residenza             string `gorm:"type:text" json:"residenza"`
	EsperienzaFinanziaria string `gorm:"type:text" json:"esperienza_finanziaria"`
	Visure                string `gorm:"type:text" json:"visure"` // campo storico, solo lettura/scrittura libera
	Note                  string `gorm:"type:text" json:"note"`

	Stato         StatoCliente `gorm:"type:varchar(50);default:active;index" json:"stato"`
	DataCreazione time.Time    `gorm:"autoCreateTime;column:data_creazione" json:"data_creazione"`

	IstanzaVisibilita bool `json:"istanza_visibilita"`
	DocumentiInviati  bool `json:"documenti_inviati"`
	PeriziaInviata    bool `json:"perizia_inviata"`

	Documenti []DocumentoCliente `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE" json:"-"`
	Pratiche  []Pratica          `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE" json:"-"`
	NoteList  []Nota             `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE" json:"-"`
	Schede    []SchedaConsulenza `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Cliente) TableName() string { return "clienti" }

// Nominativo è l'etichetta usata nelle notifiche e negli elenchi.
func (c *Cliente) Nominativo() string {
	base := strings.TrimSpace(c.Nome + " " + c.Cognome)
	if base == "" {
		return fmt.Sprintf("Cliente #%d", c.ID)
	}
	return base
}
