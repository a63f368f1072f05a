package models

import "time"

type Ruolo string

const (
	RuoloAdmin     Ruolo = "admin"
	RuoloOperatore Ruolo = "operatore"
	RuoloLegale    Ruolo = "legale"
)

func (r Ruolo) Valido() bool {
	switch r {
	case RuoloAdmin, RuoloOperatore, RuoloLegale:
		return true
	}
	return false
}

// CanAccessPortal: tutti i ruoli interni vedono il portale.
func (r Ruolo) CanAccessPortal() bool { return r.Valido() }

// CanDelete: le operazioni distruttive restano riservate agli admin.
func (r Ruolo) CanDelete() bool { return r == RuoloAdmin }

type Utente struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Nome         string    `gorm:"size:100" json:"nome"`
	Cognome      string    `gorm:"size:100" json:"cognome"`
	Ruolo        Ruolo     `gorm:"type:varchar(20);not null;default:operatore" json:"ruolo"`
	CreatoIl     time.Time `gorm:"autoCreateTime;column:creato_il" json:"creato_il"`
}

func (Utente) TableName() string { return "utenti" }

// NomeCompleto replica get_full_name: "Nome Cognome" oppure lo username.
func (u *Utente) NomeCompleto() string {
	full := u.Nome
	if u.Cognome != "" {
		if full != "" {
			full += " "
		}
		full += u.Cognome
	}
	if full == "" {
		return u.Username
	}
	return full
}

// ApiToken autorizza l'accesso bearer all'API JSON.
type ApiToken struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	Token    string    `gorm:"uniqueIndex;size:64;not null" json:"token"`
	UtenteID uint      `gorm:"index;not null" json:"-"`
	Utente   Utente    `json:"-"`
	CreatoIl time.Time `gorm:"autoCreateTime;column:creato_il" json:"creato_il"`
}

func (ApiToken) TableName() string { return "api_token" }
