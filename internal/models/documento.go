package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Categoria string

const (
	CategoriaAnagrafici          Categoria = "anagrafici"
	CategoriaSchedaConsulenza    Categoria = "scheda_consulenza"
	CategoriaContratti           Categoria = "contratti"
	CategoriaVisure              Categoria = "visure"
	CategoriaRiscontroIstanza    Categoria = "riscontro_istanza"
	CategoriaPropostaTransattiva Categoria = "proposta_transattiva"
	CategoriaDecretoIngiuntivo   Categoria = "decreto_ingiuntivo"
	CategoriaPrecetto            Categoria = "precetto"
	CategoriaPignoramento        Categoria = "pignoramento"
	CategoriaMandato             Categoria = "mandato"
	CategoriaOpposizione         Categoria = "opposizione"
	CategoriaPreventivi          Categoria = "preventivi"
	CategoriaAltro               Categoria = "altro"
	CategoriaProvvedimenti       Categoria = "provvedimento"
	CategoriaRichiestaIstanza    Categoria = "richiesta_istanza"
	CategoriaReclamo             Categoria = "reclamo"

	// Categorie legacy: leggibili sui dati storici, vietate in creazione.
	CategoriaPraticheLegacy Categoria = "pratiche"
	CategoriaLegaliLegacy   Categoria = "legali"
)

// CategoriaInfo descrive una voce della tassonomia documenti.
type CategoriaInfo struct {
	Codice Categoria `json:"codice"`
	Label  string    `json:"label"`
	Legacy bool      `json:"legacy"`
}

// CategorieDocumento è la tassonomia completa, voci legacy incluse.
var CategorieDocumento = []CategoriaInfo{
	{CategoriaAnagrafici, "Documenti anagrafici", false},
	{CategoriaSchedaConsulenza, "Scheda Consulenza", false},
	{CategoriaContratti, "Stragiudiziario", false},
	{CategoriaVisure, "Visure", false},
	{CategoriaRiscontroIstanza, "Riscontro Istanza", false},
	{CategoriaPropostaTransattiva, "Proposta transattiva", false},
	{CategoriaDecretoIngiuntivo, "Decreto ingiuntivo", false},
	{CategoriaPrecetto, "Precetto", false},
	{CategoriaPignoramento, "Pignoramento", false},
	{CategoriaMandato, "Mandato", false},
	{CategoriaOpposizione, "Opposizione", false},
	{CategoriaPreventivi, "Preventivi", false},
	{CategoriaAltro, "Altro", false},
	{CategoriaProvvedimenti, "Provvedimenti", false},
	{CategoriaRichiestaIstanza, "Richiesta Istanza", false},
	{CategoriaReclamo, "Reclamo", false},
	{CategoriaPraticheLegacy, "LEGACY – Pratiche", true},
	{CategoriaLegaliLegacy, "LEGACY – Atti legali", true},
}

var ErrCategoriaLegacy = errors.New("categoria legacy non utilizzabile per nuovi caricamenti")

func (c Categoria) Info() (CategoriaInfo, bool) {
	for _, info := range CategorieDocumento {
		if info.Codice == c {
			return info, true
		}
	}
	return CategoriaInfo{}, false
}

// Valida: vera per qualunque voce della tassonomia, legacy comprese.
func (c Categoria) Valida() bool {
	_, ok := c.Info()
	return ok
}

func (c Categoria) Legacy() bool {
	info, ok := c.Info()
	return ok && info.Legacy
}

// Label ritorna l'etichetta leggibile, o il codice se sconosciuto.
func (c Categoria) Label() string {
	if info, ok := c.Info(); ok {
		return info.Label
	}
	return string(c)
}

type DocumentoCliente struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ClienteID uint    `gorm:"not null;index:idx_doc_cliente_categoria;index:idx_doc_cliente_caricato" json:"cliente_id"`
	Cliente   Cliente `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Categoria Categoria `gorm:"type:varchar(32);default:anagrafici;index:idx_doc_cliente_categoria" json:"categoria"`

	// Percorso nello storage: client_<id>/<categoria>/<ts>_<slug>.<ext>
	FilePath    string `gorm:"size:512;not null" json:"file_path"`
	NomeFile    string `gorm:"size:255" json:"nome_file"`
	Descrizione string `gorm:"size:255" json:"descrizione"`

	CaricatoIl time.Time `gorm:"autoCreateTime;column:caricato_il;index:idx_doc_cliente_caricato" json:"caricato_il"`
}

func (DocumentoCliente) TableName() string { return "documenti_cliente" }

// BeforeCreate blocca le nuove righe con categoria legacy; le righe già
// salvate restano modificabili.
func (d *DocumentoCliente) BeforeCreate(tx *gorm.DB) error {
	if d.Categoria.Legacy() {
		return ErrCategoriaLegacy
	}
	return nil
}
