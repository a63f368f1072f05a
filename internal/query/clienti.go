package query

import (
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

var clienteSortMap = map[string]string{
	"nome":            "nome asc",
	"-nome":           "nome desc",
	"cognome":         "cognome asc",
	"-cognome":        "cognome desc",
	"data_creazione":  "data_creazione asc",
	"-data_creazione": "data_creazione desc",
}

const clienteSortDefault = "cognome asc"

// ClienteFilter è la versione validata dei parametri di lista clienti.
type ClienteFilter struct {
	Testo        string
	Stato        models.StatoCliente
	Dal          *time.Time
	Al           *time.Time
	ConDocumenti bool
	ConPratiche  bool
	Sort         string
	Per          int
	Page         int
}

func ParseClienteFilter(values url.Values) ClienteFilter {
	f := ClienteFilter{
		Testo: strings.TrimSpace(values.Get("q")),
		Sort:  clienteSortDefault,
		Per:   ParsePer(values),
		Page:  ParsePage(values),
	}
	if s := models.StatoCliente(strings.TrimSpace(values.Get("stato"))); s.Valido() {
		f.Stato = s
	}
	if d, ok := ParseData(values.Get("dal")); ok {
		f.Dal = &d
	}
	if d, ok := ParseData(values.Get("al")); ok {
		f.Al = &d
	}
	f.ConDocumenti = values.Get("has_docs") == "si"
	f.ConPratiche = values.Get("has_prat") == "si"
	if order, ok := clienteSortMap[strings.TrimSpace(values.Get("sort"))]; ok {
		f.Sort = order
	}
	return f
}

func (f ClienteFilter) Apply(db *gorm.DB) *gorm.DB {
	qs := db.Model(&models.Cliente{})

	if f.Testo != "" {
		like := "%" + strings.ToLower(f.Testo) + "%"
		qs = qs.Where(
			"LOWER(nome) LIKE ? OR LOWER(cognome) LIKE ? OR LOWER(email) LIKE ? OR LOWER(telefono) LIKE ?",
			like, like, like, like,
		)
	}
	if f.Stato != "" {
		qs = qs.Where("stato = ?", f.Stato)
	}
	if f.Dal != nil {
		qs = qs.Where("data_creazione >= ?", *f.Dal)
	}
	if f.Al != nil {
		qs = qs.Where("data_creazione < ?", giornoSuccessivo(*f.Al))
	}
	if f.ConDocumenti {
		qs = qs.Where("EXISTS (SELECT 1 FROM documenti_cliente d WHERE d.cliente_id = clienti.id)")
	}
	if f.ConPratiche {
		qs = qs.Where("EXISTS (SELECT 1 FROM pratiche p WHERE p.cliente_id = clienti.id)")
	}
	return qs.Order(f.Sort)
}
