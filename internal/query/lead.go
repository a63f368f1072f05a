package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

// ordinamenti ammessi sulla lista lead; la chiave è il valore della
// request, il valore la clausola ORDER BY corrispondente.
var leadSortMap = map[string]string{
	"nome":                   "nome asc",
	"-nome":                  "nome desc",
	"cognome":                "cognome asc",
	"-cognome":               "cognome desc",
	"creato_il":              "creato_il asc",
	"-creato_il":             "creato_il desc",
	"appuntamento_previsto":  "appuntamento_previsto asc",
	"-appuntamento_previsto": "appuntamento_previsto desc",
	"richiamare_il":          "richiamare_il asc",
	"-richiamare_il":         "richiamare_il desc",
	"primo_contatto":         "primo_contatto asc",
	"-primo_contatto":        "primo_contatto desc",
	"provenienza":            "provenienza asc",
	"-provenienza":           "provenienza desc",
	"consulente":             "consulenti.nome asc",
	"-consulente":            "consulenti.nome desc",
}

const leadSortDefault = "creato_il desc"

// LeadFilter è la versione già validata dei parametri di lista lead.
type LeadFilter struct {
	Testo        string
	Stato        models.StatoLead
	Dal          *time.Time
	Al           *time.Time
	NoRisposta   bool
	MsgInviato   bool
	Acquisizione bool
	RichiamoDa   *time.Time
	RichiamoA    *time.Time
	Appt         string
	Provenienza  models.Provenienza
	ConsulenteID uint
	Sort         string // clausola già whitelisted
	Per          int
	Page         int
}

// ParseLeadFilter mappa la query string nel filtro chiuso. Tutto ciò
// che non supera la validazione viene ignorato o riportato al default.
func ParseLeadFilter(values url.Values, now time.Time) LeadFilter {
	f := LeadFilter{
		Testo: strings.TrimSpace(values.Get("q")),
		Sort:  leadSortDefault,
		Per:   ParsePer(values),
		Page:  ParsePage(values),
	}

	if s := models.StatoLead(strings.TrimSpace(values.Get("stato"))); s.Valido() {
		f.Stato = s
	}
	if d, ok := ParseData(values.Get("dal")); ok {
		f.Dal = &d
	}
	if d, ok := ParseData(values.Get("al")); ok {
		f.Al = &d
	}

	f.NoRisposta = values.Get("no_risposta") == "1"
	f.MsgInviato = values.Get("msg_inviato") == "1"
	f.Acquisizione = values.Get("in_acquisizione") == "1"

	if d, ok := ParseData(values.Get("richiamo_da")); ok {
		f.RichiamoDa = &d
	}
	if d, ok := ParseData(values.Get("richiamo_a")); ok {
		f.RichiamoA = &d
	}

	if appt := strings.TrimSpace(values.Get("appt")); appt != "" {
		if _, _, ok := AppuntamentoRange(appt, now); ok {
			f.Appt = appt
		}
	}
	if p := models.Provenienza(strings.TrimSpace(values.Get("provenienza"))); p.Valida() {
		f.Provenienza = p
	}
	if raw := strings.TrimSpace(values.Get("consulente")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			f.ConsulenteID = uint(id)
		}
	}
	if order, ok := leadSortMap[strings.TrimSpace(values.Get("sort"))]; ok {
		f.Sort = order
	}
	return f
}

// Apply costruisce la query sui lead non archiviati.
func (f LeadFilter) Apply(db *gorm.DB, now time.Time) *gorm.DB {
	qs := db.Model(&models.Lead{}).Where("lead.is_archiviato = ?", false)

	if f.Testo != "" {
		like := "%" + strings.ToLower(f.Testo) + "%"
		qs = qs.Where(
			"LOWER(lead.nome) LIKE ? OR LOWER(lead.cognome) LIKE ? OR LOWER(lead.email) LIKE ? OR LOWER(lead.telefono) LIKE ?",
			like, like, like, like,
		)
	}
	if f.Stato != "" {
		qs = qs.Where("lead.stato = ?", f.Stato)
	}
	if f.Dal != nil {
		qs = qs.Where("lead.creato_il >= ?", *f.Dal)
	}
	if f.Al != nil {
		qs = qs.Where("lead.creato_il < ?", giornoSuccessivo(*f.Al))
	}
	if f.NoRisposta {
		qs = qs.Where("lead.no_risposta = ?", true)
	}
	if f.MsgInviato {
		qs = qs.Where("lead.messaggio_inviato = ?", true)
	}
	if f.Acquisizione {
		qs = qs.Where("lead.in_acquisizione = ?", true)
	}
	if f.RichiamoDa != nil {
		qs = qs.Where("lead.richiamare_il >= ?", *f.RichiamoDa)
	}
	if f.RichiamoA != nil {
		qs = qs.Where("lead.richiamare_il < ?", giornoSuccessivo(*f.RichiamoA))
	}
	if f.Appt != "" {
		if start, end, ok := AppuntamentoRange(f.Appt, now); ok {
			qs = qs.Where("lead.appuntamento_previsto >= ? AND lead.appuntamento_previsto < ?",
				start, giornoSuccessivo(end))
		}
	}
	if f.Provenienza != "" {
		qs = qs.Where("lead.provenienza = ?", f.Provenienza)
	}
	if f.ConsulenteID != 0 {
		qs = qs.Where("lead.consulente_id = ?", f.ConsulenteID)
	}

	if strings.HasPrefix(f.Sort, "consulenti.") {
		qs = qs.Joins("LEFT JOIN consulenti ON consulenti.id = lead.consulente_id")
	}
	return qs.Order(f.Sort)
}
