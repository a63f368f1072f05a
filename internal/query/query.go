// Package query traduce i parametri di lista (filtri, ordinamento,
// paginazione) in clausole gorm. I valori grezzi della request non
// raggiungono mai l'ORM: ogni sort passa da una whitelist chiusa e i
// parametri fuori range decadono sul default.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	PerDefault = 20
	PerMax     = 100
)

// ParsePer clampa il page size: [1, PerMax], default su valore assente
// o non numerico.
func ParsePer(values url.Values) int {
	raw := strings.TrimSpace(values.Get("per"))
	if raw == "" {
		return PerDefault
	}
	per, err := strconv.Atoi(raw)
	if err != nil {
		return PerDefault
	}
	if per < 1 {
		return 1
	}
	if per > PerMax {
		return PerMax
	}
	return per
}

// ParsePage ritorna il numero di pagina (>=1).
func ParsePage(values url.Values) int {
	page, err := strconv.Atoi(strings.TrimSpace(values.Get("page")))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseData accetta "YYYY-MM-DD" oppure "DD/MM/YYYY".
func ParseData(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// giornoSuccessivo è il limite superiore esclusivo per i filtri "fino al".
func giornoSuccessivo(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// AppuntamentoRange ritorna l'intervallo di date (inclusivo) per i
// quick filter sugli appuntamenti:
//   - today / tomorrow: il singolo giorno
//   - next3: da domani a base+3, oggi escluso
//   - next7: da oggi a base+7, oggi incluso
func AppuntamentoRange(key string, base time.Time) (time.Time, time.Time, bool) {
	d := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
	switch key {
	case "today":
		return d, d, true
	case "tomorrow":
		t := d.AddDate(0, 0, 1)
		return t, t, true
	case "next3":
		return d.AddDate(0, 0, 1), d.AddDate(0, 0, 3), true
	case "next7":
		return d, d.AddDate(0, 0, 7), true
	}
	return time.Time{}, time.Time{}, false
}
