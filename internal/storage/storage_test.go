package storage

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Visura Camerale 2026": "visura-camerale-2026",
		"contratto__FINALE":    "contratto-finale",
		"  --spazi--  ":        "spazi",
		"già_firmato":          "gi-firmato",
		"!!!":                  "",
	}
	for in, out := range cases {
		require.Equal(t, out, Slug(in), "slug di %q", in)
	}
}

func TestValidaEstensione(t *testing.T) {
	require.NoError(t, ValidaEstensione("contratto.pdf"))
	require.NoError(t, ValidaEstensione("scansione.JPEG"))
	require.NoError(t, ValidaEstensione("foto.Png"))

	require.ErrorIs(t, ValidaEstensione("malware.exe"), ErrEstensioneNonAmmessa)
	require.ErrorIs(t, ValidaEstensione("archivio.zip"), ErrEstensioneNonAmmessa)
	require.ErrorIs(t, ValidaEstensione("senza_estensione"), ErrEstensioneNonAmmessa)
}

func TestPercorsoDocumento(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	got := PercorsoDocumento(42, models.CategoriaVisure, "Visura Camerale.PDF", now)
	want := fmt.Sprintf("client_42/visure/%d_visura-camerale.pdf", now.Unix())
	require.Equal(t, want, got)
}

func TestLocaleRoundTrip(t *testing.T) {
	l := NewLocale(t.TempDir())
	rel := "client_1/visure/1_visura.pdf"

	require.NoError(t, l.Save(rel, strings.NewReader("contenuto pdf")))

	rc, err := l.Open(rel)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	require.Equal(t, "contenuto pdf", string(data))

	require.NoError(t, l.Delete(rel))
	_, err = l.Open(rel)
	require.Error(t, err)

	// cancellare due volte non è un errore
	require.NoError(t, l.Delete(rel))
}

func TestLocaleRifiutaPercorsiFuoriRadice(t *testing.T) {
	l := NewLocale(t.TempDir())

	require.Error(t, l.Save("../fuori.pdf", strings.NewReader("x")))
	_, err := l.Open("/etc/passwd")
	require.Error(t, err)
}
