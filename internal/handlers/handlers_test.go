package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/cache"
	"github.com/lucaromano98/debiti-stop/internal/database"
	"github.com/lucaromano98/debiti-stop/internal/middleware"
	"github.com/lucaromano98/debiti-stop/internal/models"
	"github.com/lucaromano98/debiti-stop/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupHandler(t *testing.T) *Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return New(db, storage.NewLocale(t.TempDir()), zap.NewNop(), cache.Noop{})
}

// comeUtente simula la request autenticata che in produzione prepara
// InjectUser o TokenAuth.
func comeUtente(u *models.Utente) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, u)
		c.Next()
	}
}

func nuovoRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// multipartBody costruisce un corpo multipart con campi testuali e file
// (nome campo -> nome file -> contenuto).
func multipartBody(t *testing.T, fields map[string]string, files map[string][][2]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, entries := range files {
		for _, entry := range entries {
			fw, err := mw.CreateFormFile(field, entry[0])
			require.NoError(t, err)
			_, err = fw.Write([]byte(entry[1]))
			require.NoError(t, err)
		}
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doMultipart(t *testing.T, r *gin.Engine, method, target string, fields map[string]string, files map[string][][2]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, files)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func utenteDiProva(t *testing.T, h *Handler, ruolo models.Ruolo) *models.Utente {
	t.Helper()
	u := models.Utente{
		Username:     fmt.Sprintf("%s@test", ruolo),
		PasswordHash: "x",
		Nome:         "Mario",
		Cognome:      "Rossi",
		Ruolo:        ruolo,
	}
	require.NoError(t, h.DB.Create(&u).Error)
	return &u
}

func clienteDiProva(t *testing.T, h *Handler) *models.Cliente {
	t.Helper()
	cl := models.Cliente{Nome: "Anna", Cognome: "Bianchi", Email: "anna@example.com"}
	require.NoError(t, h.DB.Create(&cl).Error)
	return &cl
}
