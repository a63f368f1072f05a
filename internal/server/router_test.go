package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/cache"
	"github.com/lucaromano98/debiti-stop/internal/config"
	"github.com/lucaromano98/debiti-stop/internal/database"
	"github.com/lucaromano98/debiti-stop/internal/handlers"
	"github.com/lucaromano98/debiti-stop/internal/models"
	"github.com/lucaromano98/debiti-stop/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{SessionSecret: "segreto-di-test"}
	h := handlers.New(db, storage.NewLocale(t.TempDir()), zap.NewNop(), cache.Noop{})
	return NewRouter(cfg, db, h), db
}

func creaUtente(t *testing.T, db *gorm.DB, username, password string, ruolo models.Ruolo) *models.Utente {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.Utente{
		Username:     username,
		PasswordHash: string(hash),
		Nome:         "Mario",
		Cognome:      "Rossi",
		Ruolo:        ruolo,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func postJSON(t *testing.T, r *gin.Engine, target string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWith(t *testing.T, r *gin.Engine, target string, cookies []*http.Cookie, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	w := postJSON(t, r, "/login", map[string]string{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)
	w := getWith(t, r, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestPortaleRichiedeSessione(t *testing.T) {
	r, _ := setupRouter(t)

	w := getWith(t, r, "/clienti", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = getWith(t, r, "/notifiche", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSessione(t *testing.T) {
	r, db := setupRouter(t)
	creaUtente(t, db, "op", "segreta", models.RuoloOperatore)

	w := postJSON(t, r, "/login", map[string]string{"username": "op", "password": "sbagliata"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := login(t, r, "op", "segreta")

	w = getWith(t, r, "/clienti", cookies, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutChiudeSessione(t *testing.T) {
	r, db := setupRouter(t)
	creaUtente(t, db, "op", "segreta", models.RuoloOperatore)

	cookies := login(t, r, "op", "segreta")

	w := getWith(t, r, "/logout", cookies, "")
	require.Equal(t, http.StatusOK, w.Code)

	// la sessione svuotata non autentica più
	dopo := w.Result().Cookies()
	w = getWith(t, r, "/clienti", dopo, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreaConsulenteSoloAdmin(t *testing.T) {
	r, db := setupRouter(t)
	creaUtente(t, db, "legale", "segreta", models.RuoloLegale)
	creaUtente(t, db, "admin", "segreta", models.RuoloAdmin)

	cookies := login(t, r, "legale", "segreta")
	w := postJSON(t, r, "/consulenti", map[string]string{"nome": "Bianchi"}, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)

	cookies = login(t, r, "admin", "segreta")
	w = postJSON(t, r, "/consulenti", map[string]string{"nome": "Bianchi"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.Consulente{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func emettiToken(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := postJSON(t, r, "/api/v1/token", map[string]string{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAPIRichiedeToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := getWith(t, r, "/api/v1/clienti", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = getWith(t, r, "/api/v1/clienti", nil, "token-inventato")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPITokenFlow(t *testing.T) {
	r, db := setupRouter(t)
	creaUtente(t, db, "op", "segreta", models.RuoloOperatore)

	token := emettiToken(t, r, "op", "segreta")

	w := getWith(t, r, "/api/v1/clienti", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = getWith(t, r, "/api/v1/lead", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAPILeadVietataAiLegali(t *testing.T) {
	r, db := setupRouter(t)
	creaUtente(t, db, "legale", "segreta", models.RuoloLegale)

	token := emettiToken(t, r, "legale", "segreta")

	// i clienti restano visibili
	w := getWith(t, r, "/api/v1/clienti", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	// i lead no
	w = getWith(t, r, "/api/v1/lead", nil, token)
	require.Equal(t, http.StatusForbidden, w.Code)
}
