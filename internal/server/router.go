package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/config"
	"github.com/lucaromano98/debiti-stop/internal/handlers"
	"github.com/lucaromano98/debiti-stop/internal/middleware"
	"github.com/lucaromano98/debiti-stop/internal/models"
)

// NewRouter monta il portale (sessione) e l'API JSON (bearer token).
func NewRouter(cfg *config.Config, db *gorm.DB, h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("ds_session", store))
	r.Use(middleware.InjectUser(db))

	// AUTH
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// CLIENTI
	auth.GET("/clienti", h.ListClienti)
	auth.GET("/clienti/export", h.ExportClientiXLSX)
	auth.POST("/clienti", h.CreaCliente)
	auth.GET("/clienti/:id", h.DettaglioCliente)
	auth.PUT("/clienti/:id", h.AggiornaCliente)
	auth.DELETE("/clienti/:id", h.EliminaCliente) // solo admin (check nel handler)

	// DOCUMENTI
	auth.POST("/clienti/:id/documenti", h.CaricaDocumento)
	auth.POST("/clienti/:id/visure", h.CaricaVisure)
	auth.GET("/clienti/:id/documenti.zip", h.ScaricaDocumentiZip)
	auth.DELETE("/documenti/:id", h.EliminaDocumento)

	// PRATICHE
	auth.POST("/clienti/:id/pratiche", h.CreaPratica)
	auth.PUT("/pratiche/:id", h.AggiornaPratica)
	auth.DELETE("/pratiche/:id", h.EliminaPratica)

	// NOTE
	auth.POST("/clienti/:id/note", h.CreaNota)
	auth.PUT("/note/:id", h.AggiornaNota)
	auth.DELETE("/note/:id", h.EliminaNota)

	// LEAD
	auth.GET("/lead", h.ListLead)
	auth.POST("/lead", h.CreaLead)
	auth.GET("/lead/:id", h.DettaglioLead)
	auth.PUT("/lead/:id", h.AggiornaLead)
	auth.POST("/lead/:id/converti", h.ConvertiLead)
	auth.POST("/lead/:id/archivia", h.ArchiviaLead)
	auth.POST("/lead/:id/toggle-messaggio", h.ToggleMessaggio)
	auth.POST("/lead/:id/toggle-no-risposta", h.ToggleNoRisposta)
	auth.POST("/lead/:id/toggle-consulenza", h.ToggleConsulenza)

	// SCHEDE DI CONSULENZA
	auth.POST("/clienti/:id/schede", h.CreaSchedaCliente)
	auth.POST("/lead/:id/schede", h.CreaSchedaLead)
	auth.GET("/schede/:id", h.DettaglioScheda)
	auth.PUT("/schede/:id", h.AggiornaScheda)
	auth.DELETE("/schede/:id", h.EliminaScheda) // solo admin

	// NOTIFICHE
	auth.GET("/notifiche", h.ListNotifiche)
	auth.POST("/notifiche/:id/letta", h.SegnaLetta)
	auth.POST("/notifiche/tutte-lette", h.SegnaTutteLette)
	auth.GET("/notifiche/non-lette/count", h.NonLetteCount)

	// CONSULENTI
	auth.GET("/consulenti", h.ListConsulenti)
	auth.POST("/consulenti", middleware.RequireRuolo(models.RuoloAdmin), h.CreaConsulente)

	// API JSON con bearer token
	r.POST("/api/v1/token", h.CreaToken)

	api := r.Group("/api/v1")
	api.Use(middleware.TokenAuth(db))

	api.GET("/clienti", h.ListClienti)
	api.POST("/clienti", h.CreaCliente)
	api.GET("/clienti/:id", h.DettaglioCliente)
	api.PUT("/clienti/:id", h.AggiornaCliente)
	api.DELETE("/clienti/:id", h.EliminaCliente)

	// i lead via API restano riservati a operatori e admin
	apiLead := api.Group("/lead")
	apiLead.Use(middleware.RequireRuoloUtente(models.RuoloOperatore, models.RuoloAdmin))
	apiLead.GET("", h.ListLead)
	apiLead.POST("", h.CreaLead)
	apiLead.GET("/:id", h.DettaglioLead)
	apiLead.PUT("/:id", h.AggiornaLead)
	apiLead.POST("/:id/converti", h.ConvertiLead)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
