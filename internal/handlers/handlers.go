package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/cache"
	"github.com/lucaromano98/debiti-stop/internal/storage"
)

// Handler raccoglie le dipendenze condivise da tutti gli endpoint.
type Handler struct {
	DB    *gorm.DB
	Store storage.Storage
	Log   *zap.Logger
	Cache cache.Contatori
}

func New(db *gorm.DB, store storage.Storage, log *zap.Logger, contatori cache.Contatori) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if contatori == nil {
		contatori = cache.Noop{}
	}
	return &Handler{DB: db, Store: store, Log: log, Cache: contatori}
}

// paramID legge un id numerico dal path; 0 se non valido.
func paramID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// violazioni risponde con gli errori di validazione campo per campo.
func violazioni(c *gin.Context, v map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validazione fallita", "campi": v})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

func forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"error": msg})
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.Log.Error("errore interno", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "errore interno"})
}

// paginated è la busta standard delle liste.
type paginated struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Per   int   `json:"per"`
}

// paginate esegue count + offset/limit sulla query già filtrata.
func paginate(qs *gorm.DB, page, per int, dest any) (int64, error) {
	var total int64
	if err := qs.Count(&total).Error; err != nil {
		return 0, err
	}
	err := qs.Offset((page - 1) * per).Limit(per).Find(dest).Error
	return total, err
}
