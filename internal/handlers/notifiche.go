package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucaromano98/debiti-stop/internal/models"
	"github.com/lucaromano98/debiti-stop/internal/query"
)

// ListNotifiche: le più recenti per prime.
func (h *Handler) ListNotifiche(c *gin.Context) {
	per := query.ParsePer(c.Request.URL.Query())
	page := query.ParsePage(c.Request.URL.Query())

	qs := h.DB.Model(&models.Notifica{}).Order("created_at desc")

	var notifiche []models.Notifica
	total, err := paginate(qs, page, per, &notifiche)
	if err != nil {
		h.internalError(c, "lista notifiche", err)
		return
	}

	c.JSON(http.StatusOK, paginated{Items: notifiche, Total: total, Page: page, Per: per})
}

func (h *Handler) SegnaLetta(c *gin.Context) {
	id := paramID(c, "id")
	res := h.DB.Model(&models.Notifica{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		h.internalError(c, "segna letta", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "notifica non trovata")
		return
	}

	h.Cache.InvalidateUnread(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"detail": "notifica segnata come letta"})
}

func (h *Handler) SegnaTutteLette(c *gin.Context) {
	if err := h.DB.Model(&models.Notifica{}).Where("is_read = ?", false).
		Update("is_read", true).Error; err != nil {
		h.internalError(c, "segna tutte lette", err)
		return
	}

	h.Cache.InvalidateUnread(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"detail": "tutte le notifiche segnate come lette"})
}

// NonLetteCount alimenta il badge della sidebar; il valore passa dal
// cache layer quando disponibile.
func (h *Handler) NonLetteCount(c *gin.Context) {
	ctx := c.Request.Context()
	if n, ok := h.Cache.UnreadCount(ctx); ok {
		c.JSON(http.StatusOK, gin.H{"non_lette": n})
		return
	}

	var n int64
	if err := h.DB.Model(&models.Notifica{}).Where("is_read = ?", false).Count(&n).Error; err != nil {
		h.internalError(c, "conteggio non lette", err)
		return
	}
	h.Cache.SetUnreadCount(ctx, n)

	c.JSON(http.StatusOK, gin.H{"non_lette": n})
}
