package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

const currentUserKey = "CurrentUser"

// InjectUser carica l'utente della sessione nel contesto della request.
func InjectUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.Utente
				if err := db.First(&user, uid).Error; err == nil {
					c.Set(currentUserKey, user)
				}
			}
		}

		c.Next()
	}
}

// CurrentUser estrae l'utente messo nel contesto da InjectUser o da
// TokenAuth; nil se la request è anonima.
func CurrentUser(c *gin.Context) *models.Utente {
	if uVal, ok := c.Get(currentUserKey); ok {
		switch u := uVal.(type) {
		case models.Utente:
			return &u
		case *models.Utente:
			return u
		}
	}
	return nil
}

// SetCurrentUser è usato dai test per simulare una request autenticata.
func SetCurrentUser(c *gin.Context, u *models.Utente) {
	if u != nil {
		c.Set(currentUserKey, *u)
	}
}
