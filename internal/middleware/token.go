package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

// TokenAuth autentica le rotte /api/v1 tramite bearer token. Accetta
// sia "Authorization: Bearer <token>" sia "Authorization: Token <token>".
func TokenAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		var token string
		for _, prefix := range []string{"Bearer ", "Token "} {
			if strings.HasPrefix(raw, prefix) {
				token = strings.TrimSpace(strings.TrimPrefix(raw, prefix))
				break
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token mancante"})
			return
		}

		var at models.ApiToken
		if err := db.Preload("Utente").Where("token = ?", token).First(&at).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token non valido"})
			return
		}

		c.Set(currentUserKey, at.Utente)
		c.Next()
	}
}

// RequireRuoloUtente controlla il ruolo dell'utente nel contesto (vale
// sia per sessioni sia per token).
func RequireRuoloUtente(ruoli ...models.Ruolo) gin.HandlerFunc {
	ruoloSet := map[models.Ruolo]struct{}{}
	for _, r := range ruoli {
		ruoloSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "autenticazione richiesta"})
			return
		}
		if _, ok := ruoloSet[u.Ruolo]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permessi insufficienti"})
			return
		}
		c.Next()
	}
}
